package models

import "time"

// SnapshotVersion is the current persistence envelope version.
const SnapshotVersion = 1

// SessionSnapshot is the persistence form of a single session.
type SessionSnapshot struct {
	User        User                                  `json:"user"`
	Anchor      time.Time                             `json:"anchor"`
	Attendance  map[Role]map[string]*AttendanceRecord `json:"attendance"`
	Tasks       []*Task                               `json:"tasks"`
	EditorLogs  []*ActivityLog                        `json:"editor_logs"`
	ShooterLogs []*ActivityLog                        `json:"shooter_logs"`
	WriterItems []*WriterItem                         `json:"writer_items"`
	LastActive  time.Time                             `json:"last_active"`
}

// StoreSnapshot is the on-disk envelope for the whole session store, with
// an explicit version field so future formats can be detected.
type StoreSnapshot struct {
	Version  int                         `json:"version"`
	Sessions map[string]*SessionSnapshot `json:"sessions"`
}

// Snapshot produces a deep copy of the session for persistence.
func (s *Session) Snapshot() *SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attendance := make(map[Role]map[string]*AttendanceRecord, len(s.attendance))
	for role, days := range s.attendance {
		copied := make(map[string]*AttendanceRecord, len(days))
		for key, rec := range days {
			copied[key] = rec.clone()
		}
		attendance[role] = copied
	}

	tasks := make([]*Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		copied := *task
		tasks = append(tasks, &copied)
	}

	items := make([]*WriterItem, 0, len(s.writerItems))
	for _, item := range s.writerItems {
		copied := *item
		items = append(items, &copied)
	}

	return &SessionSnapshot{
		User:        s.user,
		Anchor:      s.anchor,
		Attendance:  attendance,
		Tasks:       tasks,
		EditorLogs:  copyLogs(s.editorLogs),
		ShooterLogs: copyLogs(s.shooterLogs),
		WriterItems: items,
		LastActive:  s.lastActive,
	}
}

// NewSessionFromSnapshot rebuilds a session from its persistence form,
// normalizing nil collections from older or hand-edited files.
func NewSessionFromSnapshot(snap *SessionSnapshot) *Session {
	s := NewSession(snap.User, snap.LastActive)
	if !snap.Anchor.IsZero() {
		s.anchor = snap.Anchor
	}
	for role, days := range snap.Attendance {
		if days == nil {
			continue
		}
		copied := make(map[string]*AttendanceRecord, len(days))
		for key, rec := range days {
			if rec == nil {
				continue
			}
			copied[key] = rec.clone()
		}
		s.attendance[role] = copied
	}
	for _, task := range snap.Tasks {
		if task == nil {
			continue
		}
		copied := *task
		s.tasks = append(s.tasks, &copied)
	}
	for _, log := range snap.EditorLogs {
		if log == nil {
			continue
		}
		copied := *log
		s.editorLogs = append(s.editorLogs, &copied)
	}
	for _, log := range snap.ShooterLogs {
		if log == nil {
			continue
		}
		copied := *log
		s.shooterLogs = append(s.shooterLogs, &copied)
	}
	for _, item := range snap.WriterItems {
		if item == nil {
			continue
		}
		copied := *item
		s.writerItems = append(s.writerItems, &copied)
	}
	return s
}
