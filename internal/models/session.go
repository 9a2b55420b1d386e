package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session owns every collection for one logged-in user. All mutation goes
// through its methods and every read hands out deep copies, so callers can
// never reach the underlying slices and maps.
type Session struct {
	mu          sync.RWMutex
	user        User
	anchor      time.Time
	attendance  map[Role]map[string]*AttendanceRecord
	tasks       []*Task
	editorLogs  []*ActivityLog
	shooterLogs []*ActivityLog
	writerItems []*WriterItem
	lastActive  time.Time
}

func NewSession(user User, now time.Time) *Session {
	return &Session{
		user:       user,
		anchor:     now,
		attendance: make(map[Role]map[string]*AttendanceRecord),
		lastActive: now,
	}
}

func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now
}

func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

func (s *Session) Anchor() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.anchor
}

// SetAnchor moves the reference date for the weekly view. Stored logs keep
// their absolute date keys; only the derived span changes.
func (s *Session) SetAnchor(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anchor = t
}

func (s *Session) recordFor(role Role, dateKey string) *AttendanceRecord {
	days, ok := s.attendance[role]
	if !ok {
		days = make(map[string]*AttendanceRecord)
		s.attendance[role] = days
	}
	rec, ok := days[dateKey]
	if !ok {
		rec = &AttendanceRecord{DateKey: dateKey}
		days[dateKey] = rec
	}
	return rec
}

func (s *Session) CheckIn(role Role, dateKey string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordFor(role, dateKey).CheckIn(now)
}

func (s *Session) CheckOut(role Role, dateKey string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordFor(role, dateKey).CheckOut(now)
}

// AttendanceStatus derives the state for a role and day without creating
// a record.
func (s *Session) AttendanceStatus(role Role, dateKey string) AttendanceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if days, ok := s.attendance[role]; ok {
		if rec, ok := days[dateKey]; ok {
			return rec.Status()
		}
	}
	return AttendanceNotStarted
}

func (s *Session) Attendance(role Role, dateKey string) (*AttendanceRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if days, ok := s.attendance[role]; ok {
		if rec, ok := days[dateKey]; ok {
			return rec.clone(), true
		}
	}
	return nil, false
}

func (s *Session) AddTask(title string, role Role, dueKey string, status TaskStatus) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &Task{
		ID:     uuid.NewString(),
		Title:  title,
		Role:   role,
		DueKey: dueKey,
		Status: status,
	}
	s.tasks = append(s.tasks, task)
	copied := *task
	return &copied
}

// ToggleTask flips the matching task between done and todo. An unknown id
// leaves the collection unchanged.
func (s *Session) ToggleTask(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range s.tasks {
		if task.ID == taskID {
			task.Toggle()
			return
		}
	}
}

func (s *Session) Tasks() []*Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		copied := *task
		result = append(result, &copied)
	}
	return result
}

func (s *Session) TasksForRole(role Role) []*Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Task, 0)
	for _, task := range s.tasks {
		if task.Role == role {
			copied := *task
			result = append(result, &copied)
		}
	}
	return result
}

// OpenTaskCount counts tasks for a role that are not done yet.
func (s *Session) OpenTaskCount(role Role) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, task := range s.tasks {
		if task.Role == role && task.Status != TaskDone {
			count++
		}
	}
	return count
}

func (s *Session) AddEditorLog(dateKey, client, videoType string, quantity interface{}) *ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := newActivityLog(dateKey, client, videoType, quantity)
	s.editorLogs = append(s.editorLogs, log)
	copied := *log
	return &copied
}

func (s *Session) AddShooterLog(dateKey, client, videoType string, quantity interface{}) *ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := newActivityLog(dateKey, client, videoType, quantity)
	s.shooterLogs = append(s.shooterLogs, log)
	copied := *log
	return &copied
}

func newActivityLog(dateKey, client, videoType string, quantity interface{}) *ActivityLog {
	return &ActivityLog{
		ID:        uuid.NewString(),
		DateKey:   dateKey,
		Client:    client,
		VideoType: videoType,
		Quantity:  ClampInt(quantity),
	}
}

func (s *Session) EditorLogs() []*ActivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyLogs(s.editorLogs)
}

func (s *Session) ShooterLogs() []*ActivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyLogs(s.shooterLogs)
}

func copyLogs(logs []*ActivityLog) []*ActivityLog {
	result := make([]*ActivityLog, 0, len(logs))
	for _, log := range logs {
		copied := *log
		result = append(result, &copied)
	}
	return result
}

func (s *Session) AddWriterItem(dateKey, title, client string) *WriterItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := &WriterItem{
		ID:      uuid.NewString(),
		DateKey: dateKey,
		Title:   title,
		Client:  client,
		Status:  ItemWritten,
	}
	s.writerItems = append(s.writerItems, item)
	copied := *item
	return &copied
}

// TransitionWriterItem overwrites the status of the matching item. There
// is no source-status check; unknown ids are a no-op.
func (s *Session) TransitionWriterItem(itemID string, status ItemStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.writerItems {
		if item.ID == itemID {
			item.Status = status
			return
		}
	}
}

func (s *Session) WriterItems() []*WriterItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*WriterItem, 0, len(s.writerItems))
	for _, item := range s.writerItems {
		copied := *item
		result = append(result, &copied)
	}
	return result
}
