package services

import (
	"time"

	"crewops/internal/analytics"
	"crewops/internal/models"
	"crewops/internal/structures"
)

// AttendanceEntry is one role's derived attendance state for a day.
type AttendanceEntry struct {
	Role    models.Role             `json:"role"`
	DateKey string                  `json:"date_key"`
	Status  models.AttendanceStatus `json:"status"`
}

// WeeklySummary is the full derived view for one session's anchor week.
// Combined and RoleTotals are only populated for admin sessions.
type WeeklySummary struct {
	Week         []string                  `json:"week"`
	Series       []analytics.WeekDayBucket `json:"series"`
	DownDays     []analytics.WeekDayBucket `json:"down_days"`
	DownDayCount int                       `json:"down_day_count"`
	BestDay      analytics.WeekDayBucket   `json:"best_day"`
	Combined     []analytics.WeekDayBucket `json:"combined,omitempty"`
	RoleTotals   []analytics.RoleTotal     `json:"role_totals,omitempty"`
	OpenTasks    int                       `json:"open_tasks"`
	Attendance   []AttendanceEntry         `json:"attendance"`
}

type SessionServiceInterface interface {
	Login(name string, role models.Role) string
	Logout(token string)
	CurrentUser(token string) (models.User, bool)
	CheckIn(token string, role models.Role)
	CheckOut(token string, role models.Role)
	AttendanceBoard(token string) []AttendanceEntry
	AddTask(token, title string, role models.Role, dueKey string, status models.TaskStatus)
	ToggleTask(token, taskID string)
	MyTasks(token string) []*models.Task
	OpenTaskCount(token string) int
	AddLog(token string, role models.Role, dateKey, client, videoType string, quantity interface{}) bool
	AddWriterItem(token, dateKey, title, client string)
	TransitionWriterItem(token, itemID string, status models.ItemStatus)
	WriterItems(token string) []*models.WriterItem
	SetAnchor(token string, anchor time.Time)
	AnchorKey(token string) string
	WeeklySeries(token string, role models.Role) []analytics.WeekDayBucket
	Summary(token string) (*WeeklySummary, bool)
	SessionCount() int
	EvictIdle(now time.Time) int
	Snapshot() *models.StoreSnapshot
	PutSnapshot(snap *models.StoreSnapshot)
}

type SessionService struct {
	store     *models.SessionStore
	threshold int
	now       func() time.Time
}

func NewSessionService(conf *structures.Config) SessionServiceInterface {
	return &SessionService{
		store:     models.NewSessionStore(conf.Session.MaxSessions, conf.Session.IdleTTL),
		threshold: conf.Session.DownDayThreshold,
		now:       time.Now,
	}
}

// Login opens a session for the user and returns its token. An empty
// token means the store is at capacity.
func (ss *SessionService) Login(name string, role models.Role) string {
	token, _ := ss.store.Create(models.User{Name: name, Role: role}, ss.now())
	return token
}

// Logout releases the session and everything it owns. Unknown tokens are
// a no-op.
func (ss *SessionService) Logout(token string) {
	ss.store.Delete(token)
}

func (ss *SessionService) CurrentUser(token string) (models.User, bool) {
	session, ok := ss.store.Get(token)
	if !ok {
		return models.User{}, false
	}
	return session.User(), true
}

// effectiveRole scopes a requested role to the session: admins may act for
// any producing role, everyone else only for their own.
func effectiveRole(session *models.Session, requested models.Role) models.Role {
	user := session.User()
	if user.Role == models.RoleAdmin && requested.Valid() && requested != models.RoleAdmin {
		return requested
	}
	return user.Role
}

func (ss *SessionService) CheckIn(token string, role models.Role) {
	session, ok := ss.store.Get(token)
	if !ok {
		return
	}
	now := ss.now()
	session.Touch(now)
	session.CheckIn(effectiveRole(session, role), analytics.DayKey(now), now)
}

func (ss *SessionService) CheckOut(token string, role models.Role) {
	session, ok := ss.store.Get(token)
	if !ok {
		return
	}
	now := ss.now()
	session.Touch(now)
	session.CheckOut(effectiveRole(session, role), analytics.DayKey(now), now)
}

// AttendanceBoard lists today's attendance state: every producing role
// for admins, the user's own role otherwise.
func (ss *SessionService) AttendanceBoard(token string) []AttendanceEntry {
	session, ok := ss.store.Get(token)
	if !ok {
		return nil
	}
	today := analytics.DayKey(ss.now())
	roles := []models.Role{session.User().Role}
	if session.User().Role == models.RoleAdmin {
		roles = models.NonAdminRoles()
	}
	entries := make([]AttendanceEntry, 0, len(roles))
	for _, role := range roles {
		entries = append(entries, AttendanceEntry{
			Role:    role,
			DateKey: today,
			Status:  session.AttendanceStatus(role, today),
		})
	}
	return entries
}

func (ss *SessionService) AddTask(token, title string, role models.Role, dueKey string, status models.TaskStatus) {
	session, ok := ss.store.Get(token)
	if !ok || role == models.RoleAdmin || !role.Valid() {
		return
	}
	session.Touch(ss.now())
	session.AddTask(title, role, dueKey, status)
}

func (ss *SessionService) ToggleTask(token, taskID string) {
	session, ok := ss.store.Get(token)
	if !ok {
		return
	}
	session.Touch(ss.now())
	session.ToggleTask(taskID)
}

// MyTasks filters the task list down to the session user's role. Admins
// see everything.
func (ss *SessionService) MyTasks(token string) []*models.Task {
	session, ok := ss.store.Get(token)
	if !ok {
		return nil
	}
	if session.User().Role == models.RoleAdmin {
		return session.Tasks()
	}
	return session.TasksForRole(session.User().Role)
}

func (ss *SessionService) OpenTaskCount(token string) int {
	session, ok := ss.store.Get(token)
	if !ok {
		return 0
	}
	user := session.User()
	if user.Role == models.RoleAdmin {
		count := 0
		for _, role := range models.NonAdminRoles() {
			count += session.OpenTaskCount(role)
		}
		return count
	}
	return session.OpenTaskCount(user.Role)
}

// AddLog appends an activity log to the role's collection and reports
// whether one was recorded. Only editors and shooters produce logs; other
// roles are a no-op.
func (ss *SessionService) AddLog(token string, role models.Role, dateKey, client, videoType string, quantity interface{}) bool {
	session, ok := ss.store.Get(token)
	if !ok {
		return false
	}
	session.Touch(ss.now())
	switch effectiveRole(session, role) {
	case models.RoleEditor:
		session.AddEditorLog(dateKey, client, videoType, quantity)
		return true
	case models.RoleShooter:
		session.AddShooterLog(dateKey, client, videoType, quantity)
		return true
	}
	return false
}

func (ss *SessionService) AddWriterItem(token, dateKey, title, client string) {
	session, ok := ss.store.Get(token)
	if !ok {
		return
	}
	session.Touch(ss.now())
	session.AddWriterItem(dateKey, title, client)
}

func (ss *SessionService) TransitionWriterItem(token, itemID string, status models.ItemStatus) {
	session, ok := ss.store.Get(token)
	if !ok || !status.Valid() {
		return
	}
	session.Touch(ss.now())
	session.TransitionWriterItem(itemID, status)
}

func (ss *SessionService) WriterItems(token string) []*models.WriterItem {
	session, ok := ss.store.Get(token)
	if !ok {
		return nil
	}
	return session.WriterItems()
}

func (ss *SessionService) SetAnchor(token string, anchor time.Time) {
	session, ok := ss.store.Get(token)
	if !ok {
		return
	}
	session.Touch(ss.now())
	session.SetAnchor(anchor)
}

// AnchorKey returns the day key of the session's anchor week start. It
// changes exactly when SetAnchor moves the week, so cached derived views
// keyed on it can never outlive an anchor move.
func (ss *SessionService) AnchorKey(token string) string {
	session, ok := ss.store.Get(token)
	if !ok {
		return ""
	}
	return analytics.AnchorWeek(session.Anchor())[0]
}

// WeeklySeries derives the 7-day activity series for a role over the
// session's anchor week.
func (ss *SessionService) WeeklySeries(token string, role models.Role) []analytics.WeekDayBucket {
	session, ok := ss.store.Get(token)
	if !ok {
		return nil
	}
	week := analytics.AnchorWeek(session.Anchor())
	return ss.seriesFor(session, role, week)
}

func (ss *SessionService) seriesFor(session *models.Session, role models.Role, week [7]string) []analytics.WeekDayBucket {
	switch role {
	case models.RoleEditor:
		return analytics.WeeklyTotals(session.EditorLogs(), week)
	case models.RoleShooter:
		return analytics.WeeklyTotals(session.ShooterLogs(), week)
	case models.RoleWriter:
		return analytics.WriterWeekly(session.WriterItems(), week)
	case models.RoleAdmin:
		return analytics.CombinedActivity(
			analytics.WeeklyTotals(session.EditorLogs(), week),
			analytics.WeeklyTotals(session.ShooterLogs(), week),
			analytics.WriterWeekly(session.WriterItems(), week),
		)
	}
	return nil
}

// Summary assembles the whole derived view for the session's anchor week.
// Pure over the stored collections; safe to recompute on every read.
func (ss *SessionService) Summary(token string) (*WeeklySummary, bool) {
	session, ok := ss.store.Get(token)
	if !ok {
		return nil, false
	}
	user := session.User()
	week := analytics.AnchorWeek(session.Anchor())
	series := ss.seriesFor(session, user.Role, week)
	downDays := analytics.DownDays(series, ss.threshold)
	bestDay, _ := analytics.BestDay(series)

	summary := &WeeklySummary{
		Week:         week[:],
		Series:       series,
		DownDays:     downDays,
		DownDayCount: len(downDays),
		BestDay:      bestDay,
		OpenTasks:    ss.OpenTaskCount(token),
		Attendance:   ss.AttendanceBoard(token),
	}

	if user.Role == models.RoleAdmin {
		editor := analytics.WeeklyTotals(session.EditorLogs(), week)
		shooter := analytics.WeeklyTotals(session.ShooterLogs(), week)
		writer := analytics.WriterWeekly(session.WriterItems(), week)
		summary.Combined = analytics.CombinedActivity(editor, shooter, writer)
		summary.RoleTotals = analytics.RoleTotals(editor, shooter, writer)
	}
	return summary, true
}

func (ss *SessionService) SessionCount() int {
	return ss.store.Len()
}

func (ss *SessionService) EvictIdle(now time.Time) int {
	return ss.store.EvictExpired(now)
}

func (ss *SessionService) Snapshot() *models.StoreSnapshot {
	return ss.store.Snapshot()
}

func (ss *SessionService) PutSnapshot(snap *models.StoreSnapshot) {
	ss.store.PutSnapshot(snap)
}
