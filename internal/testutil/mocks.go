package testutil

import (
	"sync"
	"time"

	"crewops/internal/analytics"
	"crewops/internal/models"
	"crewops/internal/providers"
	"crewops/internal/services"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockSessionService implements services.SessionServiceInterface and
// records mutating calls for assertion.
type MockSessionService struct {
	mu             sync.Mutex
	Users          map[string]models.User
	LoginToken     string
	LoginCalls     []models.User
	LogoutCalls    []string
	CheckInCalls   []RoleCall
	CheckOutCalls  []RoleCall
	AddLogCalls    []AddLogCall
	ToggleCalls    []string
	SnapshotData   *models.StoreSnapshot
	PutCalls       []*models.StoreSnapshot
	EvictedCount   int
	AnchorKeyData  string
	SummaryData    *services.WeeklySummary
	WeeklyData     []analytics.WeekDayBucket
	TasksData      []*models.Task
	ItemsData      []*models.WriterItem
	AttendanceData []services.AttendanceEntry
	OpenCount      int
}

type RoleCall struct {
	Token string
	Role  models.Role
}

type AddLogCall struct {
	Token     string
	Role      models.Role
	DateKey   string
	Client    string
	VideoType string
	Quantity  interface{}
}

func (m *MockSessionService) Login(name string, role models.Role) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls = append(m.LoginCalls, models.User{Name: name, Role: role})
	return m.LoginToken
}

func (m *MockSessionService) Logout(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogoutCalls = append(m.LogoutCalls, token)
}

func (m *MockSessionService) CurrentUser(token string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[token]
	return user, ok
}

func (m *MockSessionService) CheckIn(token string, role models.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckInCalls = append(m.CheckInCalls, RoleCall{Token: token, Role: role})
}

func (m *MockSessionService) CheckOut(token string, role models.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckOutCalls = append(m.CheckOutCalls, RoleCall{Token: token, Role: role})
}

func (m *MockSessionService) AttendanceBoard(_ string) []services.AttendanceEntry {
	return m.AttendanceData
}

func (m *MockSessionService) AddTask(_, _ string, _ models.Role, _ string, _ models.TaskStatus) {}

func (m *MockSessionService) ToggleTask(_, taskID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ToggleCalls = append(m.ToggleCalls, taskID)
}

func (m *MockSessionService) MyTasks(_ string) []*models.Task { return m.TasksData }
func (m *MockSessionService) OpenTaskCount(_ string) int      { return m.OpenCount }

func (m *MockSessionService) AddLog(token string, role models.Role, dateKey, client, videoType string, quantity interface{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddLogCalls = append(m.AddLogCalls, AddLogCall{
		Token:     token,
		Role:      role,
		DateKey:   dateKey,
		Client:    client,
		VideoType: videoType,
		Quantity:  quantity,
	})
	return role == models.RoleEditor || role == models.RoleShooter
}

func (m *MockSessionService) AddWriterItem(_, _, _, _ string) {}

func (m *MockSessionService) TransitionWriterItem(_, _ string, _ models.ItemStatus) {}

func (m *MockSessionService) WriterItems(_ string) []*models.WriterItem { return m.ItemsData }

func (m *MockSessionService) SetAnchor(_ string, _ time.Time) {}

func (m *MockSessionService) AnchorKey(_ string) string { return m.AnchorKeyData }

func (m *MockSessionService) WeeklySeries(_ string, _ models.Role) []analytics.WeekDayBucket {
	return m.WeeklyData
}

func (m *MockSessionService) Summary(_ string) (*services.WeeklySummary, bool) {
	return m.SummaryData, m.SummaryData != nil
}

func (m *MockSessionService) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users)
}

func (m *MockSessionService) EvictIdle(_ time.Time) int { return m.EvictedCount }

func (m *MockSessionService) Snapshot() *models.StoreSnapshot { return m.SnapshotData }

func (m *MockSessionService) PutSnapshot(snap *models.StoreSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls = append(m.PutCalls, snap)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	Requests         int
	Durations        int
	Logins           int
	Checkins         int
	LogsRecorded     int
	CacheHits        int
	CacheMisses      int
	PersistDurations int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 { m.Requests++ }
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.Durations++ }
func (m *MockMetrics) IncLogins()                                       { m.Logins++ }
func (m *MockMetrics) IncCheckins()                                     { m.Checkins++ }
func (m *MockMetrics) IncLogsRecorded(_ string)                         { m.LogsRecorded++ }
func (m *MockMetrics) IncCacheHits()                                    { m.CacheHits++ }
func (m *MockMetrics) IncCacheMisses()                                  { m.CacheMisses++ }
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)       { m.PersistDurations++ }
