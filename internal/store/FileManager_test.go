package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewops/internal/models"
	"crewops/internal/services"
	"crewops/internal/structures"
	"crewops/internal/testutil"
)

func defaultSessionConfig() *structures.Config {
	return &structures.Config{
		Session: structures.SessionConfig{
			MaxSessions:      100,
			IdleTTL:          time.Hour,
			SweepInterval:    time.Minute,
			DownDayThreshold: 0,
		},
	}
}

func newTestFileManager(compressor *testutil.MockCompressor) (*FileManager, *testutil.MockSessionService) {
	svc := &testutil.MockSessionService{}
	logger := &testutil.MockLogger{}
	fm := NewFileManager(compressor, svc, logger)
	return fm, svc
}

func TestFileManager_SaveToFile_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.dat")

	svc := services.NewSessionService(defaultSessionConfig())
	token := svc.Login("kay", models.RoleEditor)
	require.NotEmpty(t, token)
	svc.AddLog(token, models.RoleEditor, "2026-08-27", "acme", "reel", 3)

	comp := &testutil.MockCompressor{}
	logger := &testutil.MockLogger{}
	fm := NewFileManager(comp, svc, logger)

	err := fm.SaveToFile(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	fm, svc := newTestFileManager(&testutil.MockCompressor{})
	err := fm.LoadFromFile("/nonexistent/path/file.dat")
	assert.NoError(t, err) // not an error, just no data
	assert.Empty(t, svc.PutCalls)
}

func TestFileManager_LoadFromFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	fm, svc := newTestFileManager(&testutil.MockCompressor{})
	err := fm.LoadFromFile(path)

	// Malformed snapshots never fail startup
	assert.NoError(t, err)
	assert.Empty(t, svc.PutCalls)
}

func TestFileManager_LoadFromFile_UnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.dat")

	snap := models.StoreSnapshot{Version: 99, Sessions: map[string]*models.SessionSnapshot{}}
	jsonData, _ := json.Marshal(snap)
	require.NoError(t, os.WriteFile(path, jsonData, 0644))

	fm, svc := newTestFileManager(&testutil.MockCompressor{})
	require.NoError(t, fm.LoadFromFile(path))
	assert.Empty(t, svc.PutCalls)
}

func TestFileManager_LoadFromFile_ValidSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.dat")

	snap := models.StoreSnapshot{
		Version: models.SnapshotVersion,
		Sessions: map[string]*models.SessionSnapshot{
			"tok-1": {User: models.User{Name: "kay", Role: models.RoleEditor}},
		},
	}
	jsonData, _ := json.Marshal(snap)
	require.NoError(t, os.WriteFile(path, jsonData, 0644))

	fm, svc := newTestFileManager(&testutil.MockCompressor{})
	require.NoError(t, fm.LoadFromFile(path))

	require.Len(t, svc.PutCalls, 1)
	assert.Equal(t, models.SnapshotVersion, svc.PutCalls[0].Version)
}

func TestFileManager_CompressError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "err.dat")

	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress failed")
		},
	}

	svc := services.NewSessionService(defaultSessionConfig())
	logger := &testutil.MockLogger{}
	fm := NewFileManager(comp, svc, logger)

	err := fm.SaveToFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "compress failed")
}

func TestFileManager_DecompressError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dec.dat")
	require.NoError(t, os.WriteFile(path, []byte("some data"), 0644))

	comp := &testutil.MockCompressor{
		DecompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("decompress failed")
		},
	}
	fm, svc := newTestFileManager(comp)

	// A snapshot that cannot be unpacked means a fresh start, not a crash
	err := fm.LoadFromFile(path)
	assert.NoError(t, err)
	assert.Empty(t, svc.PutCalls)
}

func TestFileManager_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roundtrip.dat")

	// Save with real service
	svc := services.NewSessionService(defaultSessionConfig())
	token := svc.Login("kay", models.RoleEditor)
	require.NotEmpty(t, token)
	svc.AddLog(token, models.RoleEditor, "2026-08-27", "acme", "reel", 4)
	svc.AddTask(token, "cut highlight", models.RoleEditor, "2026-08-28", models.TaskTodo)

	comp := &testutil.MockCompressor{}
	logger := &testutil.MockLogger{}
	fm := NewFileManager(comp, svc, logger)
	require.NoError(t, fm.SaveToFile(path))

	// Load into new service
	svc2 := services.NewSessionService(defaultSessionConfig())
	fm2 := NewFileManager(comp, svc2, logger)
	require.NoError(t, fm2.LoadFromFile(path))

	assert.Equal(t, 1, svc2.SessionCount())
	user, ok := svc2.CurrentUser(token)
	require.True(t, ok)
	assert.Equal(t, "kay", user.Name)
	assert.Equal(t, models.RoleEditor, user.Role)

	tasks := svc2.MyTasks(token)
	require.Len(t, tasks, 1)
	assert.Equal(t, "cut highlight", tasks[0].Title)
}

func TestFileManager_RealCompressorRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zstd.dat")

	svc := services.NewSessionService(defaultSessionConfig())
	token := svc.Login("dana", models.RoleShooter)
	require.NotEmpty(t, token)
	svc.AddLog(token, models.RoleShooter, "2026-08-25", "globex", "shoot", 2)

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	logger := &testutil.MockLogger{}
	fm := NewFileManager(comp, svc, logger)
	require.NoError(t, fm.SaveToFile(path))

	svc2 := services.NewSessionService(defaultSessionConfig())
	fm2 := NewFileManager(comp, svc2, logger)
	require.NoError(t, fm2.LoadFromFile(path))

	assert.Equal(t, 1, svc2.SessionCount())
}
