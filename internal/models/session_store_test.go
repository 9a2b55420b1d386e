package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := NewSessionStore(10, 0)
	token, session := store.Create(User{Name: "kay", Role: RoleEditor}, time.Now())

	require.NotEmpty(t, token)
	require.NotNil(t, session)

	got, ok := store.Get(token)
	require.True(t, ok)
	assert.Equal(t, "kay", got.User().Name)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_DeleteUnknownIsNoop(t *testing.T) {
	store := NewSessionStore(10, 0)
	store.Create(User{Name: "kay", Role: RoleEditor}, time.Now())

	store.Delete("no-such-token")
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_DeleteReleasesSession(t *testing.T) {
	store := NewSessionStore(10, 0)
	token, _ := store.Create(User{Name: "kay", Role: RoleEditor}, time.Now())

	store.Delete(token)

	_, ok := store.Get(token)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_CapacityLimit(t *testing.T) {
	store := NewSessionStore(1, 0)
	token, _ := store.Create(User{Name: "kay", Role: RoleEditor}, time.Now())
	require.NotEmpty(t, token)

	token2, session2 := store.Create(User{Name: "sam", Role: RoleWriter}, time.Now())
	assert.Empty(t, token2)
	assert.Nil(t, session2)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_EvictExpired(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(10, time.Hour)
	stale, _ := store.Create(User{Name: "kay", Role: RoleEditor}, now.Add(-2*time.Hour))
	fresh, _ := store.Create(User{Name: "sam", Role: RoleWriter}, now.Add(-time.Minute))

	evicted := store.EvictExpired(now)

	assert.Equal(t, 1, evicted)
	_, ok := store.Get(stale)
	assert.False(t, ok)
	_, ok = store.Get(fresh)
	assert.True(t, ok)
}

func TestSessionStore_EvictDisabledWithZeroTTL(t *testing.T) {
	now := time.Now()
	store := NewSessionStore(10, 0)
	store.Create(User{Name: "kay", Role: RoleEditor}, now.Add(-100*time.Hour))

	assert.Equal(t, 0, store.EvictExpired(now))
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_SnapshotRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	store := NewSessionStore(10, 0)
	token, session := store.Create(User{Name: "kay", Role: RoleEditor}, now)
	session.CheckIn(RoleEditor, "2026-08-31", now)
	session.AddEditorLog("2026-08-31", "acme", "reel", 3)
	session.AddTask("cut highlights", RoleEditor, "2026-09-01", TaskTodo)
	session.AddWriterItem("2026-08-31", "q3 recap", "acme")

	snap := store.Snapshot()
	assert.Equal(t, SnapshotVersion, snap.Version)

	restored := NewSessionStore(10, 0)
	restored.PutSnapshot(snap)

	got, ok := restored.Get(token)
	require.True(t, ok)
	assert.Equal(t, "kay", got.User().Name)
	assert.Equal(t, AttendanceCheckedIn, got.AttendanceStatus(RoleEditor, "2026-08-31"))
	require.Len(t, got.EditorLogs(), 1)
	assert.Equal(t, 3, got.EditorLogs()[0].Quantity)
	assert.Len(t, got.Tasks(), 1)
	assert.Len(t, got.WriterItems(), 1)
}

func TestSessionStore_PutSnapshotSkipsNilEntries(t *testing.T) {
	store := NewSessionStore(10, 0)
	store.PutSnapshot(&StoreSnapshot{
		Version: SnapshotVersion,
		Sessions: map[string]*SessionSnapshot{
			"broken": nil,
			"":       {User: User{Name: "ghost", Role: RoleEditor}},
			"ok":     {User: User{Name: "kay", Role: RoleEditor}},
		},
	})

	assert.Equal(t, 1, store.Len())
	_, ok := store.Get("ok")
	assert.True(t, ok)
}

func TestSessionStore_SnapshotIsDeepCopy(t *testing.T) {
	store := NewSessionStore(10, 0)
	_, session := store.Create(User{Name: "kay", Role: RoleEditor}, time.Now())
	session.AddEditorLog("2026-08-31", "acme", "reel", 3)

	snap := store.Snapshot()
	for _, s := range snap.Sessions {
		s.EditorLogs[0].Quantity = 999
	}

	assert.Equal(t, 3, session.EditorLogs()[0].Quantity)
}
