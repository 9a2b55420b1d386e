package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultMaxSessions = 10000

// SessionStore maps opaque tokens to live sessions. Sessions are acquired
// at login and released unconditionally at logout; an idle TTL sweep
// reclaims abandoned ones.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
	idleTTL     time.Duration
}

func NewSessionStore(maxSessions int, idleTTL time.Duration) *SessionStore {
	if maxSessions == 0 {
		maxSessions = defaultMaxSessions
	}
	return &SessionStore{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		idleTTL:     idleTTL,
	}
}

// Create opens a new session and returns its token. Returns an empty token
// when the store is at capacity.
func (st *SessionStore) Create(user User, now time.Time) (string, *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.maxSessions >= 0 && len(st.sessions) >= st.maxSessions {
		return "", nil
	}
	token := uuid.NewString()
	session := NewSession(user, now)
	st.sessions[token] = session
	return token, session
}

func (st *SessionStore) Get(token string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[token]
	return session, ok
}

// Delete releases a session. Unknown tokens are a no-op.
func (st *SessionStore) Delete(token string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, token)
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// EvictExpired removes sessions idle for longer than the configured TTL
// and returns how many were removed. A zero TTL disables the sweep.
func (st *SessionStore) EvictExpired(now time.Time) int {
	if st.idleTTL <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	evicted := 0
	for token, session := range st.sessions {
		if now.Sub(session.LastActive()) > st.idleTTL {
			delete(st.sessions, token)
			evicted++
		}
	}
	return evicted
}

// Snapshot produces the persistence envelope for every live session.
func (st *SessionStore) Snapshot() *StoreSnapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sessions := make(map[string]*SessionSnapshot, len(st.sessions))
	for token, session := range st.sessions {
		sessions[token] = session.Snapshot()
	}
	return &StoreSnapshot{
		Version:  SnapshotVersion,
		Sessions: sessions,
	}
}

// PutSnapshot replaces the store contents from a persistence envelope.
// Nil entries are skipped.
func (st *SessionStore) PutSnapshot(snap *StoreSnapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions = make(map[string]*Session, len(snap.Sessions))
	for token, sessionSnap := range snap.Sessions {
		if sessionSnap == nil || token == "" {
			continue
		}
		st.sessions[token] = NewSessionFromSnapshot(sessionSnap)
	}
}
