package handlers

import (
	"sync"

	"github.com/google/uuid"

	"github.com/obaflips/court-reads/internal/draft"
)

// liveSession pairs a draft engine with its server-side identity.
// Sessions exist only for the duration of a draft; finished lineups
// go to the team store, sessions are simply dropped.
type liveSession struct {
	ID        string
	Session   *draft.Session
	UserIndex int
}

// sessionManager holds all in-flight drafts.
type sessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*liveSession
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[string]*liveSession)}
}

func (m *sessionManager) add(session *draft.Session, userIndex int) *liveSession {
	live := &liveSession{
		ID:        uuid.NewString(),
		Session:   session,
		UserIndex: userIndex,
	}
	m.mu.Lock()
	m.sessions[live.ID] = live
	m.mu.Unlock()
	return live
}

func (m *sessionManager) get(id string) (*liveSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	live, ok := m.sessions[id]
	return live, ok
}

func (m *sessionManager) remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
