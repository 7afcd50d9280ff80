package survey

import (
	"SurveyBot/model"
	"sync"
)

// SessionRepository maps users to their in-progress survey. The engine
// serialises access per user; implementations only need to be safe for
// concurrent use across different users.
type SessionRepository interface {
	Get(userID int64) (model.Session, bool)
	Put(session model.Session)
	Delete(userID int64)
}

// MemorySessions keeps sessions in process memory. They are lost on restart.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[int64]model.Session
}

// NewMemorySessions returns an empty in-memory session repository.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[int64]model.Session)}
}

// Get returns the session of userID, if any.
func (m *MemorySessions) Get(userID int64) (model.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Put stores session, replacing any previous one for the same user.
func (m *MemorySessions) Put(session model.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.UserID] = session
}

// Delete removes the session of userID.
func (m *MemorySessions) Delete(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Len returns the number of active sessions.
func (m *MemorySessions) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
