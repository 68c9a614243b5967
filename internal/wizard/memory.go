// internal/wizard/memory.go
package wizard

import (
	"context"
	"sync"

	"aiready-check/internal/common/errors"
)

// MemoryStore keeps sessions in a process-local map. Sessions survive
// interaction round-trips but not process restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return Session{}, errors.NewSessionNotFoundError(id)
	}
	return session, nil
}

func (m *MemoryStore) Put(_ context.Context, session Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = session
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}
