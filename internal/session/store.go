package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound indicates that no session exists for the given id, either
// because it never existed or because it expired.
var ErrNotFound = errors.New("session not found")

// Store persists wizard sessions between requests.
type Store interface {
	// Get returns the session with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Put saves the session, overwriting any previous version.
	Put(ctx context.Context, s *Session) error
	// Delete removes the session.  Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in a process-local map.  It backs tests and
// serves as the fallback when Redis is unreachable at startup.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Get returns a copy of the stored session so callers cannot mutate the
// map's contents in place.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Put stores a copy of the session.
func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

// Delete removes the session if present.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
