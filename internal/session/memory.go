package session

import (
	"context" // Context for interface parity
	"sync"    // Mutex for the maps

	"github.com/google/uuid" // Opaque token generation
)

// MemoryStore is an in-process Store. It backs tests and single-instance
// runs without Redis; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]uint
	flashes  map[string]Flash
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]uint),
		flashes:  make(map[string]Flash),
	}
}

// Create opens a session for userID and returns the opaque token.
func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.sessions[token] = userID
	return token, nil
}

// UserID resolves a session token to its user ID.
func (s *MemoryStore) UserID(_ context.Context, token string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[token]
	return userID, ok, nil
}

// Destroy removes a session.
func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// SetFlash stores a one-shot flash message under id.
func (s *MemoryStore) SetFlash(_ context.Context, id string, f Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes[id] = f
	return nil
}

// PopFlash returns the flash message under id and deletes it, or nil.
func (s *MemoryStore) PopFlash(_ context.Context, id string) (*Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flashes[id]
	if !ok {
		return nil, nil
	}
	delete(s.flashes, id)
	return &f, nil
}
