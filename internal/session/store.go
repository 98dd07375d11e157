package session

import "sync"

// Store is the process-wide holder of the current access token. It is the
// single source of truth for "are we authenticated": writes are visible to
// subsequent reads from any goroutine, nothing caches on top of it.
type Store struct {
	mu    sync.RWMutex
	token string
}

// NewStore creates an empty Store. The process starts unauthenticated.
func NewStore() *Store {
	return &Store{}
}

// Get returns the current access token, or an empty string when there is no
// active session.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set replaces the current access token.
func (s *Store) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear drops the current access token.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
