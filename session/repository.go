package session

import "sync"

// Repository is the mutex-guarded holder of the current session. All
// reads return clones; the stored session is never handed out directly.
type Repository struct {
	mu      sync.RWMutex
	current *Session
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Get returns a clone of the current session, or nil when signed out.
func (r *Repository) Get() *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.Clone()
}

// Set installs a session. Invalid sessions are rejected so the
// repository only ever holds a complete token pair.
func (r *Repository) Set(s *Session) bool {
	if !s.Valid() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = s.Clone()
	return true
}

// Clear removes the current session and reports whether one was held.
func (r *Repository) Clear() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	had := r.current != nil
	r.current = nil
	return had
}

// Present reports whether a session is currently held.
func (r *Repository) Present() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current != nil
}

// AccessToken returns the current access token, or "" when signed out.
func (r *Repository) AccessToken() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return ""
	}
	return r.current.AccessToken
}

// RefreshToken returns the current refresh token, or "" when signed out.
func (r *Repository) RefreshToken() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return ""
	}
	return r.current.RefreshToken
}
