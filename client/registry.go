package client

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kochabx/auth/session"
)

// Event is an authentication state transition visible to subscribers.
type Event string

const (
	// SignedIn fires on the transition from signed-out to authenticated.
	SignedIn Event = "SIGNED_IN"
	// SignedOut fires on the transition from authenticated (or loading)
	// to signed-out.
	SignedOut Event = "SIGNED_OUT"
)

// TokenChangedFunc is invoked after every session install, including
// background refreshes that only rotate tokens.
type TokenChangedFunc func()

// AuthChangedFunc is invoked on SIGNED_IN / SIGNED_OUT transitions. The
// session argument is a clone and nil for SIGNED_OUT.
type AuthChangedFunc func(event Event, s *session.Session)

type tokenEntry struct {
	id uuid.UUID
	fn TokenChangedFunc
}

type authEntry struct {
	id uuid.UUID
	fn AuthChangedFunc
}

// registry tracks subscribers. Entries carry a handle so unsubscribe
// removes the entry instead of leaving a tombstone, and removal keeps
// notification order for the remaining subscribers.
type registry struct {
	mu        sync.Mutex
	tokenSubs []tokenEntry
	authSubs  []authEntry
}

func newRegistry() *registry {
	return &registry{}
}

// subscribeToken registers fn and returns an idempotent unsubscribe.
func (r *registry) subscribeToken(fn TokenChangedFunc) func() {
	if fn == nil {
		return func() {}
	}

	id := uuid.New()

	r.mu.Lock()
	r.tokenSubs = append(r.tokenSubs, tokenEntry{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.tokenSubs {
			if e.id == id {
				r.tokenSubs = append(r.tokenSubs[:i], r.tokenSubs[i+1:]...)
				return
			}
		}
	}
}

// subscribeAuth registers fn and returns an idempotent unsubscribe.
func (r *registry) subscribeAuth(fn AuthChangedFunc) func() {
	if fn == nil {
		return func() {}
	}

	id := uuid.New()

	r.mu.Lock()
	r.authSubs = append(r.authSubs, authEntry{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.authSubs {
			if e.id == id {
				r.authSubs = append(r.authSubs[:i], r.authSubs[i+1:]...)
				return
			}
		}
	}
}

// notifyTokenChanged calls subscribers outside the lock so a callback
// can subscribe or unsubscribe without deadlocking.
func (r *registry) notifyTokenChanged() {
	r.mu.Lock()
	subs := make([]tokenEntry, len(r.tokenSubs))
	copy(subs, r.tokenSubs)
	r.mu.Unlock()

	for _, e := range subs {
		e.fn()
	}
}

// notifyAuthChanged calls subscribers in registration order.
func (r *registry) notifyAuthChanged(event Event, s *session.Session) {
	r.mu.Lock()
	subs := make([]authEntry, len(r.authSubs))
	copy(subs, r.authSubs)
	r.mu.Unlock()

	for _, e := range subs {
		e.fn(event, s.Clone())
	}
}
