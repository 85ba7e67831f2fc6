// Package store provides the pluggable persistence layer for the
// refresh token. A single durable key survives process restarts; every
// other session field is re-derived from the backend on refresh.
package store

import (
	"context"
	"errors"
)

// DefaultRefreshTokenKey is the key the client persists the refresh
// token under when no custom key is configured.
const DefaultRefreshTokenKey = "refreshToken"

// ErrNotFound is returned by Get when the key has never been set or was
// removed.
var ErrNotFound = errors.New("store: key not found")

// Storage is the capability a persistence backend must provide. All
// operations take a context so remote backends can honor cancellation.
type Storage interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value for key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Noop is a Storage that persists nothing. The client degrades to it
// when a configured backend is unavailable: sessions then live only in
// memory and do not survive a restart.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, error) { return "", ErrNotFound }
func (Noop) Set(context.Context, string, string) error   { return nil }
func (Noop) Remove(context.Context, string) error        { return nil }
