package client

import (
	"time"

	"github.com/kochabx/auth/core/validator"
	"github.com/kochabx/auth/log"
	"github.com/kochabx/auth/store"
)

// defaultTimeout bounds requests issued on the client's own behalf
// (automatic sign-in, scheduled refreshes).
const defaultTimeout = 10 * time.Second

// Option configures the client
type Option func(*Client)

// WithBackend replaces the wire client, mainly for tests.
func WithBackend(b Backend) Option {
	return func(c *Client) {
		c.backend = b
	}
}

// WithStorage sets the refresh token store. Defaults to in-memory, so
// sessions do not survive a restart unless a persistent store is given.
func WithStorage(s store.Storage) Option {
	return func(c *Client) {
		if s != nil {
			c.storage = s
		}
	}
}

// WithStorageKey changes the key the refresh token is stored under,
// for several clients sharing one store.
func WithStorageKey(key string) Option {
	return func(c *Client) {
		if key != "" {
			c.storageKey = key
		}
	}
}

// WithLogger sets the logger. Defaults to the global one.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithValidator replaces the input validator.
func WithValidator(v validator.Validator) Option {
	return func(c *Client) {
		if v != nil {
			c.validate = v
		}
	}
}

// WithAutoRefresh controls background token renewal. On by default.
func WithAutoRefresh(enabled bool) Option {
	return func(c *Client) {
		c.autoRefresh = enabled
	}
}

// WithAutoLogin controls the automatic sign-in from a stored refresh
// token at construction. On by default.
func WithAutoLogin(enabled bool) Option {
	return func(c *Client) {
		c.autoLogin = enabled
	}
}

// WithRefreshInterval pins the renewal period instead of deriving it
// from the access token lifetime.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.refreshInterval = d
		}
	}
}

// WithSleepSampleRate tunes how often the suspend detector samples the
// clock. Mainly for tests.
func WithSleepSampleRate(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.sampleRate = d
		}
	}
}

// WithTimeout bounds client-initiated requests. Has no effect on the
// backend set via WithBackend.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}
