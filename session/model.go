// Package session holds the in-memory authenticated session model shared
// by the client controller, the token scheduler, and the storage layer.
package session

import "slices"

// User is the identity snapshot attached to a session. It is re-derived
// from the backend on every token refresh and never persisted locally.
type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
	Locale      string   `json:"locale,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	DefaultRole string   `json:"defaultRole,omitempty"`
	IsAnonymous bool     `json:"isAnonymous,omitempty"`
}

// Session is one authenticated login: the access token used on API
// calls, the refresh token that renews it, the expiry hint in seconds,
// and the user snapshot.
type Session struct {
	AccessToken          string `json:"accessToken"`
	AccessTokenExpiresIn int64  `json:"accessTokenExpiresIn"`
	RefreshToken         string `json:"refreshToken"`
	User                 *User  `json:"user"`
}

// Valid reports whether the session carries both tokens. A session
// missing either token is treated as absent, never installed partially.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && s.RefreshToken != ""
}

// Clone returns a deep copy so callers can hand sessions to observers
// without sharing mutable state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	cp := *s
	if s.User != nil {
		user := *s.User
		user.Roles = slices.Clone(s.User.Roles)
		cp.User = &user
	}
	return &cp
}
