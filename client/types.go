package client

import (
	"github.com/kochabx/auth/api"
	"github.com/kochabx/auth/session"
)

// SignUpParams carries email/password registration input. Optional
// fields ride along to the backend unchanged.
type SignUpParams struct {
	Email       string            `validate:"required,email"`
	Password    string            `validate:"required,min=3"`
	DisplayName string            `validate:"omitempty"`
	Locale      string            `validate:"omitempty"`
	DefaultRole string            `validate:"omitempty"`
	Roles       []string          `validate:"omitempty"`
	Metadata    map[string]string `validate:"omitempty"`
}

// SignInParams selects the sign-in method by which fields are set:
//
//   - Provider              OAuth redirect, no network call
//   - Email + Password      password sign-in
//   - Email                 passwordless magic link
//   - PhoneNumber + Otp     one-time code verification
//   - PhoneNumber           passwordless SMS, sends the code
//
// Any other combination is rejected before touching the network.
type SignInParams struct {
	Provider    string
	Email       string
	Password    string
	PhoneNumber string
	Otp         string
	RedirectTo  string
}

// SignInResult is the outcome of SignIn. Exactly one of the optional
// fields is set depending on the method: Session for completed
// sign-ins, MFA when a second factor is required, ProviderURL for OAuth
// redirects. Passwordless initiation leaves all three empty.
type SignInResult struct {
	Session     *session.Session
	MFA         *api.MFA
	Provider    string
	ProviderURL string
}

// CallbackParams carries the values a hosting application parsed from
// an OAuth or magic-link redirect. Only RefreshToken completes the
// sign-in; Email and Otp are passed along for logging context when the
// redirect carried them.
type CallbackParams struct {
	RefreshToken string
	Email        string
	Otp          string
}

// AuthenticationStatus is a snapshot of the client state machine.
// IsLoading is true only before the initial automatic sign-in settles.
type AuthenticationStatus struct {
	IsAuthenticated bool
	IsLoading       bool
}
