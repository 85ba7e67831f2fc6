package api

import (
	"github.com/kochabx/auth/session"
)

// MFA is returned instead of a session when the account has multi-factor
// auth enabled. The ticket is exchanged for a session in a second step.
type MFA struct {
	Enabled bool   `json:"enabled"`
	Ticket  string `json:"ticket"`
}

// SignInData is the payload of every session-producing endpoint. Exactly
// one of Session or MFA is set on success.
type SignInData struct {
	Session *session.Session `json:"session"`
	MFA     *MFA             `json:"mfa"`
}

// SignUpEmailPasswordRequest registers a new account.
type SignUpEmailPasswordRequest struct {
	Email       string            `json:"email" validate:"required,email"`
	Password    string            `json:"password" validate:"required,min=3"`
	DisplayName string            `json:"displayName,omitempty"`
	Locale      string            `json:"locale,omitempty"`
	DefaultRole string            `json:"defaultRole,omitempty"`
	Roles       []string          `json:"roles,omitempty"`
	Profile     map[string]string `json:"profile,omitempty"`
}

// SignInEmailPasswordRequest signs in with credentials.
type SignInEmailPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInPasswordlessEmailRequest requests a magic link email. No session
// is returned; the user completes sign-in out of band.
type SignInPasswordlessEmailRequest struct {
	Email       string            `json:"email" validate:"required,email"`
	Locale      string            `json:"locale,omitempty"`
	DefaultRole string            `json:"defaultRole,omitempty"`
	Roles       []string          `json:"roles,omitempty"`
	DisplayName string            `json:"displayName,omitempty"`
	Profile     map[string]string `json:"profile,omitempty"`
}

// SignInPasswordlessSmsRequest requests a one-time code via SMS.
type SignInPasswordlessSmsRequest struct {
	PhoneNumber string            `json:"phoneNumber" validate:"required,e164"`
	Locale      string            `json:"locale,omitempty"`
	DefaultRole string            `json:"defaultRole,omitempty"`
	Roles       []string          `json:"roles,omitempty"`
	Profile     map[string]string `json:"profile,omitempty"`
}

// SignInPasswordlessSmsOtpRequest exchanges a received one-time code for
// a session.
type SignInPasswordlessSmsOtpRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	Otp         string `json:"otp" validate:"required"`
}

// SignOutRequest revokes a refresh token, optionally for all of the
// user's sessions.
type SignOutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
	All          bool   `json:"all,omitempty"`
}

// RefreshTokenRequest exchanges a refresh token for a new session.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ResetPasswordRequest sends a password reset email.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest sets a new password, either for the signed-in
// user or via a reset ticket.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=3"`
	Ticket      string `json:"ticket,omitempty"`
}

// SendVerificationEmailRequest re-sends the address verification email.
type SendVerificationEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangeEmailRequest starts an email change; the new address must be
// verified before it becomes active.
type ChangeEmailRequest struct {
	NewEmail string `json:"newEmail" validate:"required,email"`
}

// VerifyEmailRequest confirms an email address with a ticket.
type VerifyEmailRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Ticket string `json:"ticket" validate:"required"`
}

// DeanonymizeRequest upgrades an anonymous user to a real account.
type DeanonymizeRequest struct {
	SignInMethod string   `json:"signInMethod" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password,omitempty"`
	Connection   string   `json:"connection,omitempty"`
	DefaultRole  string   `json:"defaultRole,omitempty"`
	AllowedRoles []string `json:"allowedRoles,omitempty"`
}
