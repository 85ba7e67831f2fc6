// Package api is the typed wire client for the remote authentication
// backend. Every method maps to one endpoint and returns errors from the
// shared taxonomy so callers can distinguish unauthorized responses from
// transient backend failures.
package api

import (
	"context"
	nethttp "net/http"
	"time"

	khttp "github.com/kochabx/auth/core/net/http"
	"github.com/kochabx/auth/errors"
	"github.com/kochabx/auth/session"
)

const defaultTimeout = 10 * time.Second

// API talks to the authentication backend over HTTP.
type API struct {
	client  khttp.Clienter
	baseURL string
}

// Option configures the API client
type Option func(*API)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client khttp.Clienter) Option {
	return func(a *API) {
		a.client = client
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(a *API) {
		a.client = khttp.New(
			khttp.WithBaseURL(a.baseURL),
			khttp.WithTimeout(timeout),
		)
	}
}

// New creates an API client for the backend at baseURL.
func New(baseURL string, opts ...Option) *API {
	a := &API{
		baseURL: baseURL,
		client: khttp.New(
			khttp.WithBaseURL(baseURL),
			khttp.WithTimeout(defaultTimeout),
		),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// BaseURL returns the backend base URL.
func (a *API) BaseURL() string {
	return a.baseURL
}

// SignUpEmailPassword registers a new email/password account.
func (a *API) SignUpEmailPassword(ctx context.Context, req SignUpEmailPasswordRequest) (*SignInData, error) {
	data := &SignInData{}
	if err := a.post(ctx, "/signup/email-password", req, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SignInEmailPassword signs in with email and password.
func (a *API) SignInEmailPassword(ctx context.Context, req SignInEmailPasswordRequest) (*SignInData, error) {
	data := &SignInData{}
	if err := a.post(ctx, "/signin/email-password", req, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SignInPasswordlessEmail sends a magic link. Sign-in completes out of
// band, so no session is returned.
func (a *API) SignInPasswordlessEmail(ctx context.Context, req SignInPasswordlessEmailRequest) error {
	return a.post(ctx, "/signin/passwordless/email", req, nil)
}

// SignInPasswordlessSms sends a one-time code via SMS.
func (a *API) SignInPasswordlessSms(ctx context.Context, req SignInPasswordlessSmsRequest) error {
	return a.post(ctx, "/signin/passwordless/sms", req, nil)
}

// SignInPasswordlessSmsOtp exchanges the received code for a session.
func (a *API) SignInPasswordlessSmsOtp(ctx context.Context, req SignInPasswordlessSmsOtpRequest) (*SignInData, error) {
	data := &SignInData{}
	if err := a.post(ctx, "/signin/passwordless/sms/otp", req, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SignOut revokes a refresh token on the backend.
func (a *API) SignOut(ctx context.Context, req SignOutRequest) error {
	return a.post(ctx, "/signout", req, nil)
}

// RefreshToken exchanges a refresh token for a fresh session.
func (a *API) RefreshToken(ctx context.Context, refreshToken string) (*session.Session, error) {
	s := &session.Session{}
	if err := a.post(ctx, "/token", RefreshTokenRequest{RefreshToken: refreshToken}, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ResetPassword sends a password reset email.
func (a *API) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return a.post(ctx, "/user/password/reset", req, nil)
}

// ChangePassword sets a new password.
func (a *API) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return a.post(ctx, "/user/password", req, nil)
}

// SendVerificationEmail re-sends the verification email.
func (a *API) SendVerificationEmail(ctx context.Context, req SendVerificationEmailRequest) error {
	return a.post(ctx, "/user/email/send-verification-email", req, nil)
}

// ChangeEmail starts an email change.
func (a *API) ChangeEmail(ctx context.Context, req ChangeEmailRequest) error {
	return a.post(ctx, "/user/email/change", req, nil)
}

// VerifyEmail confirms an email address with a ticket and signs the
// user in on success.
func (a *API) VerifyEmail(ctx context.Context, req VerifyEmailRequest) (*SignInData, error) {
	data := &SignInData{}
	if err := a.post(ctx, "/user/email/verify", req, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Deanonymize upgrades an anonymous user to a full account.
func (a *API) Deanonymize(ctx context.Context, req DeanonymizeRequest) error {
	return a.post(ctx, "/user/deanonymize", req, nil)
}

// ProviderURL builds the OAuth redirect URL for an external provider.
// The caller sends the user's agent there; the provider redirects back
// with a refresh token.
func (a *API) ProviderURL(provider string, params map[string]string) (string, error) {
	builder, err := khttp.FromURL(a.baseURL)
	if err != nil {
		return "", errors.BadRequest("invalid backend url %q: %v", a.baseURL, err)
	}

	builder.AppendPath("signin", "provider", provider)
	if len(params) > 0 {
		builder.SetQueryMap(params)
	}

	return builder.Build()
}

// post sends a JSON request and classifies the outcome into the shared
// error taxonomy.
func (a *API) post(ctx context.Context, path string, body, dest any) error {
	opts := []func(*khttp.RequestOption){khttp.WithContext(ctx)}
	if dest != nil {
		opts = append(opts, khttp.WithResponse(dest))
	}

	resp, err := a.client.Request(khttp.MethodPost, path, body, opts...)
	if err != nil {
		return transportError(err)
	}
	if resp.IsSuccess() {
		return nil
	}

	return statusError(resp)
}

// transportError wraps connection-level failures. These never carry an
// HTTP status, so they classify as transient service unavailability.
func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.GatewayTimeout("auth backend timed out: %v", err).WithCause(err)
	}
	return errors.ServiceUnavailable("auth backend unreachable: %v", err).WithCause(err)
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusError converts a non-2xx response into a coded error, keeping
// the backend's message when one is present.
func statusError(resp *khttp.Response) error {
	var body errorBody
	_ = resp.Decode(&body)

	message := body.Message
	if message == "" {
		message = nethttp.StatusText(resp.StatusCode)
	}

	return errors.New(resp.StatusCode, "%s", message)
}
