// Package client manages the authenticated session against a remote
// auth backend: sign-in in its several forms, background token renewal
// with suspend detection, pluggable refresh token persistence, and
// subscriber notification on state changes.
package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kochabx/auth/api"
	"github.com/kochabx/auth/core/validator"
	"github.com/kochabx/auth/errors"
	"github.com/kochabx/auth/log"
	"github.com/kochabx/auth/session"
	"github.com/kochabx/auth/store"
)

// Backend is the wire surface the client needs. *api.API implements it;
// tests substitute their own.
type Backend interface {
	SignUpEmailPassword(ctx context.Context, req api.SignUpEmailPasswordRequest) (*api.SignInData, error)
	SignInEmailPassword(ctx context.Context, req api.SignInEmailPasswordRequest) (*api.SignInData, error)
	SignInPasswordlessEmail(ctx context.Context, req api.SignInPasswordlessEmailRequest) error
	SignInPasswordlessSms(ctx context.Context, req api.SignInPasswordlessSmsRequest) error
	SignInPasswordlessSmsOtp(ctx context.Context, req api.SignInPasswordlessSmsOtpRequest) (*api.SignInData, error)
	SignOut(ctx context.Context, req api.SignOutRequest) error
	RefreshToken(ctx context.Context, refreshToken string) (*session.Session, error)
	ResetPassword(ctx context.Context, req api.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, req api.ChangePasswordRequest) error
	SendVerificationEmail(ctx context.Context, req api.SendVerificationEmailRequest) error
	ChangeEmail(ctx context.Context, req api.ChangeEmailRequest) error
	VerifyEmail(ctx context.Context, req api.VerifyEmailRequest) (*api.SignInData, error)
	Deanonymize(ctx context.Context, req api.DeanonymizeRequest) error
	ProviderURL(provider string, params map[string]string) (string, error)
}

var _ Backend = (*api.API)(nil)

// Client is the session manager. All methods are safe for concurrent
// use.
type Client struct {
	backend  Backend
	logger   *log.Logger
	validate validator.Validator

	storageKey      string
	autoRefresh     bool
	autoLogin       bool
	refreshInterval time.Duration
	sampleRate      time.Duration
	timeout         time.Duration

	repo  *session.Repository
	subs  *registry
	sched *refreshScheduler

	mu       sync.Mutex
	storage  store.Storage
	loading  bool
	authDone chan struct{}

	// generation invalidates in-flight refreshes: it is bumped on every
	// sign-out, and a refresh response from an older generation is
	// dropped instead of resurrecting the session.
	generation atomic.Uint64
	sf         singleflight.Group
}

// New builds a client for the backend at backendURL. Unless disabled
// via WithAutoLogin, a background sign-in from the stored refresh token
// starts immediately; use WaitAuthentication to block until it settles.
func New(backendURL string, opts ...Option) *Client {
	c := &Client{
		storageKey:  store.DefaultRefreshTokenKey,
		autoRefresh: true,
		autoLogin:   true,
		sampleRate:  defaultSampleRate,
		timeout:     defaultTimeout,
		repo:        session.NewRepository(),
		subs:        newRegistry(),
		loading:     true,
		authDone:    make(chan struct{}),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.logger == nil {
		c.logger = log.G
	}
	if c.validate == nil {
		c.validate = validator.New()
	}
	if c.storage == nil {
		c.storage = store.NewMemory()
	}
	if c.backend == nil {
		c.backend = api.New(backendURL, api.WithTimeout(c.timeout))
	}

	c.sched = newRefreshScheduler(c.sampleRate, c.refreshInterval, c.scheduledRefresh)

	if c.autoLogin {
		go c.autoSignIn()
	} else {
		c.mu.Lock()
		c.settleLoadingLocked()
		c.mu.Unlock()
	}

	return c
}

// Close stops the background timers. The session and stored token are
// left intact.
func (c *Client) Close() error {
	c.sched.Close()
	return nil
}

// SignUp registers an email/password account. The returned session is
// nil when the backend requires email verification before sign-in; when
// a session is returned it has already been installed.
func (c *Client) SignUp(ctx context.Context, params SignUpParams) (*session.Session, error) {
	if err := c.validate.Struct(params); err != nil {
		return nil, errors.BadRequest("invalid sign-up parameters: %v", err).WithCause(err)
	}

	req := api.SignUpEmailPasswordRequest{
		Email:       params.Email,
		Password:    params.Password,
		DisplayName: params.DisplayName,
		Locale:      params.Locale,
		DefaultRole: params.DefaultRole,
		Roles:       params.Roles,
		Profile:     params.Metadata,
	}

	gen := c.generation.Load()
	data, err := c.backend.SignUpEmailPassword(ctx, req)
	if err != nil {
		return nil, err
	}

	if data.Session.Valid() {
		c.installSession(ctx, data.Session, gen)
		return data.Session, nil
	}
	return nil, nil
}

// SignIn dispatches on the populated fields of params; see
// SignInParams for the supported combinations. Completed sign-ins are
// installed before returning.
func (c *Client) SignIn(ctx context.Context, params SignInParams) (*SignInResult, error) {
	switch {
	case params.Provider != "":
		return c.signInProvider(params)

	case params.Email != "" && params.Password != "":
		return c.signInEmailPassword(ctx, params)

	case params.PhoneNumber != "" && params.Otp != "":
		return c.signInSmsOtp(ctx, params)

	case params.PhoneNumber != "":
		req := api.SignInPasswordlessSmsRequest{PhoneNumber: params.PhoneNumber}
		if err := c.validate.Struct(req); err != nil {
			return nil, errors.BadRequest("invalid phone number: %v", err).WithCause(err)
		}
		if err := c.backend.SignInPasswordlessSms(ctx, req); err != nil {
			return nil, err
		}
		return &SignInResult{}, nil

	case params.Email != "" && params.Otp != "":
		// The backend verifies email codes out of band; only SMS codes
		// have an exchange endpoint.
		return nil, errors.BadRequest("email one-time codes cannot be exchanged here, use the magic link")

	case params.Email != "":
		req := api.SignInPasswordlessEmailRequest{Email: params.Email}
		if err := c.validate.Struct(req); err != nil {
			return nil, errors.BadRequest("invalid email: %v", err).WithCause(err)
		}
		if err := c.backend.SignInPasswordlessEmail(ctx, req); err != nil {
			return nil, err
		}
		return &SignInResult{}, nil

	default:
		return nil, errors.BadRequest("sign-in parameters select no supported method")
	}
}

func (c *Client) signInProvider(params SignInParams) (*SignInResult, error) {
	var query map[string]string
	if params.RedirectTo != "" {
		query = map[string]string{"redirectTo": params.RedirectTo}
	}

	u, err := c.backend.ProviderURL(params.Provider, query)
	if err != nil {
		return nil, err
	}
	return &SignInResult{Provider: params.Provider, ProviderURL: u}, nil
}

func (c *Client) signInEmailPassword(ctx context.Context, params SignInParams) (*SignInResult, error) {
	req := api.SignInEmailPasswordRequest{Email: params.Email, Password: params.Password}
	if err := c.validate.Struct(req); err != nil {
		return nil, errors.BadRequest("invalid credentials: %v", err).WithCause(err)
	}

	gen := c.generation.Load()
	data, err := c.backend.SignInEmailPassword(ctx, req)
	if err != nil {
		return nil, err
	}

	if data.MFA != nil {
		// No session yet; the ticket completes sign-in in a second step.
		return &SignInResult{MFA: data.MFA}, nil
	}
	if data.Session.Valid() {
		c.installSession(ctx, data.Session, gen)
	}
	return &SignInResult{Session: data.Session}, nil
}

func (c *Client) signInSmsOtp(ctx context.Context, params SignInParams) (*SignInResult, error) {
	req := api.SignInPasswordlessSmsOtpRequest{PhoneNumber: params.PhoneNumber, Otp: params.Otp}
	if err := c.validate.Struct(req); err != nil {
		return nil, errors.BadRequest("invalid one-time code parameters: %v", err).WithCause(err)
	}

	gen := c.generation.Load()
	data, err := c.backend.SignInPasswordlessSmsOtp(ctx, req)
	if err != nil {
		return nil, err
	}

	if data.Session.Valid() {
		c.installSession(ctx, data.Session, gen)
	}
	return &SignInResult{Session: data.Session}, nil
}

// SignOut clears the local session first, then best-effort revokes the
// refresh token on the backend. A failed revocation is returned but
// never reverts the local sign-out. With all set, every session of the
// user is revoked.
func (c *Client) SignOut(ctx context.Context, all bool) error {
	storage := c.getStorage()

	token, err := storage.Get(ctx, c.storageKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.logger.Warn().Err(err).Msg("failed to read stored refresh token")
	}
	if token == "" {
		token = c.repo.RefreshToken()
	}

	c.clearSession()

	if err := storage.Remove(ctx, c.storageKey); err != nil {
		c.logger.Warn().Err(err).Msg("failed to remove stored refresh token")
	}

	if token == "" {
		return nil
	}
	if err := c.backend.SignOut(ctx, api.SignOutRequest{RefreshToken: token, All: all}); err != nil {
		c.logger.Warn().Err(err).Msg("refresh token revocation failed")
		return err
	}
	return nil
}

// CompleteCallback finishes an out-of-band sign-in (OAuth redirect or
// magic link) by exchanging the refresh token the redirect carried for
// a session.
func (c *Client) CompleteCallback(ctx context.Context, params CallbackParams) error {
	if params.RefreshToken == "" {
		return errors.BadRequest("callback carries no refresh token")
	}
	c.logger.Debug().Msg("completing redirect sign-in")
	return c.refresh(ctx, params.RefreshToken)
}

// RefreshSession exchanges refreshToken for a fresh session, falling
// back to the stored token when empty. With no token available anywhere
// the session is cleared without a network call. An unauthorized
// response also clears it; transient failures leave state untouched and
// return the error.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) error {
	return c.refresh(ctx, refreshToken)
}

// GetSession returns a clone of the current session, nil when signed
// out.
func (c *Client) GetSession() *session.Session {
	return c.repo.Get()
}

// GetUser returns the signed-in user, nil when signed out.
func (c *Client) GetUser() *session.User {
	s := c.repo.Get()
	if s == nil {
		return nil
	}
	return s.User
}

// GetAccessToken returns the current access token, empty when signed
// out.
func (c *Client) GetAccessToken() string {
	return c.repo.AccessToken()
}

// GetDecodedAccessToken parses the current access token's claims
// without verifying the signature; verification is the backend's job.
func (c *Client) GetDecodedAccessToken() (*session.Claims, error) {
	token := c.repo.AccessToken()
	if token == "" {
		return nil, errors.Unauthorized("not authenticated")
	}
	return session.DecodeAccessToken(token)
}

// IsAuthenticated reports whether a session is installed.
func (c *Client) IsAuthenticated() bool {
	return c.repo.Present()
}

// GetAuthenticationStatus is a snapshot of the state machine. While the
// initial automatic sign-in is pending it reports not authenticated and
// loading.
func (c *Client) GetAuthenticationStatus() AuthenticationStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return AuthenticationStatus{IsAuthenticated: false, IsLoading: true}
	}
	return AuthenticationStatus{IsAuthenticated: c.repo.Present(), IsLoading: false}
}

// WaitAuthentication blocks until the initial automatic sign-in settles
// or ctx is done, and reports whether a session is installed.
func (c *Client) WaitAuthentication(ctx context.Context) (bool, error) {
	select {
	case <-c.authDone:
		return c.repo.Present(), nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// OnTokenChanged registers fn to run after every session install. The
// returned function unsubscribes and is safe to call more than once.
func (c *Client) OnTokenChanged(fn TokenChangedFunc) func() {
	return c.subs.subscribeToken(fn)
}

// OnAuthStateChanged registers fn to run on SIGNED_IN / SIGNED_OUT
// transitions.
func (c *Client) OnAuthStateChanged(fn AuthChangedFunc) func() {
	return c.subs.subscribeAuth(fn)
}

// ResetPassword sends a password reset email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	req := api.ResetPasswordRequest{Email: email}
	if err := c.validate.Struct(req); err != nil {
		return errors.BadRequest("invalid email: %v", err).WithCause(err)
	}
	return c.backend.ResetPassword(ctx, req)
}

// ChangePassword sets a new password. Ticket is required only when the
// change comes from a reset link instead of a signed-in user.
func (c *Client) ChangePassword(ctx context.Context, newPassword, ticket string) error {
	req := api.ChangePasswordRequest{NewPassword: newPassword, Ticket: ticket}
	if err := c.validate.Struct(req); err != nil {
		return errors.BadRequest("invalid password: %v", err).WithCause(err)
	}
	return c.backend.ChangePassword(ctx, req)
}

// SendVerificationEmail re-sends the address verification email.
func (c *Client) SendVerificationEmail(ctx context.Context, email string) error {
	req := api.SendVerificationEmailRequest{Email: email}
	if err := c.validate.Struct(req); err != nil {
		return errors.BadRequest("invalid email: %v", err).WithCause(err)
	}
	return c.backend.SendVerificationEmail(ctx, req)
}

// ChangeEmail starts an email change for the signed-in user.
func (c *Client) ChangeEmail(ctx context.Context, newEmail string) error {
	req := api.ChangeEmailRequest{NewEmail: newEmail}
	if err := c.validate.Struct(req); err != nil {
		return errors.BadRequest("invalid email: %v", err).WithCause(err)
	}
	return c.backend.ChangeEmail(ctx, req)
}

// VerifyEmail confirms an address with a ticket and returns the session
// the backend produced, without installing it.
func (c *Client) VerifyEmail(ctx context.Context, email, ticket string) (*session.Session, error) {
	req := api.VerifyEmailRequest{Email: email, Ticket: ticket}
	if err := c.validate.Struct(req); err != nil {
		return nil, errors.BadRequest("invalid verification parameters: %v", err).WithCause(err)
	}

	data, err := c.backend.VerifyEmail(ctx, req)
	if err != nil {
		return nil, err
	}
	return data.Session, nil
}

// Deanonymize upgrades an anonymous user to a full account.
func (c *Client) Deanonymize(ctx context.Context, req api.DeanonymizeRequest) error {
	if err := c.validate.Struct(req); err != nil {
		return errors.BadRequest("invalid deanonymize parameters: %v", err).WithCause(err)
	}
	return c.backend.Deanonymize(ctx, req)
}

// autoSignIn resolves the initial loading state from the stored refresh
// token. Unauthorized and missing-token outcomes are already settled by
// refresh; a transient failure settles as signed out while keeping the
// stored token so a later refresh can still succeed.
func (c *Client) autoSignIn() {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.refresh(ctx, ""); err != nil {
		if !errors.IsUnauthorized(err) {
			c.logger.Warn().Err(err).Msg("automatic sign-in failed")
			c.clearSession()
		}
	}
}

// scheduledRefresh runs on the renewal and suspend-detection timers.
func (c *Client) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	_ = c.refresh(ctx, "")
}

// refresh exchanges a refresh token for a new session. Concurrent calls
// for the same token collapse into one request, and a response that
// raced with a sign-out is dropped.
func (c *Client) refresh(ctx context.Context, explicit string) error {
	gen := c.generation.Load()

	token := explicit
	if token == "" {
		stored, err := c.getStorage().Get(ctx, c.storageKey)
		switch {
		case err == nil:
			token = stored
		case errors.Is(err, store.ErrNotFound):
		default:
			c.logger.Warn().Err(err).Msg("failed to read stored refresh token")
		}
	}
	if token == "" {
		c.clearSession()
		return nil
	}

	_, err, _ := c.sf.Do(token, func() (any, error) {
		s, err := c.backend.RefreshToken(ctx, token)
		if err != nil {
			return nil, err
		}
		if !s.Valid() {
			return nil, errors.Internal("refresh response is missing tokens")
		}
		if !c.installSession(ctx, s, gen) {
			// Signed out while the request was in flight.
			return nil, nil
		}
		return s, nil
	})
	if err != nil {
		if errors.IsUnauthorized(err) {
			c.logger.Warn().Err(err).Msg("refresh token rejected, signing out")
			c.clearSession()
			return err
		}
		c.logger.Warn().Err(err).Msg("token refresh failed, keeping current session")
		return err
	}
	return nil
}

// installSession makes s the current session: persists its refresh
// token, (re)arms the renewal timers, and notifies subscribers. Token
// subscribers fire on every install; SIGNED_IN only on the signed-out
// to signed-in edge.
//
// gen is the generation the caller observed before its backend call.
// The comparison and the repository write share one critical section
// with clearSession's bump, so a session resolved after a sign-out can
// never be reinstalled. Reports whether the install was applied.
func (c *Client) installSession(ctx context.Context, s *session.Session, gen uint64) bool {
	c.mu.Lock()
	if c.generation.Load() != gen {
		// Signed out since the caller started; drop the stale session.
		c.mu.Unlock()
		return false
	}
	wasAuthenticated := c.repo.Present()
	c.repo.Set(s)
	c.settleLoadingLocked()
	// Arm inside the critical section so a concurrent clearSession's
	// Disarm cannot be overtaken by this install's Arm.
	if c.autoRefresh {
		c.sched.Arm(s.AccessTokenExpiresIn)
	}
	c.mu.Unlock()

	if err := c.getStorage().Set(ctx, c.storageKey, s.RefreshToken); err != nil {
		if errors.IsStorageUnavailable(err) {
			c.logger.Warn().Err(err).Msg("token storage unavailable, continuing without persistence")
			c.setStorage(store.Noop{})
		} else {
			c.logger.Warn().Err(err).Msg("failed to persist refresh token")
		}
	}

	c.subs.notifyTokenChanged()
	if !wasAuthenticated {
		c.subs.notifyAuthChanged(SignedIn, s)
	}
	return true
}

// clearSession drops the current session and disarms the timers. The
// stored refresh token is untouched; only SignOut removes it. SIGNED_OUT
// fires once, only when there was a session or a pending initial load.
// The generation bump shares the critical section with the repository
// clear so installSession sees them as one step.
func (c *Client) clearSession() {
	c.mu.Lock()
	wasActive := c.loading || c.repo.Present()
	c.repo.Clear()
	c.generation.Add(1)
	c.settleLoadingLocked()
	c.sched.Disarm()
	c.mu.Unlock()

	if wasActive {
		c.subs.notifyAuthChanged(SignedOut, nil)
	}
}

// settleLoadingLocked resolves the initial loading state exactly once.
// Callers hold c.mu.
func (c *Client) settleLoadingLocked() {
	if c.loading {
		c.loading = false
		close(c.authDone)
	}
}

func (c *Client) getStorage() store.Storage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage
}

func (c *Client) setStorage(s store.Storage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storage = s
}
