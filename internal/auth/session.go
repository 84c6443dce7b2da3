package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/example/cashew-corner/internal/client"
	"github.com/example/cashew-corner/internal/logging"
	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/validation"
	"github.com/sirupsen/logrus"
)

const DefaultTokenType = "Bearer"

const (
	loginFallbackMessage = "Unable to sign in. Please try again."
	loginUnreachable     = "Cannot reach authentication service. Check if the backend is running."
)

// AuthAPI is the backend surface the manager needs; *client.AuthClient implements it
type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Logout(ctx context.Context, authorization string) error
}

// LoginError carries the user-facing text for a failed login
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }
func (e *LoginError) Unwrap() error { return e.Err }

type ManagerOption func(*Manager)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func WithLogger(logger logrus.FieldLogger) ManagerOption {
	return func(m *Manager) { m.log = logging.Component(logger, "Session") }
}

// Manager owns the bearer token and its expiry. Its state is guarded by a
// mutex because the expiry timer fires on its own goroutine.
type Manager struct {
	api   AuthAPI
	store TokenStore
	now   func() time.Time
	log   *logrus.Entry

	mu         sync.Mutex
	session    *Session
	timer      *time.Timer
	generation uint64

	expired chan struct{}
}

func NewManager(api AuthAPI, store TokenStore, opts ...ManagerOption) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	m := &Manager{
		api:     api,
		store:   store,
		now:     time.Now,
		log:     logging.Component(logging.Discard(), "Session"),
		expired: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Expired delivers one signal per expiry. It is meant for a single consumer;
// signals raised while an earlier one is still unread are coalesced.
func (m *Manager) Expired() <-chan struct{} {
	return m.expired
}

// Restore loads a stored session and restarts its timer. A session that
// expired while stored is cleared and signalled.
func (m *Manager) Restore() error {
	session, ok, err := m.store.Load()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &session
	m.startTimerLocked()
	return nil
}

// Login authenticates and persists the session. Failures come back as *LoginError.
func (m *Manager) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	req := model.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := validation.New().Struct(req); err != nil {
		return model.LoginResponse{}, err
	}

	resp, err := m.api.Login(ctx, req)
	if err != nil {
		m.log.WithError(err).Warn("login failed")
		return model.LoginResponse{}, &LoginError{Message: LoginMessage(err), Err: err}
	}

	session := Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		User:         resp.User,
	}
	switch {
	case resp.ExpiresIn > 0:
		session.ExpiresAt = m.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	default:
		if exp, ok := TokenExpiry(resp.AccessToken); ok {
			session.ExpiresAt = exp
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(session); err != nil {
		return model.LoginResponse{}, err
	}
	m.session = &session
	m.startTimerLocked()
	m.log.WithField("expires_at", session.ExpiresAt).Info("session started")
	return resp, nil
}

// LoginMessage maps a login failure to the text shown on the sign-in screen
func LoginMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Unreachable() {
		return loginUnreachable
	}
	return client.Message(err, loginFallbackMessage)
}

// Logout clears credentials locally and stops the timer
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// LogoutFromServer asks the backend to end the session, ignoring its answer,
// and always logs out locally.
func (m *Manager) LogoutFromServer(ctx context.Context) {
	header := m.authorizationHeader()
	if header != "" {
		if err := m.api.Logout(ctx, header); err != nil {
			m.log.WithError(err).Debug("server logout failed")
		}
	}
	m.Logout()
}

// HasActiveSession reports a token that has not expired; finding it expired
// triggers the expiry handling.
func (m *Manager) HasActiveSession() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.AccessToken == "" {
		return false
	}
	if m.expiredLocked() {
		m.expireLocked()
		return false
	}
	return true
}

// IsTokenExpired is false when no expiry is known
func (m *Manager) IsTokenExpired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expiredLocked()
}

func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.AccessToken
}

func (m *Manager) TokenType() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.TokenType == "" {
		return DefaultTokenType
	}
	return m.session.TokenType
}

func (m *Manager) CurrentUser() *model.AuthUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	return m.session.User
}

// Session returns a copy of the current session
func (m *Manager) Session() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Authorize attaches the bearer header to everything except login and logout
func (m *Manager) Authorize(req *http.Request) {
	path := req.URL.Path
	if strings.Contains(path, client.LoginPath) || strings.Contains(path, client.LogoutPath) {
		return
	}
	if header := m.authorizationHeader(); header != "" {
		req.Header.Set("Authorization", header)
	}
}

// HandleUnauthorized treats a backend 401 exactly like local expiry
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return
	}
	m.log.Info("backend rejected token")
	m.expireLocked()
}

func (m *Manager) authorizationHeader() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.AccessToken == "" {
		return ""
	}
	tokenType := m.session.TokenType
	if tokenType == "" {
		tokenType = DefaultTokenType
	}
	return tokenType + " " + m.session.AccessToken
}

func (m *Manager) expiredLocked() bool {
	if m.session == nil || m.session.ExpiresAt.IsZero() {
		return false
	}
	return !m.now().Before(m.session.ExpiresAt)
}

func (m *Manager) startTimerLocked() {
	m.stopTimerLocked()
	if m.session == nil || m.session.ExpiresAt.IsZero() {
		return
	}

	remaining := m.session.ExpiresAt.Sub(m.now())
	if remaining <= 0 {
		m.expireLocked()
		return
	}

	gen := m.generation
	m.timer = time.AfterFunc(remaining, func() { m.onTimer(gen) })
}

func (m *Manager) onTimer(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// a login or logout since scheduling makes this timer stale
	if gen != m.generation || m.session == nil {
		return
	}
	m.expireLocked()
}

func (m *Manager) stopTimerLocked() {
	m.generation++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) expireLocked() {
	m.log.Info("session expired")
	select {
	case m.expired <- struct{}{}:
	default:
	}
	m.clearLocked()
}

func (m *Manager) clearLocked() {
	m.stopTimerLocked()
	m.session = nil
	if err := m.store.Clear(); err != nil {
		m.log.WithError(err).Warn("clear session store")
	}
}
