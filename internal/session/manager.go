// Package session owns the authentication state of the client: anonymous or
// authenticated, the current user profile and the bearer token. It is the
// sole holder of the token; other components read it through accessors at
// use time. A Manager is constructed once at the composition root and passed
// to every collaborator, never held as a package-level singleton.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dmorita/sage/internal/model"
)

// AuthAPI is the slice of the network client the manager needs.
type AuthAPI interface {
	Register(ctx context.Context, reg model.UserRegistration) (string, error)
	Login(ctx context.Context, creds model.UserLogin) (model.AuthResponse, error)
}

// Manager is the session state machine. The mutex serializes mutating
// operations, so at most one login/register/logout is in flight; overlapping
// calls block until the current one settles.
type Manager struct {
	client AuthAPI
	store  TokenStore
	logger *zap.Logger
	now    func() time.Time

	mu            sync.Mutex
	authenticated bool
	token         string
	user          model.User
	hasUser       bool
}

// NewManager wires the manager to its network client and durable token
// store. logger may be nil.
func NewManager(client AuthAPI, store TokenStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		client: client,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Login exchanges credentials for a session. On success the user and token
// are populated before the authenticated flag flips, so an observer that
// sees authenticated == true always sees a complete session. On any failure
// the state is left exactly as it was.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	resp, err := m.client.Login(ctx, model.UserLogin{Email: email, PasswordHash: password})
	if err != nil {
		return err
	}

	// Flag last: user and token must be visible before authenticated.
	m.user = model.UserFromAuth(resp.User, m.now())
	m.hasUser = true
	m.token = resp.Token
	m.authenticated = true

	if err := m.store.Save(resp.Token); err != nil {
		// The in-memory session stands; only restart restoration suffers.
		m.logger.Warn("failed to persist token", zap.Error(err))
	}

	m.logger.Info("logged in", zap.String("user", m.user.ID))
	return nil
}

// Register creates an account and returns the server's confirmation
// message. Session state never changes: the user still has to log in.
func (m *Manager) Register(ctx context.Context, firstName, lastName, email, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.client.Register(ctx, model.UserRegistration{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: password,
	})
}

// Logout unconditionally returns to the anonymous state and removes the
// durable token. It always succeeds from the caller's perspective.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.user = model.User{}
	m.hasUser = false
	m.authenticated = false

	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear stored token", zap.Error(err))
	}
	m.logger.Info("logged out")
}

// Restore pulls a previously persisted token into memory at startup. It
// deliberately does NOT flip the authenticated flag or fetch the user: the
// token is never re-validated against the server, so a restored session
// looks anonymous while still carrying a usable bearer token.
func (m *Manager) Restore() {
	token, err := m.store.Load()
	if err != nil {
		m.logger.Warn("failed to restore token", zap.Error(err))
		return
	}
	if token == "" {
		return
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	m.logger.Debug("restored token from store")
}

// Authenticated reports whether a login has completed this process.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// Token returns the current bearer token, restored or freshly issued.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// CurrentUser returns the profile captured at login.
func (m *Manager) CurrentUser() (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.hasUser
}
