// Package session keeps track of who is signed in on this client and gates
// catalog, settings and user mutations on the admin role.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/irsalhamdi/realty-training/client"
	"github.com/irsalhamdi/realty-training/core/claims"
	"github.com/sirupsen/logrus"
)

// Session is the client's view of the signed in account.
type Session struct {
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	Role          claims.Role `json:"role"`
	Authenticated bool        `json:"-"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Manager holds the session for one client. It is never persisted: each
// process signs in again.
type Manager struct {
	backend client.Backend
	log     logrus.FieldLogger

	mu      sync.RWMutex
	current Session
}

func NewManager(backend client.Backend, log logrus.FieldLogger) *Manager {
	return &Manager{
		backend: backend,
		log:     log,
	}
}

// Login asks the backend to verify the credentials. Every rejection yields
// the same apperr.ErrAuthentication so callers cannot tell unknown accounts
// from wrong passwords.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, apperr.Validation("email and password are required")
	}

	var s Session
	err := m.backend.Post(ctx, "/auth/login", Credentials{Email: email, Password: password}, &s)
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrNetwork):
		return Session{}, err
	case errors.Is(err, apperr.ErrUnauthenticated), errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrForbidden), errors.Is(err, apperr.ErrNotFound):
		m.log.WithField("email", email).Info("login rejected")
		return Session{}, apperr.ErrAuthentication
	default:
		return Session{}, err
	}

	if !s.Role.Valid() {
		s.Role = claims.RoleUser
	}
	s.Authenticated = true

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{"email": s.Email, "role": s.Role}).Info("logged in")
	return s, nil
}

// Logout forgets the local session. The backend cookie is dropped on a best
// effort basis; stores are left for the caller to tear down.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	prev := m.current
	m.current = Session{}
	m.mu.Unlock()

	if !prev.Authenticated {
		return
	}
	if err := m.backend.Post(ctx, "/auth/logout", nil, nil); err != nil {
		m.log.WithField("message", err).Warn("backend logout failed")
	}
	m.log.WithField("email", prev.Email).Info("logged out")
}

func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) RequireAuth() error {
	if !m.Current().Authenticated {
		return apperr.ErrUnauthenticated
	}
	return nil
}

func (m *Manager) RequireAdmin() error {
	s := m.Current()
	if !s.Authenticated {
		return apperr.ErrUnauthenticated
	}
	if s.Role != claims.RoleAdmin {
		return apperr.ErrForbidden
	}
	return nil
}
