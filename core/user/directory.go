// Package user manages platform accounts from the admin panel.
package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/irsalhamdi/realty-training/client"
	"github.com/sirupsen/logrus"
)

type Gate interface {
	RequireAdmin() error
}

// Directory is the admin's view of all accounts.
type Directory struct {
	backend client.Backend
	gate    Gate
	log     logrus.FieldLogger

	mu    sync.RWMutex
	users []User
}

func NewDirectory(backend client.Backend, gate Gate, log logrus.FieldLogger) *Directory {
	return &Directory{
		backend: backend,
		gate:    gate,
		log:     log,
	}
}

func (d *Directory) Load(ctx context.Context) error {
	if err := d.gate.RequireAdmin(); err != nil {
		return err
	}

	var users []User
	if err := d.backend.Get(ctx, "/users", &users); err != nil {
		return fmt.Errorf("loading users: %w", err)
	}

	d.mu.Lock()
	d.users = users
	d.mu.Unlock()
	return nil
}

func (d *Directory) Users() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]User(nil), d.users...)
}

// Create adds an account. The duplicate check against the last loaded list
// only saves a round trip; the backend has the final word.
func (d *Directory) Create(ctx context.Context, form UserForm) (User, error) {
	if err := d.gate.RequireAdmin(); err != nil {
		return User{}, err
	}

	nu, err := form.newUser()
	if err != nil {
		return User{}, err
	}

	if d.known(nu.Email) {
		return User{}, fmt.Errorf("%w: %s", apperr.ErrDuplicateEmail, nu.Email)
	}

	var u User
	if err := d.backend.Post(ctx, "/users", nu, &u); err != nil {
		if client.IsStatus(err, http.StatusConflict) {
			return User{}, fmt.Errorf("%w: %s", apperr.ErrDuplicateEmail, nu.Email)
		}
		return User{}, fmt.Errorf("creating user: %w", err)
	}

	d.log.WithFields(logrus.Fields{"email": u.Email, "role": u.Role}).Info("user created")

	if err := d.Load(ctx); err != nil {
		return u, fmt.Errorf("creating user: written but resync failed: %w", err)
	}
	return u, nil
}

// Delete removes an account for good. Confirming with the admin is the
// caller's job.
func (d *Directory) Delete(ctx context.Context, id string) error {
	if err := d.gate.RequireAdmin(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return apperr.Validation("user id is required")
	}

	if err := d.backend.Delete(ctx, client.Path("users", id), nil); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			d.log.WithField("id", id).Warn("deleting unknown user")
		}
		return fmt.Errorf("deleting user[%s]: %w", id, err)
	}

	if err := d.Load(ctx); err != nil {
		return fmt.Errorf("deleting user[%s]: written but resync failed: %w", id, err)
	}
	return nil
}

func (d *Directory) known(email string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
