package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/irsalhamdi/realty-training/core/claims"
	"github.com/irsalhamdi/realty-training/database"
	"github.com/irsalhamdi/realty-training/validate"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProtected is returned when deleting the bootstrap admin.
	ErrProtected = errors.New("the bootstrap admin cannot be deleted")
)

type account struct {
	User
	hash []byte
}

// Repo is the server side account store.
type Repo struct {
	HashCost int

	mu        sync.RWMutex
	accounts  []account
	protected string
	dummy     []byte
}

func NewRepo() *Repo {
	return &Repo{HashCost: bcrypt.DefaultCost}
}

// Create stores a new account. Emails are unique regardless of case.
func (r *Repo) Create(ctx context.Context, nu UserNew) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), r.HashCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(nu.Email) >= 0 {
		return User{}, fmt.Errorf("email[%s]: %w", nu.Email, database.ErrDBDuplicatedEntry)
	}

	u := User{
		ID:        validate.GenerateID(),
		Name:      nu.Name,
		Email:     strings.ToLower(nu.Email),
		Role:      nu.Role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	r.accounts = append(r.accounts, account{User: u, hash: hash})
	return u, nil
}

// Bootstrap makes sure an admin account exists for email and protects it
// from deletion, so the platform always keeps one way in.
func (r *Repo) Bootstrap(ctx context.Context, name, email, password string) (User, error) {
	u, err := r.Create(ctx, UserNew{Name: name, Email: email, Password: password, Role: claims.RoleAdmin})
	if err != nil && !errors.Is(err, database.ErrDBDuplicatedEntry) {
		return User{}, fmt.Errorf("creating bootstrap admin: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(email)
	r.accounts[i].Role = claims.RoleAdmin
	r.protected = r.accounts[i].ID
	u = r.accounts[i].User
	return u, nil
}

func (r *Repo) List(ctx context.Context) []User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]User, len(r.accounts))
	for i, a := range r.accounts {
		out[i] = a.User
	}
	return out
}

// FetchByEmail returns the account signed in as email.
func (r *Repo) FetchByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(email)
	if i < 0 {
		return User{}, fmt.Errorf("email[%s]: %w", email, database.ErrDBNotFound)
	}
	return r.accounts[i].User, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == r.protected {
		return ErrProtected
	}

	for i, a := range r.accounts {
		if a.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user[%s]: %w", id, database.ErrDBNotFound)
}

// Authenticate checks a password. Unknown emails still pay for a bcrypt
// comparison so both failures take the same time.
func (r *Repo) Authenticate(ctx context.Context, email, password string) (User, error) {
	r.mu.Lock()
	if r.dummy == nil {
		r.dummy, _ = bcrypt.GenerateFromPassword([]byte("dummy password"), r.HashCost)
	}
	dummy := r.dummy

	a := account{hash: dummy}
	i := r.index(email)
	if i >= 0 {
		a = r.accounts[i]
	}
	r.mu.Unlock()

	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil || i < 0 {
		return User{}, ErrInvalidCredentials
	}
	if !a.IsActive {
		return User{}, ErrInvalidCredentials
	}
	return a.User, nil
}

func (r *Repo) index(email string) int {
	for i, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return i
		}
	}
	return -1
}
