package claims

import (
	"context"
	"errors"
)

// Role is an account's permission level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Claims identifies the account behind a request.
type Claims struct {
	Email string
	Name  string
	Role  Role
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func Get(ctx context.Context) (Claims, error) {
	v, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{}, errors.New("claim value missing from context")
	}
	return v, nil
}

func IsAdmin(ctx context.Context) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.Role == RoleAdmin
}

// IsUser reports whether the request was made by the account with email.
func IsUser(ctx context.Context, email string) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.Email == email
}
