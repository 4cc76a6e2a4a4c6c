package user

import (
	"strings"
	"time"

	"github.com/irsalhamdi/realty-training/core/claims"
	"github.com/irsalhamdi/realty-training/validate"
)

// User is a platform account as the backend reports it. The password hash
// never leaves the server.
type User struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      claims.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UserNew is the create request body.
type UserNew struct {
	Name     string      `json:"name" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     claims.Role `json:"role" validate:"required,oneof=admin user"`
}

// UserForm is what the admin panel collects. A blank role means a regular
// account.
type UserForm struct {
	Name     string
	Email    string
	Password string
	Role     claims.Role
}

func (f UserForm) newUser() (UserNew, error) {
	nu := UserNew{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.ToLower(strings.TrimSpace(f.Email)),
		Password: f.Password,
		Role:     f.Role,
	}
	if nu.Role == "" {
		nu.Role = claims.RoleUser
	}

	if err := validate.Check(nu); err != nil {
		return UserNew{}, err
	}
	return nu, nil
}
