package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/realty-training/api/web"
	"github.com/irsalhamdi/realty-training/api/weberr"
	"github.com/irsalhamdi/realty-training/core/session"
	"github.com/irsalhamdi/realty-training/core/user"
	"github.com/irsalhamdi/realty-training/rate"
)

var errCredentials = errors.New("invalid credentials")

// HandleLogin checks the credentials and starts a session. Every rejection
// answers the same 401 body.
func HandleLogin(users *user.Repo, sm *scs.SessionManager, limiter *rate.Limiter) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cred session.Credentials
		if err := web.Decode(w, r, &cred); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding credentials: %w", err))
		}

		email := strings.ToLower(strings.TrimSpace(cred.Email))
		fields := weberr.WithFields(map[string]interface{}{"email": email})

		if email == "" || cred.Password == "" {
			return weberr.NewError(errCredentials, errCredentials.Error(), http.StatusUnauthorized, fields)
		}

		if limiter != nil && !limiter.Check(email) {
			return weberr.TooManyRequests(errors.New("login attempts exceeded"), fields)
		}

		u, err := users.Authenticate(ctx, email, cred.Password)
		if err != nil {
			return weberr.NewError(err, errCredentials.Error(), http.StatusUnauthorized, fields)
		}

		if err := sm.RenewToken(ctx); err != nil {
			return fmt.Errorf("renewing session token: %w", err)
		}
		sm.Put(ctx, emailKey, u.Email)
		sm.Put(ctx, nameKey, u.Name)
		sm.Put(ctx, roleKey, string(u.Role))

		s := session.Session{Email: u.Email, Name: u.Name, Role: u.Role}
		return web.Respond(ctx, w, s, http.StatusOK)
	}
}

func HandleLogout(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := sm.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
