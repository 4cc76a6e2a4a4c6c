// Package auth signs accounts in and out of the API and guards routes with
// the session cookie.
package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/realty-training/api/web"
	"github.com/irsalhamdi/realty-training/api/weberr"
	"github.com/irsalhamdi/realty-training/core/claims"
	"github.com/irsalhamdi/realty-training/core/user"
)

const (
	emailKey = "email"
	nameKey  = "name"
	roleKey  = "role"
)

// bufferedWriter holds the answer back until the session is committed,
// since the cookie header must go out before the body.
type bufferedWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.code == 0 {
		b.code = code
	}
}

// LoadAndSave loads the session named by the request cookie and saves it
// once the handler is done.
func LoadAndSave(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var token string
			if c, err := r.Cookie(sm.Cookie.Name); err == nil {
				token = c.Value
			}

			ctx, err := sm.Load(ctx, token)
			if err != nil {
				_ = web.Respond(ctx, w, weberr.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
				return err
			}
			r = r.WithContext(ctx)

			bw := &bufferedWriter{ResponseWriter: w}
			herr := handler(ctx, bw, r)

			switch sm.Status(ctx) {
			case scs.Modified:
				token, expiry, err := sm.Commit(ctx)
				if err != nil {
					_ = web.Respond(ctx, w, weberr.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
					return err
				}
				writeCookie(w, sm, token, expiry)
			case scs.Destroyed:
				writeCookie(w, sm, "", time.Time{})
			}

			w.Header().Add("Vary", "Cookie")
			if bw.code != 0 {
				w.WriteHeader(bw.code)
			}
			if _, err := w.Write(bw.buf.Bytes()); err != nil {
				return err
			}
			return herr
		}
		return h
	}
	return m
}

// writeCookie sets the session cookie; an empty token expires it.
func writeCookie(w http.ResponseWriter, sm *scs.SessionManager, token string, expiry time.Time) {
	c := &http.Cookie{
		Name:     sm.Cookie.Name,
		Value:    token,
		Path:     sm.Cookie.Path,
		Domain:   sm.Cookie.Domain,
		Secure:   sm.Cookie.Secure,
		HttpOnly: sm.Cookie.HttpOnly,
		SameSite: sm.Cookie.SameSite,
	}

	if token == "" {
		c.Expires = time.Unix(1, 0)
		c.MaxAge = -1
	} else if sm.Cookie.Persist {
		c.Expires = time.Unix(expiry.Unix()+1, 0)
		c.MaxAge = int(time.Until(expiry).Seconds() + 1)
	}

	w.Header().Add("Set-Cookie", c.String())
	w.Header().Add("Cache-Control", `no-cache="Set-Cookie"`)
}

// Authenticate rejects requests without a signed in session and puts the
// account's claims in the context. The account is looked up on every
// request, so a deleted or deactivated account loses access at once and
// role changes apply without signing in again.
func Authenticate(sm *scs.SessionManager, users *user.Repo) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			email := sm.GetString(ctx, emailKey)
			if email == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			u, err := users.FetchByEmail(ctx, email)
			if err != nil || !u.IsActive {
				if err := sm.Destroy(ctx); err != nil {
					return fmt.Errorf("destroying session: %w", err)
				}
				return weberr.NotAuthorized(errors.New("account no longer exists"),
					weberr.WithFields(map[string]interface{}{"email": email}))
			}

			ctx = claims.Set(ctx, claims.Claims{
				Email: u.Email,
				Name:  u.Name,
				Role:  u.Role,
			})

			return handler(ctx, w, r.WithContext(ctx))
		}
		return h
	}
	return m
}

// Admin is Authenticate plus the admin role.
func Admin(sm *scs.SessionManager, users *user.Repo) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !claims.IsAdmin(ctx) {
				c, _ := claims.Get(ctx)
				return weberr.Forbidden(errors.New("user is not an admin"),
					weberr.WithFields(map[string]interface{}{"email": c.Email}))
			}

			return handler(ctx, w, r)
		}
		return Authenticate(sm, users)(h)
	}
	return m
}
