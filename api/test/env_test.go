package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/realty-training/api"
	"github.com/irsalhamdi/realty-training/background"
	"github.com/irsalhamdi/realty-training/client"
	"github.com/irsalhamdi/realty-training/core/catalog"
	"github.com/irsalhamdi/realty-training/core/claims"
	"github.com/irsalhamdi/realty-training/core/progress"
	"github.com/irsalhamdi/realty-training/core/session"
	"github.com/irsalhamdi/realty-training/core/settings"
	"github.com/irsalhamdi/realty-training/core/user"
	"github.com/irsalhamdi/realty-training/rate"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const defaultLoginBurst = 100

// TestEnv is a backend served by httptest with one admin and one regular
// account.
type TestEnv struct {
	*httptest.Server
	API string
	Log *logrus.Logger

	AdminID    string
	AdminEmail string
	AdminPass  string
	UserEmail  string
	UserPass   string
}

func NewTestEnv(t *testing.T, loginBurst int) (*TestEnv, error) {
	t.Helper()
	ctx := context.Background()

	log := logrus.New()
	log.SetOutput(io.Discard)

	users := user.NewRepo()
	users.HashCost = bcrypt.MinCost

	env := &TestEnv{
		Log:        log,
		AdminEmail: "admin@realtyonegroupmexico.mx",
		AdminPass:  "admin-secret",
		UserEmail:  "agent@realtyonegroupmexico.mx",
		UserPass:   "agent-secret",
	}

	admin, err := users.Bootstrap(ctx, "Admin", env.AdminEmail, env.AdminPass)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping admin: %w", err)
	}
	env.AdminID = admin.ID

	if _, err := users.Create(ctx, user.UserNew{
		Name:     "Agent",
		Email:    env.UserEmail,
		Password: env.UserPass,
		Role:     claims.RoleUser,
	}); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	limiter := rate.NewLimiter(loginBurst, time.Minute, time.Hour)
	t.Cleanup(limiter.Close)

	env.Server = httptest.NewServer(api.APIMux(api.APIConfig{
		Log:          log,
		Session:      scs.New(),
		LoginLimiter: limiter,
		Catalog:      catalog.NewRepo(),
		Settings:     settings.NewRepo(),
		Users:        users,
		Progress:     progress.NewRepo(),
	}))
	t.Cleanup(env.Server.Close)
	env.API = env.Server.URL + "/api"

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	env.Client().Jar = jar

	return env, nil
}

// Frontend is the client side stack of one signed in process.
type Frontend struct {
	Session  *session.Manager
	Catalog  *catalog.Store
	Settings *settings.Store
	Users    *user.Directory
	Tracker  *progress.Tracker
	BG       *background.Background
}

func (env *TestEnv) Frontend(t *testing.T) *Frontend {
	t.Helper()

	cl, err := client.New(env.Server.URL, 5*time.Second, env.Log)
	if err != nil {
		t.Fatal(err)
	}

	sm := session.NewManager(cl, env.Log)
	bg := background.New(env.Log)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		bg.Shutdown(ctx)
	})

	return &Frontend{
		Session:  sm,
		Catalog:  catalog.NewStore(cl, sm, env.Log),
		Settings: settings.NewStore(cl, sm, env.Log),
		Users:    user.NewDirectory(cl, sm, env.Log),
		Tracker:  progress.NewTracker(cl, bg, env.Log),
		BG:       bg,
	}
}

func (env *TestEnv) SignedIn(t *testing.T, email, pass string) *Frontend {
	t.Helper()

	f := env.Frontend(t)
	if _, err := f.Session.Login(context.Background(), email, pass); err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return f
}

func Login(server *httptest.Server, email, pass string) error {
	cred := session.Credentials{Email: email, Password: pass}
	w, err := Do(server, http.MethodPost, "/auth/login", cred)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		return fmt.Errorf("login %s: status code %s", email, w.Status)
	}
	return nil
}

func Logout(server *httptest.Server) error {
	w, err := Do(server, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout: status code %s", w.Status)
	}
	return nil
}

// Do sends a JSON request to path under /api with the server's client.
func Do(server *httptest.Server, method, path string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(raw)
	}

	r, err := http.NewRequest(method, server.URL+"/api"+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	return server.Client().Do(r)
}

func expectStatus(t *testing.T, server *httptest.Server, method, path string, body any, status int) {
	t.Helper()

	w, err := Do(server, method, path, body)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != status {
		raw, _ := io.ReadAll(w.Body)
		t.Fatalf("%s %s: expected status %d, got %s: %s", method, path, status, w.Status, raw)
	}
}
