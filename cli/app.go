// Package cli is the terminal front end of the training catalog: browsing,
// playback progress, the admin panel and local preferences.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/irsalhamdi/realty-training/background"
	"github.com/irsalhamdi/realty-training/client"
	"github.com/irsalhamdi/realty-training/core/catalog"
	"github.com/irsalhamdi/realty-training/core/progress"
	"github.com/irsalhamdi/realty-training/core/session"
	"github.com/irsalhamdi/realty-training/core/settings"
	"github.com/irsalhamdi/realty-training/core/user"
	"github.com/irsalhamdi/realty-training/prefs"
	"github.com/sirupsen/logrus"
)

const (
	defaultAPI   = "http://localhost:3001"
	drainTimeout = 10 * time.Second
)

// App holds the flags of one invocation and the client components built
// from them.
type App struct {
	Log *logrus.Logger

	API       string
	Email     string
	Password  string
	PrefsPath string
	Timeout   time.Duration
	Verbose   bool

	Prefs    prefs.Prefs
	Session  *session.Manager
	Catalog  *catalog.Store
	Settings *settings.Store
	Users    *user.Directory
	Tracker  *progress.Tracker

	bg *background.Background
}

func NewApp(log *logrus.Logger) *App {
	return &App{Log: log}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// setup fills unset flags from the prefs file and builds the components.
// Nothing here touches the network.
func (a *App) setup() error {
	if a.Verbose {
		a.Log.SetLevel(logrus.DebugLevel)
	}

	if a.PrefsPath == "" {
		path, err := prefs.DefaultPath()
		if err != nil {
			return err
		}
		a.PrefsPath = path
	}

	p, err := prefs.Load(a.PrefsPath)
	if err != nil {
		a.Log.WithField("message", err).Warn("ignoring unreadable prefs file")
	}
	a.Prefs = p

	if a.API == "" {
		a.API = p.API
	}
	if a.API == "" {
		a.API = defaultAPI
	}
	if a.Email == "" {
		a.Email = p.Email
	}
	if a.Password == "" {
		a.Password = os.Getenv("CATALOG_PASSWORD")
	}

	cl, err := client.New(a.API, a.Timeout, a.Log)
	if err != nil {
		return err
	}

	a.bg = background.New(a.Log)
	a.Session = session.NewManager(cl, a.Log)
	a.Catalog = catalog.NewStore(cl, a.Session, a.Log)
	a.Settings = settings.NewStore(cl, a.Session, a.Log)
	a.Users = user.NewDirectory(cl, a.Session, a.Log)
	a.Tracker = progress.NewTracker(cl, a.bg, a.Log)
	return nil
}

// login signs in with the configured credentials unless already signed in.
func (a *App) login(ctx context.Context) (session.Session, error) {
	if s := a.Session.Current(); s.Authenticated {
		return s, nil
	}
	if a.Email == "" || a.Password == "" {
		return session.Session{}, apperr.Validation("--email and --password (or CATALOG_EMAIL and CATALOG_PASSWORD) are required")
	}
	return a.Session.Login(ctx, a.Email, a.Password)
}

// loadCatalog signs in and fetches the catalog.
func (a *App) loadCatalog(ctx context.Context) error {
	if _, err := a.login(ctx); err != nil {
		return err
	}
	return a.Catalog.Load(ctx)
}

// Close waits for pending progress writes and signs out.
func (a *App) Close() {
	if a.bg == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := a.bg.Shutdown(ctx); err != nil {
		a.Log.WithField("message", err).Warn("pending progress writes were dropped")
	}
	a.Session.Logout(ctx)
	a.Catalog.Teardown()
}
