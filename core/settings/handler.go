package settings

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/irsalhamdi/realty-training/api/web"
)

// Repo is the server side settings singleton.
type Repo struct {
	mu       sync.RWMutex
	settings Settings
}

func NewRepo() *Repo {
	s := Defaults()
	s.UpdatedAt = time.Now().UTC()
	return &Repo{settings: s}
}

func (r *Repo) Fetch(ctx context.Context) Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

func (r *Repo) Update(ctx context.Context, up SettingsUp) Settings {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = r.settings.Apply(up)
	r.settings.UpdatedAt = time.Now().UTC()
	return r.settings
}

// HandleShow is public: the login screen renders the branding.
func HandleShow(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, repo.Fetch(ctx), http.StatusOK)
	}
}

func HandleUpdate(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var up SettingsUp
		if err := web.DecodeValid(w, r, &up); err != nil {
			return err
		}

		return web.Respond(ctx, w, repo.Update(ctx, up), http.StatusOK)
	}
}
