package progress

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/irsalhamdi/realty-training/api/web"
	"github.com/irsalhamdi/realty-training/api/weberr"
	"github.com/irsalhamdi/realty-training/core/catalog"
	"github.com/irsalhamdi/realty-training/core/claims"
	"github.com/irsalhamdi/realty-training/database"
)

type recordKey struct {
	email   string
	videoID string
}

// Repo stores the last reported progress per user and video.
type Repo struct {
	mu      sync.RWMutex
	records map[recordKey]Progress
}

func NewRepo() *Repo {
	return &Repo{records: make(map[recordKey]Progress)}
}

func (r *Repo) Fetch(ctx context.Context, email, videoID string) (Progress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[recordKey{email, videoID}]
	if !ok {
		return Progress{}, fmt.Errorf("progress of user[%s] on video[%s]: %w", email, videoID, database.ErrDBNotFound)
	}
	return p, nil
}

// Upsert replaces the record of (p.UserEmail, p.VideoID).
func (r *Repo) Upsert(ctx context.Context, p Progress) Progress {
	p.UpdatedAt = time.Now().UTC()

	r.mu.Lock()
	r.records[recordKey{p.UserEmail, p.VideoID}] = p
	r.mu.Unlock()
	return p
}

func (r *Repo) ListByUser(ctx context.Context, email string) []Progress {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Progress
	for k, p := range r.records {
		if k.email == email {
			out = append(out, p)
		}
	}
	return out
}

// Catalog is the part of the catalog repository the dashboard reads.
type Catalog interface {
	ListCategories(ctx context.Context) []catalog.Category
}

var errOtherUser = errors.New("cannot access the progress of another user")

// allowed lets users see their own progress and admins everyone's.
func allowed(ctx context.Context, email string) error {
	if claims.IsUser(ctx, email) || claims.IsAdmin(ctx) {
		return nil
	}
	return weberr.NewError(errOtherUser, errOtherUser.Error(), http.StatusForbidden,
		weberr.WithFields(map[string]interface{}{"email": email}))
}

func HandleShow(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")
		if err := allowed(ctx, email); err != nil {
			return err
		}

		p, err := repo.Fetch(ctx, email, web.Param(r, "video_id"))
		if err != nil {
			if errors.Is(err, database.ErrDBNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching progress: %w", err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleSave(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var p Progress
		if err := web.DecodeValid(w, r, &p); err != nil {
			return err
		}
		if err := allowed(ctx, p.UserEmail); err != nil {
			return err
		}

		return web.Respond(ctx, w, repo.Upsert(ctx, p), http.StatusOK)
	}
}

func HandleDashboard(repo *Repo, cat Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")
		if err := allowed(ctx, email); err != nil {
			return err
		}

		d := Summarize(email, cat.ListCategories(ctx), repo.ListByUser(ctx, email))
		return web.Respond(ctx, w, d, http.StatusOK)
	}
}
