package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/irsalhamdi/realty-training/client"
	"github.com/sirupsen/logrus"
)

// Gate authorizes store operations against the current session.
type Gate interface {
	RequireAuth() error
	RequireAdmin() error
}

// Store holds the categories and videos last loaded from the backend. Every
// successful write is followed by a full reload, so the local state never
// holds edits the backend has not confirmed. Concurrent writers are not
// coordinated: the last reload wins.
type Store struct {
	backend client.Backend
	gate    Gate
	log     logrus.FieldLogger

	mu         sync.RWMutex
	categories []Category
	banner     *BannerVideo
	loaded     bool
}

func NewStore(backend client.Backend, gate Gate, log logrus.FieldLogger) *Store {
	return &Store{
		backend: backend,
		gate:    gate,
		log:     log,
	}
}

// Load replaces the local catalog with the backend's. On failure the
// previous state is kept, or the default catalog if nothing was ever
// loaded, and the error is returned for the caller to report.
func (s *Store) Load(ctx context.Context) error {
	if err := s.gate.RequireAuth(); err != nil {
		return err
	}

	var cats []Category
	if err := s.backend.Get(ctx, "/categories", &cats); err != nil {
		s.Fallback()
		s.log.WithField("message", err).Warn("catalog load failed, keeping previous state")
		return fmt.Errorf("loading categories: %w", err)
	}

	var banner *BannerVideo
	if err := s.backend.Get(ctx, "/banner-video", &banner); err != nil {
		s.log.WithField("message", err).Warn("banner video load failed")
		s.mu.RLock()
		banner = s.banner
		s.mu.RUnlock()
	}

	for i := range cats {
		if cats[i].Videos == nil {
			cats[i].Videos = []Video{}
		}
	}

	s.mu.Lock()
	s.categories = cats
	s.banner = banner
	s.loaded = true
	s.mu.Unlock()

	s.log.WithField("categories", len(cats)).Debug("catalog loaded")
	return nil
}

// Fallback shows the default categories when no catalog was ever loaded,
// e.g. when the backend cannot be reached to sign in.
func (s *Store) Fallback() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.categories = DefaultCategories()
	}
}

// Teardown drops all local state, e.g. at logout.
func (s *Store) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = nil
	s.banner = nil
	s.loaded = false
}

// Categories returns a copy of the loaded catalog.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, len(s.categories))
	for i, c := range s.categories {
		c.Videos = append([]Video(nil), c.Videos...)
		out[i] = c
	}
	return out
}

// Videos runs the catalog query for the current session.
func (s *Store) Videos(f Filter) ([]Entry, error) {
	if err := s.gate.RequireAuth(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Query(s.categories, f), nil
}

// Video looks a video up by id across all categories.
func (s *Store) Video(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		for _, v := range c.Videos {
			if v.ID == id {
				e := Entry{Video: v, CategoryName: c.Name}
				e.CategoryID = c.ID
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Related returns up to n other videos of the same category.
func (s *Store) Related(id string, n int) []Entry {
	e, ok := s.Video(id)
	if !ok {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rel := make([]Entry, 0, n)
	for _, r := range Query(s.categories, Filter{CategoryID: e.CategoryID}) {
		if len(rel) == n {
			break
		}
		if r.ID != id {
			rel = append(rel, r)
		}
	}
	return rel
}

func (s *Store) Banner() (BannerVideo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.banner == nil {
		return BannerVideo{}, false
	}
	return *s.banner, true
}

func (s *Store) CreateVideo(ctx context.Context, form VideoForm) (Video, error) {
	if err := s.gate.RequireAdmin(); err != nil {
		return Video{}, err
	}

	nv, err := form.newVideo()
	if err != nil {
		return Video{}, err
	}

	var v Video
	err = s.write(ctx, "creating video", func() error {
		return s.backend.Post(ctx, "/videos", nv, &v)
	})
	return v, err
}

func (s *Store) UpdateVideo(ctx context.Context, id string, form VideoForm) error {
	if err := s.gate.RequireAdmin(); err != nil {
		return err
	}

	up, err := form.videoUp()
	if err != nil {
		return err
	}

	return s.write(ctx, fmt.Sprintf("updating video[%s]", id), func() error {
		return s.backend.Put(ctx, client.Path("videos", id), up, nil)
	})
}

// DeleteVideo removes a video. Asking the user for confirmation is the
// caller's job.
func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	if err := s.gate.RequireAdmin(); err != nil {
		return err
	}

	return s.write(ctx, fmt.Sprintf("deleting video[%s]", id), func() error {
		return s.backend.Delete(ctx, client.Path("videos", id), nil)
	})
}

func (s *Store) CreateCategory(ctx context.Context, form CategoryForm) (Category, error) {
	if err := s.gate.RequireAdmin(); err != nil {
		return Category{}, err
	}

	nc, err := form.newCategory()
	if err != nil {
		return Category{}, err
	}

	var c Category
	err = s.write(ctx, "creating category", func() error {
		return s.backend.Post(ctx, "/categories", nc, &c)
	})
	return c, err
}

func (s *Store) UpdateCategory(ctx context.Context, id string, form CategoryForm) error {
	if err := s.gate.RequireAdmin(); err != nil {
		return err
	}

	up, err := form.categoryUp()
	if err != nil {
		return err
	}

	return s.write(ctx, fmt.Sprintf("updating category[%s]", id), func() error {
		return s.backend.Put(ctx, client.Path("categories", id), up, nil)
	})
}

// DeleteCategory removes a category. The backend deletes its videos too;
// the resync picks that up.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.gate.RequireAdmin(); err != nil {
		return err
	}

	return s.write(ctx, fmt.Sprintf("deleting category[%s]", id), func() error {
		return s.backend.Delete(ctx, client.Path("categories", id), nil)
	})
}

func (s *Store) SetBanner(ctx context.Context, form BannerForm) error {
	if err := s.gate.RequireAdmin(); err != nil {
		return err
	}

	nb, err := form.newBanner()
	if err != nil {
		return err
	}

	return s.write(ctx, "setting banner video", func() error {
		return s.backend.Post(ctx, "/banner-video", nb, nil)
	})
}

func (s *Store) ClearBanner(ctx context.Context) error {
	if err := s.gate.RequireAdmin(); err != nil {
		return err
	}

	return s.write(ctx, "clearing banner video", func() error {
		return s.backend.Delete(ctx, "/banner-video", nil)
	})
}

// write runs one backend mutation and resyncs. A rejected write leaves the
// local state untouched.
func (s *Store) write(ctx context.Context, op string, fn func() error) error {
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.Load(ctx); err != nil {
		return fmt.Errorf("%s: written but resync failed: %w", op, err)
	}
	return nil
}
