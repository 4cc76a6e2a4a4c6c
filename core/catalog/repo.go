package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/irsalhamdi/realty-training/database"
	"github.com/irsalhamdi/realty-training/validate"
)

// ErrCategoryMissing is returned when a video points at a category that
// does not exist.
var ErrCategoryMissing = errors.New("category does not exist")

// Repo is the server side catalog. Videos are kept apart from their
// categories and nested only when listing, so a category edit never has to
// rewrite its videos.
type Repo struct {
	mu         sync.RWMutex
	categories []Category
	videos     []Video
	banner     *BannerVideo
}

func NewRepo() *Repo {
	return &Repo{}
}

// ListCategories returns every category with its videos. An empty catalog
// is reseeded with the default categories first.
func (r *Repo) ListCategories(ctx context.Context) []Category {
	r.mu.Lock()
	if len(r.categories) == 0 {
		now := time.Now().UTC()
		for _, c := range DefaultCategories() {
			c.Videos = nil
			c.CreatedAt = now
			r.categories = append(r.categories, c)
		}
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.categories))
	for i, c := range r.categories {
		c.Videos = []Video{}
		for _, v := range r.videos {
			if v.CategoryID == c.ID {
				c.Videos = append(c.Videos, v)
			}
		}
		out[i] = c
	}
	return out
}

func (r *Repo) CreateCategory(ctx context.Context, nc CategoryNew) Category {
	c := Category{
		ID:        validate.GenerateID(),
		Name:      nc.Name,
		Icon:      nc.Icon,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.categories = append(r.categories, c)
	r.mu.Unlock()

	c.Videos = []Video{}
	return c
}

func (r *Repo) UpdateCategory(ctx context.Context, id string, up CategoryUp) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.categoryIndex(id)
	if i < 0 {
		return Category{}, fmt.Errorf("category[%s]: %w", id, database.ErrDBNotFound)
	}

	c := &r.categories[i]
	if up.Name != nil {
		c.Name = *up.Name
	}
	if up.Icon != nil {
		c.Icon = *up.Icon
	}
	return *c, nil
}

// DeleteCategory removes the category and every video in it. It returns
// how many videos went with it.
func (r *Repo) DeleteCategory(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.categoryIndex(id)
	if i < 0 {
		return 0, fmt.Errorf("category[%s]: %w", id, database.ErrDBNotFound)
	}
	r.categories = append(r.categories[:i], r.categories[i+1:]...)

	kept := r.videos[:0]
	for _, v := range r.videos {
		if v.CategoryID != id {
			kept = append(kept, v)
		}
	}
	removed := len(r.videos) - len(kept)
	r.videos = kept

	return removed, nil
}

func (r *Repo) ListVideos(ctx context.Context) []Video {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Video{}, r.videos...)
}

func (r *Repo) FetchVideo(ctx context.Context, id string) (Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.videoIndex(id)
	if i < 0 {
		return Video{}, fmt.Errorf("video[%s]: %w", id, database.ErrDBNotFound)
	}
	return r.videos[i], nil
}

func (r *Repo) CreateVideo(ctx context.Context, nv VideoNew) (Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.categoryIndex(nv.CategoryID) < 0 {
		return Video{}, fmt.Errorf("category[%s]: %w", nv.CategoryID, ErrCategoryMissing)
	}

	v := Video{
		ID:          validate.GenerateID(),
		Title:       nv.Title,
		Description: nv.Description,
		Thumbnail:   nv.Thumbnail,
		Duration:    nv.Duration,
		YoutubeID:   nv.YoutubeID,
		Match:       nv.Match,
		Difficulty:  nv.Difficulty,
		Rating:      nv.Rating,
		Views:       nv.Views,
		ReleaseDate: nv.ReleaseDate,
		CategoryID:  nv.CategoryID,
		CreatedAt:   time.Now().UTC(),
	}
	if v.ReleaseDate.IsZero() {
		v.ReleaseDate = NewDate(v.CreatedAt)
	}

	r.videos = append(r.videos, v)
	return v, nil
}

func (r *Repo) UpdateVideo(ctx context.Context, id string, up VideoUp) (Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.videoIndex(id)
	if i < 0 {
		return Video{}, fmt.Errorf("video[%s]: %w", id, database.ErrDBNotFound)
	}
	if up.CategoryID != nil && r.categoryIndex(*up.CategoryID) < 0 {
		return Video{}, fmt.Errorf("category[%s]: %w", *up.CategoryID, ErrCategoryMissing)
	}

	v := &r.videos[i]
	setString(&v.Title, up.Title)
	setString(&v.Description, up.Description)
	setString(&v.Thumbnail, up.Thumbnail)
	setString(&v.Duration, up.Duration)
	setString(&v.YoutubeID, up.YoutubeID)
	setString(&v.Match, up.Match)
	setString(&v.CategoryID, up.CategoryID)
	if up.Difficulty != nil {
		v.Difficulty = *up.Difficulty
	}
	if up.Rating != nil {
		v.Rating = *up.Rating
	}
	if up.Views != nil {
		v.Views = *up.Views
	}
	if up.ReleaseDate != nil {
		v.ReleaseDate = *up.ReleaseDate
	}
	return *v, nil
}

func (r *Repo) DeleteVideo(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.videoIndex(id)
	if i < 0 {
		return fmt.Errorf("video[%s]: %w", id, database.ErrDBNotFound)
	}
	r.videos = append(r.videos[:i], r.videos[i+1:]...)
	return nil
}

// Banner returns the hero video, nil when the slot is empty.
func (r *Repo) Banner(ctx context.Context) *BannerVideo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.banner == nil {
		return nil
	}
	b := *r.banner
	return &b
}

// SetBanner replaces whatever occupies the hero slot.
func (r *Repo) SetBanner(ctx context.Context, nb BannerNew) BannerVideo {
	b := BannerVideo{
		ID:          validate.GenerateID(),
		Title:       nb.Title,
		Description: nb.Description,
		Thumbnail:   nb.Thumbnail,
		YoutubeID:   nb.YoutubeID,
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.banner = &b
	r.mu.Unlock()
	return b
}

func (r *Repo) ClearBanner(ctx context.Context) {
	r.mu.Lock()
	r.banner = nil
	r.mu.Unlock()
}

func (r *Repo) categoryIndex(id string) int {
	for i, c := range r.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repo) videoIndex(id string) int {
	for i, v := range r.videos {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
