package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/realty-training/api/web"
	"github.com/irsalhamdi/realty-training/api/weberr"
	"github.com/irsalhamdi/realty-training/database"
)

// repoError maps repository failures onto responses.
func repoError(err error) error {
	switch {
	case errors.Is(err, database.ErrDBNotFound):
		return weberr.NotFound(err)
	case errors.Is(err, ErrCategoryMissing):
		return weberr.Unprocessable(ErrCategoryMissing, weberr.WithFields(map[string]interface{}{"cause": err.Error()}))
	}
	return err
}

func HandleListCategories(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, repo.ListCategories(ctx), http.StatusOK)
	}
}

func HandleCreateCategory(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nc CategoryNew
		if err := web.DecodeValid(w, r, &nc); err != nil {
			return err
		}

		return web.Respond(ctx, w, repo.CreateCategory(ctx, nc), http.StatusCreated)
	}
}

func HandleUpdateCategory(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		var up CategoryUp
		if err := web.DecodeValid(w, r, &up); err != nil {
			return err
		}

		c, err := repo.UpdateCategory(ctx, id, up)
		if err != nil {
			return repoError(fmt.Errorf("updating category: %w", err))
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleDeleteCategory(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		if _, err := repo.DeleteCategory(ctx, id); err != nil {
			return repoError(fmt.Errorf("deleting category: %w", err))
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleListVideos(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, repo.ListVideos(ctx), http.StatusOK)
	}
}

func HandleShowVideo(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		v, err := repo.FetchVideo(ctx, web.Param(r, "id"))
		if err != nil {
			return repoError(fmt.Errorf("fetching video: %w", err))
		}

		return web.Respond(ctx, w, v, http.StatusOK)
	}
}

func HandleCreateVideo(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nv VideoNew
		if err := web.DecodeValid(w, r, &nv); err != nil {
			return err
		}

		v, err := repo.CreateVideo(ctx, nv)
		if err != nil {
			return repoError(fmt.Errorf("creating video: %w", err))
		}

		return web.Respond(ctx, w, v, http.StatusCreated)
	}
}

func HandleUpdateVideo(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		var up VideoUp
		if err := web.DecodeValid(w, r, &up); err != nil {
			return err
		}

		v, err := repo.UpdateVideo(ctx, id, up)
		if err != nil {
			return repoError(fmt.Errorf("updating video: %w", err))
		}

		return web.Respond(ctx, w, v, http.StatusOK)
	}
}

func HandleDeleteVideo(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := repo.DeleteVideo(ctx, web.Param(r, "id")); err != nil {
			return repoError(fmt.Errorf("deleting video: %w", err))
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleShowBanner answers null when no banner video is set.
func HandleShowBanner(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, repo.Banner(ctx), http.StatusOK)
	}
}

func HandleSetBanner(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nb BannerNew
		if err := web.DecodeValid(w, r, &nb); err != nil {
			return err
		}

		return web.Respond(ctx, w, repo.SetBanner(ctx, nb), http.StatusCreated)
	}
}

func HandleClearBanner(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		repo.ClearBanner(ctx)
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
