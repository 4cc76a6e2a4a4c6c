package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/realty-training/api/web"
	"github.com/irsalhamdi/realty-training/api/weberr"
	"github.com/irsalhamdi/realty-training/database"
)

func HandleList(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, repo.List(ctx), http.StatusOK)
	}
}

func HandleCreate(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nu UserNew
		if err := web.DecodeValid(w, r, &nu); err != nil {
			return err
		}

		u, err := repo.Create(ctx, nu)
		if err != nil {
			if errors.Is(err, database.ErrDBDuplicatedEntry) {
				return weberr.Conflict(errors.New("email already registered"),
					weberr.WithFields(map[string]interface{}{"email": nu.Email}))
			}
			return fmt.Errorf("creating user: %w", err)
		}

		return web.Respond(ctx, w, u, http.StatusCreated)
	}
}

func HandleDelete(repo *Repo) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		if err := repo.Delete(ctx, id); err != nil {
			switch {
			case errors.Is(err, ErrProtected):
				return weberr.Unprocessable(err)
			case errors.Is(err, database.ErrDBNotFound):
				return weberr.NotFound(err)
			}
			return fmt.Errorf("deleting user: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
