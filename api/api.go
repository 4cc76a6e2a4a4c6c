// Package api wires the REST surface of the training catalog under /api.
package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/realty-training/api/middleware"
	"github.com/irsalhamdi/realty-training/api/web"
	"github.com/irsalhamdi/realty-training/core/auth"
	"github.com/irsalhamdi/realty-training/core/catalog"
	"github.com/irsalhamdi/realty-training/core/progress"
	"github.com/irsalhamdi/realty-training/core/settings"
	"github.com/irsalhamdi/realty-training/core/user"
	"github.com/irsalhamdi/realty-training/rate"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin   string
	Log          logrus.FieldLogger
	Session      *scs.SessionManager
	LoginLimiter *rate.Limiter
	Catalog      *catalog.Repo
	Settings     *settings.Repo
	Users        *user.Repo
	Progress     *progress.Repo
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	root := mux.NewRouter()
	a := &api{
		Router: root.PathPrefix("/api").Subrouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session, cfg.Users)
	admin := auth.Admin(cfg.Session, cfg.Users)

	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.Users, cfg.Session, cfg.LoginLimiter))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))

	a.Handle(http.MethodGet, "/settings", settings.HandleShow(cfg.Settings))
	a.Handle(http.MethodPut, "/settings", settings.HandleUpdate(cfg.Settings), admin)

	a.Handle(http.MethodGet, "/categories", catalog.HandleListCategories(cfg.Catalog), authen)
	a.Handle(http.MethodPost, "/categories", catalog.HandleCreateCategory(cfg.Catalog), admin)
	a.Handle(http.MethodPut, "/categories/{id}", catalog.HandleUpdateCategory(cfg.Catalog), admin)
	a.Handle(http.MethodDelete, "/categories/{id}", catalog.HandleDeleteCategory(cfg.Catalog), admin)

	a.Handle(http.MethodGet, "/videos/{id}", catalog.HandleShowVideo(cfg.Catalog), authen)
	a.Handle(http.MethodGet, "/videos", catalog.HandleListVideos(cfg.Catalog), authen)
	a.Handle(http.MethodPost, "/videos", catalog.HandleCreateVideo(cfg.Catalog), admin)
	a.Handle(http.MethodPut, "/videos/{id}", catalog.HandleUpdateVideo(cfg.Catalog), admin)
	a.Handle(http.MethodDelete, "/videos/{id}", catalog.HandleDeleteVideo(cfg.Catalog), admin)

	a.Handle(http.MethodGet, "/banner-video", catalog.HandleShowBanner(cfg.Catalog), authen)
	a.Handle(http.MethodPost, "/banner-video", catalog.HandleSetBanner(cfg.Catalog), admin)
	a.Handle(http.MethodDelete, "/banner-video", catalog.HandleClearBanner(cfg.Catalog), admin)

	a.Handle(http.MethodGet, "/users", user.HandleList(cfg.Users), admin)
	a.Handle(http.MethodPost, "/users", user.HandleCreate(cfg.Users), admin)
	a.Handle(http.MethodDelete, "/users/{id}", user.HandleDelete(cfg.Users), admin)

	a.Handle(http.MethodGet, "/dashboard/{email}", progress.HandleDashboard(cfg.Progress, cfg.Catalog), authen)
	a.Handle(http.MethodGet, "/video-progress/{email}/{video_id}", progress.HandleShow(cfg.Progress), authen)
	a.Handle(http.MethodPost, "/video-progress", progress.HandleSave(cfg.Progress), authen)

	return root
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
