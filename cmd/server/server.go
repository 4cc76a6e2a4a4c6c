package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/realty-training/api"
	"github.com/irsalhamdi/realty-training/config"
	"github.com/irsalhamdi/realty-training/core/catalog"
	"github.com/irsalhamdi/realty-training/core/progress"
	"github.com/irsalhamdi/realty-training/core/settings"
	"github.com/irsalhamdi/realty-training/core/user"
	"github.com/irsalhamdi/realty-training/random"
	"github.com/irsalhamdi/realty-training/rate"
	"github.com/sirupsen/logrus"
)

const generatedPasswordLen = 16

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := Run(logger); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	var cfg config.Config
	help, err := conf.Parse("CATALOG", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", cfg.Log.Level, err)
	}
	logger.SetLevel(level)

	users := user.NewRepo()
	if err := bootstrapAdmin(users, cfg.Auth, logger); err != nil {
		return err
	}

	sessions := scs.New()
	sessions.Lifetime = cfg.Session.Lifetime
	sessions.Cookie.Secure = cfg.Session.SecureCookie
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	limiter := rate.NewLimiter(cfg.Auth.LoginBurst, cfg.Auth.LoginInterval, cfg.Auth.LoginExpiry)
	defer limiter.Close()

	lw := logger.Writer()
	defer lw.Close()

	srv := &http.Server{
		Addr: cfg.Web.Address,
		Handler: api.APIMux(api.APIConfig{
			CorsOrigin:   cfg.Cors.Origin,
			Log:          logger,
			Session:      sessions,
			LoginLimiter: limiter,
			Catalog:      catalog.NewRepo(),
			Settings:     settings.NewRepo(),
			Users:        users,
			Progress:     progress.NewRepo(),
		}),
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     log.New(lw, "", 0),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, srv, cfg.Web.ShutdownTimeout, logger)
}

// bootstrapAdmin makes sure the configured admin account exists. Without a
// configured password a random one is generated and logged once.
func bootstrapAdmin(users *user.Repo, cfg config.Auth, logger logrus.FieldLogger) error {
	pass := cfg.AdminPassword
	if pass == "" {
		var err error
		if pass, err = random.StringSecure(generatedPasswordLen); err != nil {
			return fmt.Errorf("generating admin password: %w", err)
		}
		logger.WithFields(logrus.Fields{
			"email":    cfg.AdminEmail,
			"password": pass,
		}).Warn("no admin password configured, generated one")
	}

	if _, err := users.Bootstrap(context.Background(), cfg.AdminName, cfg.AdminEmail, pass); err != nil {
		return fmt.Errorf("bootstrapping admin: %w", err)
	}
	return nil
}

// serve runs srv until it fails or ctx is cancelled, then drains open
// connections for at most timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger logrus.FieldLogger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("serving catalog api")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down")
		defer logger.Info("shutdown complete")

		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(sctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}
