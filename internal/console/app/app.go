package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/realmadmin/internal/console/i18n"
	"github.com/aussiebroadwan/realmadmin/internal/console/session"
	"github.com/aussiebroadwan/realmadmin/internal/console/web"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

var ErrMissingCredentials = errors.New("CONSOLE_CLIENT_ID and CONSOLE_CLIENT_SECRET are required")

// Application is the web console with its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	sdk      *adminsdk.SDKClient
	session  *adminsdk.Session
	sessions *session.Store
	bundle   *i18n.Bundle

	handler *web.Handler
	server  *http.Server
}

// New authenticates against the admin API and prepares the HTTP server.
func New(cfg Config) (*Application, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "console",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		sdk: adminsdk.NewSDKClient(cfg.AdminURL),
	}

	if err := app.authenticate(); err != nil {
		return nil, err
	}

	var err error
	if app.bundle, err = i18n.NewBundle(); err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	if app.sessions, err = session.NewStore(cfg.SessionTTL); err != nil {
		return nil, err
	}

	if err := app.initHTTP(); err != nil {
		return nil, err
	}
	return app, nil
}

// authenticate obtains the console's admin API session, retrying while the
// admin API is starting.
func (app *Application) authenticate() error {
	scopes := []string{adminsdk.ScopeRolesRead, adminsdk.ScopeRolesWrite}
	attempts := max(app.cfg.StartupRetries, 1)

	var err error
	for i := range attempts {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		app.session, err = app.sdk.AuthenticateWithClientCredentials(ctx, app.cfg.ClientID, app.cfg.ClientSecret, scopes)
		cancel()
		if err == nil {
			app.logger.Info("authenticated against admin api", "admin_url", app.cfg.AdminURL, "client_id", app.cfg.ClientID)
			return nil
		}

		var apiErr *adminsdk.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusTooManyRequests {
			break
		}
		if i < attempts-1 {
			backoff := time.Duration(i+1) * time.Second
			app.logger.Warn("admin api not reachable, retrying", "error", err, "backoff", backoff)
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("failed to authenticate against admin api: %w", err)
}

func (app *Application) initHTTP() error {
	handler, err := web.NewHandler(
		app.session.Roles(app.cfg.Realm),
		app.sessions,
		app.bundle,
		web.Options{
			Realm:        app.cfg.Realm,
			BasePath:     app.cfg.BasePath,
			PageSize:     app.cfg.PageSize,
			DefaultLang:  app.cfg.Lang,
			SecureCookie: app.cfg.SecureCookie,
			BuildVersion: BuildVersion,
		},
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize console: %w", err)
	}
	app.handler = handler

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("console starting", "port", app.cfg.Port, "realm", app.cfg.Realm, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		return app.server.Close()
	}

	app.logger.Info("console stopped")
	return nil
}

// Handler exposes the console handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.handler
}
