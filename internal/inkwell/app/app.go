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

	httpapi "github.com/aussiebroadwan/inkwell/internal/inkwell/http"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/store"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/store/drivers/sqlite"
	"github.com/aussiebroadwan/inkwell/pkg/cryptox"
	"github.com/aussiebroadwan/inkwell/pkg/jwtx"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
	"github.com/aussiebroadwan/inkwell/pkg/totpx"
	"golang.org/x/sync/errgroup"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the inkwell service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	vault  *cryptox.Vault
	signer jwtx.Signer
	verify jwtx.Verifier
	pepper string

	// Services
	accountService    *service.AccountService
	enrollmentService *service.EnrollmentService
	guardService      *service.GuardService
	bootstrapService  *service.BootstrapService
	tokenService      *service.TokenService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "inkwell",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.pepper = pepper

	if app.vault, err = InitVault(cfg, app.logger); err != nil {
		return nil, err
	}

	signer, verifier, err := InitSigner(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.signer, app.verify = signer, verifier

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run serves HTTP until the server fails or a shutdown signal arrives.
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info("inkwell starting", "port", app.cfg.Port, "version", BuildVersion)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested", "cause", context.Cause(gctx))
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down inkwell...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("inkwell stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	clock := service.Clock(time.Now)

	app.accountService = &service.AccountService{
		Store:     app.db,
		Passwords: cryptox.PasswordHasher{Pepper: app.pepper},
		Clock:     clock,
	}
	app.enrollmentService = &service.EnrollmentService{
		Store:         app.db,
		Vault:         app.vault,
		TOTP:          totpx.NewEngine(),
		Issuer:        app.cfg.Issuer,
		RecoveryCodes: totpx.GenerateRecoveryCodes,
		Clock:         clock,
	}
	app.guardService = &service.GuardService{Store: app.db, Clock: clock}
	app.bootstrapService = &service.BootstrapService{
		Store:    app.db,
		Accounts: app.accountService,
		Token:    app.cfg.BootstrapToken,
	}
	app.tokenService = &service.TokenService{
		Signer:    app.signer,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.AccessTokenTTL,
		Clock:     clock,
	}

	if app.bootstrapService.Enabled() {
		app.logger.Info("bootstrap endpoint enabled")
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verify,
		app.cfg.RateLimits,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AccountService = app.accountService
	router.EnrollmentService = app.enrollmentService
	router.GuardService = app.guardService
	router.BootstrapService = app.bootstrapService
	router.TokenService = app.tokenService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
