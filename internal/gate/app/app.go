package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/harborchat/gatehouse/internal/gate/http"
	"github.com/harborchat/gatehouse/internal/gate/service"
	"github.com/harborchat/gatehouse/internal/gate/store"
	"github.com/harborchat/gatehouse/internal/gate/store/drivers/sqlite"
	"github.com/harborchat/gatehouse/pkg/cryptox"
	"github.com/harborchat/gatehouse/pkg/jwtx"
	"github.com/harborchat/gatehouse/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Options carries the extension points plain configuration cannot express.
// The zero value keeps every default.
type Options struct {
	// CanCreateInvite, when set, fully replaces the default eligibility rule
	// (any role past the signup default may mint invites).
	CanCreateInvite service.EligibilityFunc
}

// Application encapsulates the gatehouse service with all its dependencies.
type Application struct {
	cfg    Config
	opts   Options
	logger *slog.Logger

	db   store.Store
	keys *jwtx.KeyPair

	inviteService    *service.InviteService
	lifecycleService *service.LifecycleService
	signupService    *service.SignupService
	otpService       *service.OTPService
	bootstrapService *service.BootstrapService
	housekeeper      *service.Housekeeper

	server *http.Server
	router *httpapi.Router

	hkCancel context.CancelFunc
}

// New creates an Application with all dependencies initialized.
func New(cfg Config, opts Options) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		opts:   opts,
		logger: slogx.New(slogx.Config{
			Service: "gatehouse",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Sessions are signed with an ephemeral key; they do not survive a
	// restart, which is fine for this service's boundary-stub sessions.
	keys, err := jwtx.NewEphemeralKeyPair()
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keys = keys

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	var hkCtx context.Context
	hkCtx, app.hkCancel = context.WithCancel(
		slogx.WithContext(context.Background(), app.logger),
	)
	go app.housekeeper.Run(hkCtx)

	app.logger.Info("gatehouse starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"mode", app.cfg.ConsumptionMode,
	)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gatehouse...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.hkCancel != nil {
		app.hkCancel()
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("gatehouse stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.inviteService = &service.InviteService{
		Store:             app.db,
		Mode:              app.cfg.ConsumptionMode,
		Duration:          app.cfg.InviteDuration,
		MaxUses:           app.cfg.InviteMaxUses,
		RoleWithoutInvite: app.cfg.RoleWithoutInvite,
		Eligibility:       app.opts.CanCreateInvite,
	}

	app.lifecycleService = &service.LifecycleService{
		Store:                app.db,
		Invites:              app.inviteService,
		Mode:                 app.cfg.ConsumptionMode,
		RoleWithInvite:       app.cfg.RoleWithInvite,
		SignupRequiresInvite: app.cfg.SignupRequiresInvite,
	}

	app.signupService = &service.SignupService{
		Store:             app.db,
		Signer:            app.keys,
		Issuer:            app.cfg.Issuer,
		SessionTTL:        app.cfg.SessionTTL,
		RoleWithoutInvite: app.cfg.RoleWithoutInvite,
	}

	app.otpService = &service.OTPService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}

	app.bootstrapService = &service.BootstrapService{
		Store:          app.db,
		Token:          app.cfg.BootstrapToken,
		RoleWithInvite: app.cfg.RoleWithInvite,
	}

	app.housekeeper = &service.Housekeeper{
		Store:     app.db,
		Interval:  app.cfg.HousekeepingInterval,
		Retention: app.cfg.HousekeepingRetention,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.CookieName = app.cfg.Namespace + ".invite-code"
	router.CookieKey = cryptox.CookieKey()
	router.SigninURL = app.cfg.SigninURL
	router.InviteService = app.inviteService
	router.LifecycleService = app.lifecycleService
	router.SignupService = app.signupService
	router.OTPService = app.otpService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
