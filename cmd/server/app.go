package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/worthtrust/market-api/internal/config"
	"github.com/worthtrust/market-api/internal/email"
	"github.com/worthtrust/market-api/internal/events"
	"github.com/worthtrust/market-api/internal/platform/postgres"
	"github.com/worthtrust/market-api/internal/service"
	"github.com/worthtrust/market-api/internal/service/auth"
	"github.com/worthtrust/market-api/internal/store"
	"github.com/worthtrust/market-api/internal/task"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore    store.UserStore
	adStore      store.AdStore
	requestStore store.RequestStore

	// Auth
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier

	// Services
	userService    service.UserService
	adService      service.AdService
	requestService service.RequestService

	// Mail pipeline
	eventEmitter events.EventEmitter
	notifier     email.Notifier
	taskRunner   *task.Runner
}

// newApplication creates an application instance with all dependencies
// initialized. Core dependencies (config, logger, database) must already
// be established.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher()
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.adStore = postgres.NewPostgresAdStore(db, logger)
	app.requestStore = postgres.NewPostgresRequestStore(db, logger)

	// Mail pipeline: service emits an event after commit, the handler
	// turns it into a task, the runner sends via SMTP in the background.
	app.notifier = email.NewSMTPNotifier(cfg.SMTP, logger)

	app.taskRunner = task.NewRunner(task.RunnerConfig{
		QueueSize:   cfg.Task.QueueSize,
		WorkerCount: cfg.Task.WorkerCount,
	}, logger)
	app.taskRunner.Start()

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	mailHandler := task.NewMailEventHandler(app.notifier, app.taskRunner, logger)
	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(mailHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register mail handler")
	}

	app.userService = service.NewUserService(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.eventEmitter,
		db,
		cfg.SMTP.VerifyBaseURL,
		logger,
	)
	app.adService = service.NewAdService(app.adStore, db, logger)
	app.requestService = service.NewRequestService(
		app.requestStore,
		app.adStore,
		app.userStore,
		db,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources. The task
// runner drains first so queued verification mails still go out.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
