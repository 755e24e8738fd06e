package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/studiumhq/studium-api/internal/config"
	"github.com/studiumhq/studium-api/internal/domain/planner"
	"github.com/studiumhq/studium-api/internal/platform/postgres"
	"github.com/studiumhq/studium-api/internal/service/auth"
	"github.com/studiumhq/studium-api/internal/service/scheduler"
	"github.com/studiumhq/studium-api/internal/service/suggestion"
	"github.com/studiumhq/studium-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore      store.UserStore
	subjectStore   store.SubjectStore
	contentStore   store.ContentStore
	reviewStore    store.ReviewStore
	settingsStore  store.SettingsStore
	exceptionStore store.ExceptionStore
	retentionStore store.RetentionStore

	// Services
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	schedulerService  scheduler.Service
	suggestionService suggestion.Service
}

// newApplication wires all dependencies from the established core ones.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewUserStore(db, cfg.Auth.BcryptCost, log)
	app.subjectStore = postgres.NewSubjectStore(db, log)
	app.contentStore = postgres.NewContentStore(db, log)
	app.reviewStore = postgres.NewReviewStore(db, log)
	app.settingsStore = postgres.NewSettingsStore(db, log)
	app.exceptionStore = postgres.NewExceptionStore(db, log)
	app.retentionStore = postgres.NewRetentionStore(db, log)

	params := planner.NewDefaultParams()
	params.HorizonDays = cfg.Planner.HorizonDays

	app.schedulerService = scheduler.NewService(
		db,
		app.contentStore,
		app.reviewStore,
		app.settingsStore,
		app.exceptionStore,
		app.retentionStore,
		params,
		log,
	)

	app.suggestionService = suggestion.NewService(
		app.subjectStore,
		app.contentStore,
		app.reviewStore,
		app.settingsStore,
		app.exceptionStore,
		params,
		log,
	)

	log.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources on shutdown.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
	app.logger.Info("application shutdown completed")
}
