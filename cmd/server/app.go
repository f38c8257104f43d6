package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/config"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain/srs"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/events"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/generation"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/gemini"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/postgres"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/auth"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/deck"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/review"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/task"
)

// application holds the shared application dependencies so startup wiring
// and shutdown cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	cardStore  store.CardStore
	taskStore  task.TaskStore
	deckStore  store.DeckStore
	statsStore store.UserCardStatsStore
	logStore   store.ReviewLogStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	srsService       srs.Service
	deckService      deck.DeckService
	reviewService    review.ReviewService
	generator        generation.Generator

	eventEmitter events.EventEmitter
	taskRegistry *task.Registry
	taskRunner   *task.TaskRunner
}

// generationEnabled reports whether LLM card generation is available.
func (app *application) generationEnabled() bool {
	return app.generator != nil
}

// newApplication creates an application instance with all dependencies
// initialized. The task runner is started before returning, so persisted
// tasks from a previous run begin recovering immediately.
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

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost)
	app.deckStore = postgres.NewPostgresDeckStore(db)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.statsStore = postgres.NewPostgresUserCardStatsStore(db)
	app.logStore = postgres.NewPostgresReviewLogStore(db)
	app.taskStore = postgres.NewPostgresTaskStore(db)

	app.srsService = srs.NewDefaultService()

	app.deckService = deck.NewDeckService(db, app.deckStore, app.cardStore, app.statsStore, logger)
	app.reviewService = review.NewReviewService(
		db,
		app.cardStore,
		app.statsStore,
		app.logStore,
		app.deckStore,
		app.srsService,
		logger,
	)

	// The generator is optional: without an API key the generate endpoint
	// reports 503 and no card_generation factory is registered.
	if cfg.LLM.GeminiAPIKey != "" {
		app.generator, err = gemini.NewGeminiGenerator(
			ctx,
			logger.With("component", "llm_generator"),
			cfg.LLM,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
		}
		logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)
	} else {
		logger.Info("LLM generator not configured, card generation disabled")
	}

	app.taskRegistry = task.NewRegistry()
	app.taskRegistry.Register(task.TaskTypeDeckImport, task.NewDeckImportFactory(app.deckService, logger))
	if app.generationEnabled() {
		app.taskRegistry.Register(
			task.TaskTypeCardGeneration,
			task.NewCardGenerationFactory(app.generator, app.deckService, logger),
		)
	}

	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(task.NewTaskRequestHandler(app.taskRunner, app.taskRegistry, logger))
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupTaskRunner creates and starts the background task processor.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	taskRunner := task.NewTaskRunner(app.taskStore, app.taskRegistry, task.TaskRunnerConfig{
		QueueSize:    app.config.Task.QueueSize,
		WorkerCount:  app.config.Task.WorkerCount,
		StuckTaskAge: app.config.Task.StuckTaskAge(),
	}, app.logger)

	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	return taskRunner, nil
}

// cleanup releases application resources during shutdown.
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
