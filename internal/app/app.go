// Package app wires configuration, storage and the HTTP layer into a server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"schoolplanner/internal/auth"
	"schoolplanner/internal/config"
	"schoolplanner/internal/database"
	"schoolplanner/internal/handler"
	"schoolplanner/internal/notify"
	"schoolplanner/internal/quiz"
	"schoolplanner/internal/repository"
	"schoolplanner/internal/seed"
	"schoolplanner/internal/session"
	"schoolplanner/internal/validation"
	"schoolplanner/internal/weather"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type App struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB
	server *http.Server
}

// New connects to the database, applies migrations when configured to and
// builds the router.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	log.Info("initializing application", "env", cfg.Env)

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(cfg.Database.DSN()); err != nil {
			database.Close(db)
			return nil, err
		}
	}

	router, err := NewHandler(cfg, log, db)
	if err != nil {
		database.Close(db)
		return nil, err
	}

	app := &App{
		config: cfg,
		logger: log,
		db:     db,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  seconds(cfg.Server.ReadTimeout),
			WriteTimeout: seconds(cfg.Server.WriteTimeout),
			IdleTimeout:  seconds(cfg.Server.IdleTimeout),
		},
	}

	log.Info("application initialized successfully")
	return app, nil
}

// NewHandler builds the full HTTP handler on top of an open database.
func NewHandler(cfg *config.Config, log *slog.Logger, db *sqlx.DB) (http.Handler, error) {
	validate := validation.New()
	users := repository.NewUserRepository(db)

	return handler.NewRouter(handler.Deps{
		Sessions: session.NewManager(cfg.Session),
		Auth:     auth.NewService(users, notify.New(cfg.Mail, log), validate, log),
		Lessons:  repository.NewLessonRepository(db),
		Tasks:    repository.NewTaskRepository(db),
		Results:  repository.NewResultRepository(db),
		Weather:  weather.NewClient(cfg.Weather, log),
		Quiz:     quiz.NewGenerator(),
		Validate: validate,
		Log:      log,
	})
}

// Run blocks until the server stops. A graceful Shutdown is not an error.
func (a *App) Run() error {
	a.logger.Info("server starting", "port", a.config.Server.Port)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving http")
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	err := a.server.Shutdown(ctx)
	database.Close(a.db)
	return err
}

func (a *App) ShutdownTimeout() time.Duration {
	if a.config.Server.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return seconds(a.config.Server.ShutdownTimeout)
}

// Migrate applies the schema without starting the server.
func Migrate(cfg *config.Config) error {
	return database.Migrate(cfg.Database.DSN())
}

// Seed applies the schema and loads the demo data.
func Seed(ctx context.Context, cfg *config.Config, log *slog.Logger) (seed.Summary, error) {
	if err := database.Migrate(cfg.Database.DSN()); err != nil {
		return seed.Summary{}, err
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return seed.Summary{}, err
	}
	defer database.Close(db)

	return seed.Seed(ctx, SeedStores(db), log)
}

func SeedStores(db *sqlx.DB) seed.Stores {
	return seed.Stores{
		Users:   repository.NewUserRepository(db),
		Lessons: repository.NewLessonRepository(db),
		Tasks:   repository.NewTaskRepository(db),
		Results: repository.NewResultRepository(db),
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
