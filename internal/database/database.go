package database

import (
	"context"
	"log/slog"
	"time"

	"schoolplanner/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// Open connects to PostgreSQL through lib/pq and configures the pool.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}

	configurePool(db, cfg)

	slog.Info("database connected", "host", cfg.Host, "name", cfg.DBName)
	return db, nil
}

func configurePool(db *sqlx.DB, cfg config.DatabaseConfig) {
	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	db.SetMaxOpenConns(maxOpen)

	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 25
	}
	db.SetMaxIdleConns(maxIdle)

	lifetime := cfg.ConnMaxLifetime
	if lifetime == 0 {
		lifetime = 300
	}
	db.SetConnMaxLifetime(time.Duration(lifetime) * time.Second)
}

func Close(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		slog.Error("closing database", "error", err)
		return
	}
	slog.Info("database connection closed")
}
