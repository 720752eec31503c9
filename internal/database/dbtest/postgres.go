// Package dbtest starts a throwaway PostgreSQL container with the application
// schema applied, for repository tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"schoolplanner/internal/database"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DB        *sqlx.DB
	DSN       string
}

// SetupPostgres starts PostgreSQL and applies the migrations. The test is
// skipped in -short mode or when no container runtime is reachable.
//
// Usage:
//
//	func TestRepository(t *testing.T) {
//	    pg := dbtest.SetupPostgres(t)
//	    defer pg.Cleanup(t)
//
//	    t.Run("Create", func(t *testing.T) {
//	        dbtest.CleanupTables(t, pg.DB, "users")
//	        // ...
//	    })
//	}
func SetupPostgres(t *testing.T) *PostgresContainer {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(dsn), "failed to apply migrations")

	db, err := sqlx.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.PingContext(ctx))

	return &PostgresContainer{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}
}

func (pc *PostgresContainer) Cleanup(t *testing.T) {
	t.Helper()

	if pc.DB != nil {
		pc.DB.Close()
	}
	if pc.Container != nil {
		if err := pc.Container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
}

func CleanupTables(t *testing.T, db *sqlx.DB, tables ...string) {
	t.Helper()

	for _, table := range tables {
		_, err := db.Exec("TRUNCATE " + table + " RESTART IDENTITY CASCADE")
		require.NoError(t, err, "failed to truncate table: %s", table)
	}
}
