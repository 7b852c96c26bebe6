package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/FaranAlam/faran-portfolio/internal/db"
)

// TestDB holds the store under test and its container.
type TestDB struct {
	Store     *db.Store
	Container testcontainers.Container
	ConnStr   string
}

// SetupTestDB starts PostgreSQL in a container and applies the embedded
// migrations. Skipped in -short mode.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("portfolio_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to get connection string: %v", err)
	}

	if err := db.Migrate(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}
	// A second run must be a no-op.
	if err := db.Migrate(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Migrations are not idempotent: %v", err)
	}

	store, err := db.NewStore(ctx, connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to connect: %v", err)
	}

	return &TestDB{Store: store, Container: pgContainer, ConnStr: connStr}
}

// Cleanup closes the pool and terminates the container.
func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	if tdb.Store != nil {
		tdb.Store.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}

// TruncateTables clears tables between subtests.
func (tdb *TestDB) TruncateTables(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := tdb.Store.Pool().Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}
