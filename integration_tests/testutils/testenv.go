package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	wordlequeue "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/queue"
	"github.com/Black-And-White-Club/wordle-bot/integration_tests/containers"
	"github.com/Black-And-White-Club/wordle-bot/internal/db/bundb"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
)

// TestEnvironment is one migrated Postgres container shared by every test
// in a package.
type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	DB          *bun.DB
	DSN         string
}

var (
	sharedEnv *TestEnvironment
	envErr    error
	envOnce   sync.Once
)

// GetTestEnv returns the package's shared environment, starting it on first
// use. Tests are skipped when Docker is unavailable or -short is set.
func GetTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	envOnce.Do(func() {
		sharedEnv, envErr = newTestEnvironment(context.Background())
	})
	if envErr != nil {
		t.Fatalf("failed to set up test environment: %v", envErr)
	}

	if err := sharedEnv.Reset(sharedEnv.Ctx); err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
	return sharedEnv
}

func newTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	db := bundb.NewDB(sqlDB)

	if err := runMigrations(ctx, db, dsn); err != nil {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	return &TestEnvironment{
		Ctx:         ctx,
		PgContainer: pgContainer,
		DB:          db,
		DSN:         dsn,
	}, nil
}

func runMigrations(ctx context.Context, db *bun.DB, dsn string) error {
	logger := observability.NoOpLogger
	if err := bundb.MigrateAll(ctx, db, logger); err != nil {
		return fmt.Errorf("failed to run module migrations: %w", err)
	}
	if _, err := wordlequeue.MigrateRiver(ctx, dsn, wordlequeue.Up, 0, logger); err != nil {
		return err
	}
	return nil
}

// Reset empties every application table.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	return CleanupDatabase(ctx, env.DB)
}

// Shutdown closes the shared environment, if one was started.
func Shutdown() {
	if sharedEnv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = sharedEnv.DB.Close()
	_ = sharedEnv.PgContainer.Terminate(ctx)
}
