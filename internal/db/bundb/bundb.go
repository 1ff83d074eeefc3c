// Package bundb opens the Postgres connection shared by every module and
// owns the per-module migrators.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	usermigrations "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories/migrations"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	wordlemigrations "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
)

// moduleOrder is the order migrations run in; outcomes reference users.
var moduleOrder = []string{"user", "wordle"}

// Open connects to Postgres through pgdriver and verifies the connection.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewDB(sqldb), nil
}

// NewDB wraps an open connection for bun and registers the models.
func NewDB(sqldb *sql.DB) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel((*userdb.User)(nil), (*wordledb.Outcome)(nil))
	return db
}

// Migrators returns one migrator per module. Each module tracks its applied
// migrations in its own table so IDs cannot collide.
func Migrators(db *bun.DB) map[string]*migrate.Migrator {
	return map[string]*migrate.Migrator{
		"user": migrate.NewMigrator(db, usermigrations.Migrations,
			migrate.WithTableName("bun_migrations_user"),
			migrate.WithLocksTableName("bun_migration_locks_user"),
		),
		"wordle": migrate.NewMigrator(db, wordlemigrations.Migrations,
			migrate.WithTableName("bun_migrations_wordle"),
			migrate.WithLocksTableName("bun_migration_locks_wordle"),
		),
	}
}

// ModuleNames lists the migrator keys in run order.
func ModuleNames(migrators map[string]*migrate.Migrator) []string {
	names := make([]string, 0, len(migrators))
	seen := make(map[string]bool, len(migrators))
	for _, name := range moduleOrder {
		if _, ok := migrators[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range migrators {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// MigrateAll creates the migration tables if needed and applies every
// pending migration, module by module.
func MigrateAll(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrators := Migrators(db)
	for _, name := range ModuleNames(migrators) {
		m := migrators[name]
		if err := m.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", name, err)
		}
		if err := m.Lock(ctx); err != nil {
			return fmt.Errorf("lock %s migrations: %w", name, err)
		}
		group, err := m.Migrate(ctx)
		if unlockErr := m.Unlock(ctx); unlockErr != nil {
			logger.WarnContext(ctx, "Failed to release migration lock",
				attr.String("module", name),
				attr.Error(unlockErr),
			)
		}
		if err != nil {
			return fmt.Errorf("migrate %s: %w", name, err)
		}

		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", attr.String("module", name))
			continue
		}
		logger.InfoContext(ctx, "Applied migrations",
			attr.String("module", name),
			attr.String("group", group.String()),
		)
	}
	return nil
}
