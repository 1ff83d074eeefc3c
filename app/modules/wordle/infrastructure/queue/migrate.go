package wordlequeue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"

	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
)

// Direction is the way MigrateRiver moves the River schema.
type Direction = rivermigrate.Direction

const (
	Up   = rivermigrate.DirectionUp
	Down = rivermigrate.DirectionDown
)

// MigrateRiver applies (or, with Down, rolls back maxSteps of) the River
// schema migrations. maxSteps <= 0 means all of them.
func MigrateRiver(ctx context.Context, dsn string, direction Direction, maxSteps int, logger *slog.Logger) ([]int, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), &rivermigrate.Config{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to create river migrator: %w", err)
	}

	res, err := migrator.Migrate(ctx, direction, &rivermigrate.MigrateOpts{MaxSteps: maxSteps})
	if err != nil {
		return nil, fmt.Errorf("failed to run river migrations: %w", err)
	}

	versions := make([]int, 0, len(res.Versions))
	for _, v := range res.Versions {
		versions = append(versions, v.Version)
	}
	logger.InfoContext(ctx, "River migrations complete",
		attr.String("direction", string(direction)),
		attr.Int("applied", len(versions)),
	)
	return versions, nil
}

// RiverStatus reports whether the River schema is fully migrated.
func RiverStatus(ctx context.Context, dsn string) (bool, []string, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return false, nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return false, nil, fmt.Errorf("failed to create river migrator: %w", err)
	}
	res, err := migrator.Validate(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("failed to validate river migrations: %w", err)
	}
	return res.OK, res.Messages, nil
}
