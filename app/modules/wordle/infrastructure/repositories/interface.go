package wordledb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for puzzle outcomes. Dates are
// returned normalized to 12:00 UTC of their calendar day.
type Repository interface {
	// UpsertOutcome inserts or overwrites the outcome for (user, date).
	UpsertOutcome(ctx context.Context, db bun.IDB, outcome *Outcome) error
	// GetGlobalBounds returns the earliest and latest puzzle dates across
	// all users, or ErrNoOutcomes.
	GetGlobalBounds(ctx context.Context, db bun.IDB) (start, end time.Time, err error)
	// ListOutcomesForUser returns a user's outcomes, newest first.
	ListOutcomesForUser(ctx context.Context, db bun.IDB, userID string) ([]*Outcome, error)
	// ListOutcomesInRange returns every outcome with start <= date <= end,
	// ordered by user then date.
	ListOutcomesInRange(ctx context.Context, db bun.IDB, start, end time.Time) ([]*Outcome, error)
	CountOutcomes(ctx context.Context, db bun.IDB) (int, error)
}
