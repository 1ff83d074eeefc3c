package wordledb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
	"github.com/uptrace/bun"
)

// Impl implements Repository using bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new outcome repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) UpsertOutcome(ctx context.Context, db bun.IDB, outcome *Outcome) error {
	if db == nil {
		db = r.db
	}
	if outcome.Solved != (outcome.Score != nil) {
		return fmt.Errorf("wordledb.UpsertOutcome: score must be set iff solved (user %s)", outcome.UserID)
	}

	now := time.Now().UTC()
	outcome.PuzzleDate = puzzledate.Normalize(outcome.PuzzleDate)
	outcome.UpdatedAt = now
	if outcome.CreatedAt.IsZero() {
		outcome.CreatedAt = now
	}

	_, err := db.NewInsert().
		Model(outcome).
		On("CONFLICT (user_id, puzzle_date) DO UPDATE").
		Set("solved = EXCLUDED.solved").
		Set("score = EXCLUDED.score").
		Set("message_id = EXCLUDED.message_id").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("wordledb.UpsertOutcome: %w", err)
	}
	return nil
}

func (r *Impl) GetGlobalBounds(ctx context.Context, db bun.IDB) (time.Time, time.Time, error) {
	if db == nil {
		db = r.db
	}
	var start, end sql.NullTime
	err := db.NewSelect().
		Model((*Outcome)(nil)).
		ColumnExpr("MIN(puzzle_date)").
		ColumnExpr("MAX(puzzle_date)").
		Scan(ctx, &start, &end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("wordledb.GetGlobalBounds: %w", err)
	}
	if !start.Valid || !end.Valid {
		return time.Time{}, time.Time{}, ErrNoOutcomes
	}
	return puzzledate.Normalize(start.Time), puzzledate.Normalize(end.Time), nil
}

func (r *Impl) ListOutcomesForUser(ctx context.Context, db bun.IDB, userID string) ([]*Outcome, error) {
	if db == nil {
		db = r.db
	}
	var outcomes []*Outcome
	err := db.NewSelect().
		Model(&outcomes).
		Where("user_id = ?", userID).
		Order("puzzle_date DESC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wordledb.ListOutcomesForUser: %w", err)
	}
	normalize(outcomes)
	return outcomes, nil
}

func (r *Impl) ListOutcomesInRange(ctx context.Context, db bun.IDB, start, end time.Time) ([]*Outcome, error) {
	if db == nil {
		db = r.db
	}
	var outcomes []*Outcome
	err := db.NewSelect().
		Model(&outcomes).
		Where("puzzle_date BETWEEN ? AND ?", puzzledate.Key(start), puzzledate.Key(end)).
		Order("user_id ASC", "puzzle_date ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wordledb.ListOutcomesInRange: %w", err)
	}
	normalize(outcomes)
	return outcomes, nil
}

func (r *Impl) CountOutcomes(ctx context.Context, db bun.IDB) (int, error) {
	if db == nil {
		db = r.db
	}
	n, err := db.NewSelect().Model((*Outcome)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("wordledb.CountOutcomes: %w", err)
	}
	return n, nil
}

// DATE columns come back at midnight; move them to the puzzle hour.
func normalize(outcomes []*Outcome) {
	for _, o := range outcomes {
		o.PuzzleDate = puzzledate.Normalize(o.PuzzleDate)
	}
}
