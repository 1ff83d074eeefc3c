package wordledb

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
	"github.com/uptrace/bun"
)

// FakeRepository is a test double for Repository. Methods whose Fn field is
// unset fall back to an in-memory table keyed by (user_id, puzzle_date), so
// idempotence can be observed without a database.
type FakeRepository struct {
	UpsertOutcomeFn       func(ctx context.Context, db bun.IDB, outcome *Outcome) error
	GetGlobalBoundsFn     func(ctx context.Context, db bun.IDB) (time.Time, time.Time, error)
	ListOutcomesForUserFn func(ctx context.Context, db bun.IDB, userID string) ([]*Outcome, error)
	ListOutcomesInRangeFn func(ctx context.Context, db bun.IDB, start, end time.Time) ([]*Outcome, error)
	CountOutcomesFn       func(ctx context.Context, db bun.IDB) (int, error)

	mu    sync.Mutex
	rows  map[outcomeKey]Outcome
	trace []string
}

type outcomeKey struct {
	userID string
	date   string
}

// NewFakeRepository returns a fake with an empty in-memory table.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{rows: map[outcomeKey]Outcome{}}
}

// Trace returns the names of the methods called, in order.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Rows returns a copy of the in-memory table ordered by user then date.
func (f *FakeRepository) Rows() []Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedLocked()
}

func (f *FakeRepository) record(step string) {
	f.mu.Lock()
	f.trace = append(f.trace, step)
	f.mu.Unlock()
}

func (f *FakeRepository) sortedLocked() []Outcome {
	out := make([]Outcome, 0, len(f.rows))
	for _, o := range f.rows {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b Outcome) int {
		if c := cmp.Compare(a.UserID, b.UserID); c != 0 {
			return c
		}
		return a.PuzzleDate.Compare(b.PuzzleDate)
	})
	return out
}

func (f *FakeRepository) UpsertOutcome(ctx context.Context, db bun.IDB, outcome *Outcome) error {
	f.record("UpsertOutcome")
	if f.UpsertOutcomeFn != nil {
		return f.UpsertOutcomeFn(ctx, db, outcome)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows == nil {
		f.rows = map[outcomeKey]Outcome{}
	}
	o := *outcome
	o.PuzzleDate = puzzledate.Normalize(o.PuzzleDate)
	key := outcomeKey{userID: o.UserID, date: puzzledate.Key(o.PuzzleDate)}
	if existing, ok := f.rows[key]; ok {
		o.ID = existing.ID
	} else {
		o.ID = int64(len(f.rows) + 1)
	}
	f.rows[key] = o
	return nil
}

func (f *FakeRepository) GetGlobalBounds(ctx context.Context, db bun.IDB) (time.Time, time.Time, error) {
	f.record("GetGlobalBounds")
	if f.GetGlobalBoundsFn != nil {
		return f.GetGlobalBoundsFn(ctx, db)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.rows) == 0 {
		return time.Time{}, time.Time{}, ErrNoOutcomes
	}
	var start, end time.Time
	for _, o := range f.rows {
		if start.IsZero() || o.PuzzleDate.Before(start) {
			start = o.PuzzleDate
		}
		if o.PuzzleDate.After(end) {
			end = o.PuzzleDate
		}
	}
	return start, end, nil
}

func (f *FakeRepository) ListOutcomesForUser(ctx context.Context, db bun.IDB, userID string) ([]*Outcome, error) {
	f.record("ListOutcomesForUser")
	if f.ListOutcomesForUserFn != nil {
		return f.ListOutcomesForUserFn(ctx, db, userID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Outcome
	rows := f.sortedLocked()
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].UserID == userID {
			o := rows[i]
			out = append(out, &o)
		}
	}
	return out, nil
}

func (f *FakeRepository) ListOutcomesInRange(ctx context.Context, db bun.IDB, start, end time.Time) ([]*Outcome, error) {
	f.record("ListOutcomesInRange")
	if f.ListOutcomesInRangeFn != nil {
		return f.ListOutcomesInRangeFn(ctx, db, start, end)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	lo, hi := puzzledate.Normalize(start), puzzledate.Normalize(end)
	var out []*Outcome
	for _, o := range f.sortedLocked() {
		if o.PuzzleDate.Before(lo) || o.PuzzleDate.After(hi) {
			continue
		}
		o := o
		out = append(out, &o)
	}
	return out, nil
}

func (f *FakeRepository) CountOutcomes(ctx context.Context, db bun.IDB) (int, error) {
	f.record("CountOutcomes")
	if f.CountOutcomesFn != nil {
		return f.CountOutcomesFn(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows), nil
}

var _ Repository = (*FakeRepository)(nil)
