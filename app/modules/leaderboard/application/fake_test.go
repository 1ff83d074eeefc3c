package leaderboardservice

import (
	"context"
	"io"
	"log/slog"
	"time"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
	"go.opentelemetry.io/otel/trace/noop"
)

// FakeUserDirectory serves a fixed user list.
type FakeUserDirectory struct {
	Users             []*userdb.User
	ListActiveUsersFn func(ctx context.Context) ([]*userdb.User, error)
}

func (f *FakeUserDirectory) ListActiveUsers(ctx context.Context) ([]*userdb.User, error) {
	if f.ListActiveUsersFn != nil {
		return f.ListActiveUsersFn(ctx)
	}
	return f.Users, nil
}

func (f *FakeUserDirectory) GetUser(ctx context.Context, userID string) (userservice.UserResult, error) {
	if userID == "" {
		return results.FailureResult[*userdb.User](userservice.ErrInvalidUserID), nil
	}
	for _, u := range f.Users {
		if u.UserID == userID {
			return results.SuccessResult[*userdb.User, error](u), nil
		}
	}
	return results.FailureResult[*userdb.User](userservice.ErrUserNotFound), nil
}

// Thursday morning: the latest puzzle is Wednesday 4 June, so the weekly
// window is Monday 2 June through 4 June.
var testNow = time.Date(2025, 6, 5, 18, 0, 0, 0, time.UTC)

func newTestService(repo wordledb.Repository, users UserDirectory) *LeaderboardService {
	svc := NewLeaderboardService(
		repo,
		users,
		time.UTC,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func date(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 12, 0, 0, 0, time.UTC)
}

func score(n int) *int { return &n }

// seed stores three players:
//
//	alice (1): 3/6 on 2, 3 and 4 June
//	bob   (2): 4/6 on 3 June, X/6 on 4 June
//	carol (3): 2/6 on 20 May only
func seed() (*wordledb.FakeRepository, *FakeUserDirectory) {
	repo := wordledb.NewFakeRepository()
	rows := []wordledb.Outcome{
		{UserID: "1", PuzzleDate: date(time.June, 2), Solved: true, Score: score(3)},
		{UserID: "1", PuzzleDate: date(time.June, 3), Solved: true, Score: score(3)},
		{UserID: "1", PuzzleDate: date(time.June, 4), Solved: true, Score: score(3)},
		{UserID: "2", PuzzleDate: date(time.June, 3), Solved: true, Score: score(4)},
		{UserID: "2", PuzzleDate: date(time.June, 4), Solved: false},
		{UserID: "3", PuzzleDate: date(time.May, 20), Solved: true, Score: score(2)},
	}
	for i := range rows {
		_ = repo.UpsertOutcome(context.Background(), nil, &rows[i])
	}

	users := &FakeUserDirectory{Users: []*userdb.User{
		{UserID: "1", Username: "alice"},
		{UserID: "2", Username: "bob", GuildName: "Bobby"},
		{UserID: "3", Username: "carol"},
	}}
	return repo, users
}
