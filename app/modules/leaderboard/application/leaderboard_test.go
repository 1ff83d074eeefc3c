package leaderboardservice

import (
	"context"
	"errors"
	"testing"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func userIDs(entries []leaderboarddomain.RankedEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	return ids
}

func TestGetLeaderboard_Weekly(t *testing.T) {
	repo, users := seed()
	svc := newTestService(repo, users)

	res, err := svc.GetLeaderboard(context.Background(), leaderboarddomain.WindowWeekly)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())

	board := *res.Success
	require.Equal(t, "2025-06-02", puzzledate.Key(board.Start))
	require.Equal(t, "2025-06-04", puzzledate.Key(board.End))
	require.Equal(t, 3, board.MaxGames)
	require.Equal(t, []string{"1", "2"}, userIDs(board.Entries), "carol played nothing this week")

	require.Equal(t, 1, board.Entries[0].Position)
	require.Equal(t, "alice", board.Entries[0].DisplayName)
	require.InDelta(t, 80.0, board.Entries[0].Score, 1e-9)

	require.Equal(t, 2, board.Entries[1].Position)
	require.Equal(t, "Bobby", board.Entries[1].DisplayName)
	require.InDelta(t, 33.0, board.Entries[1].Score, 1e-9)
}

func TestGetLeaderboard_AllTimePenalizesAttendance(t *testing.T) {
	repo, users := seed()
	svc := newTestService(repo, users)

	res, err := svc.GetLeaderboard(context.Background(), leaderboarddomain.WindowAllTime)
	require.NoError(t, err)

	board := *res.Success
	require.Equal(t, "2025-05-20", puzzledate.Key(board.Start))
	require.Equal(t, 16, board.MaxGames)
	require.Equal(t, []string{"3", "1", "2"}, userIDs(board.Entries))
	require.InDelta(t, 30.99609375, board.Entries[0].Score, 1e-9)
	require.InDelta(t, 29.77734375, board.Entries[1].Score, 1e-9)
	require.InDelta(t, 17.0546875, board.Entries[2].Score, 1e-9)
}

func TestGetLeaderboard_EmptyStore(t *testing.T) {
	svc := newTestService(wordledb.NewFakeRepository(), &FakeUserDirectory{})

	for _, w := range []leaderboarddomain.Window{leaderboarddomain.WindowWeekly, leaderboarddomain.WindowMonthly, leaderboarddomain.WindowAllTime} {
		res, err := svc.GetLeaderboard(context.Background(), w)
		require.NoError(t, err)
		require.NotNil(t, res.Success.Entries)
		require.Empty(t, res.Success.Entries)
		require.GreaterOrEqual(t, res.Success.MaxGames, 1)
	}
}

func TestGetLeaderboard_StoreErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(repo *wordledb.FakeRepository, users *FakeUserDirectory)
	}{
		{
			name: "users",
			setup: func(_ *wordledb.FakeRepository, users *FakeUserDirectory) {
				users.ListActiveUsersFn = func(context.Context) ([]*userdb.User, error) {
					return nil, errors.New("connection reset")
				}
			},
		},
		{
			name: "bounds",
			setup: func(repo *wordledb.FakeRepository, _ *FakeUserDirectory) {
				repo.GetGlobalBoundsFn = func(context.Context, bun.IDB) (time.Time, time.Time, error) {
					return time.Time{}, time.Time{}, errors.New("connection reset")
				}
			},
		},
		{
			name: "outcomes",
			setup: func(repo *wordledb.FakeRepository, _ *FakeUserDirectory) {
				repo.ListOutcomesInRangeFn = func(context.Context, bun.IDB, time.Time, time.Time) ([]*wordledb.Outcome, error) {
					return nil, errors.New("connection reset")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, users := seed()
			tt.setup(repo, users)
			svc := newTestService(repo, users)

			_, err := svc.GetLeaderboard(context.Background(), leaderboarddomain.WindowMonthly)
			require.ErrorContains(t, err, "connection reset")
		})
	}
}
