package leaderboardhandlers

import (
	"context"
	"strconv"
	"time"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
)

// FakeService implements leaderboardservice.Service for handler testing.
type FakeService struct {
	GetLeaderboardFn func(ctx context.Context, window leaderboarddomain.Window) (leaderboardservice.LeaderboardResult, error)
	GetUserStatsFn   func(ctx context.Context, userID string) (leaderboardservice.UserStatsResult, error)

	Windows []leaderboarddomain.Window
	UserIDs []string
}

func (f *FakeService) GetLeaderboard(ctx context.Context, window leaderboarddomain.Window) (leaderboardservice.LeaderboardResult, error) {
	f.Windows = append(f.Windows, window)
	return f.GetLeaderboardFn(ctx, window)
}

func (f *FakeService) GetUserStats(ctx context.Context, userID string) (leaderboardservice.UserStatsResult, error) {
	f.UserIDs = append(f.UserIDs, userID)
	return f.GetUserStatsFn(ctx, userID)
}

func score(n int) *int { return &n }

func day(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC) }

// boardOf builds a leaderboard with n ranked players.
func boardOf(window leaderboarddomain.Window, n int) leaderboardservice.Leaderboard {
	entries := make([]leaderboarddomain.RankedEntry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, leaderboarddomain.RankedEntry{
			Position:    i,
			UserID:      strconv.Itoa(i),
			DisplayName: "player",
			Score:       float64(100 - i),
			Metrics:     leaderboarddomain.Metrics{GamesPlayed: 3, SolvedCount: 3, SolveRate: 1, AvgGuesses: 3, MaxGames: 3},
		})
	}
	return leaderboardservice.Leaderboard{Window: window, Start: day(2), End: day(4), MaxGames: 3, Entries: entries}
}

func boardResult(board leaderboardservice.Leaderboard) (leaderboardservice.LeaderboardResult, error) {
	return results.SuccessResult[leaderboardservice.Leaderboard, error](board), nil
}

func sampleStats() leaderboardservice.UserStats {
	return leaderboardservice.UserStats{
		DisplayName: "Bobby",
		Stats: leaderboarddomain.PlayerStats{
			UserID: "2",
			Result: leaderboarddomain.ScoreResult{
				Score:   42.5,
				Metrics: leaderboarddomain.Metrics{GamesPlayed: 2, SolvedCount: 1, SolveRate: 0.5, AvgGuesses: 4, MaxGames: 3},
			},
			Distribution:  leaderboarddomain.Distribution{1, 0, 0, 0, 1, 0, 0},
			CurrentStreak: 0,
			MaxStreak:     1,
			LastPlayed:    day(4),
		},
		Timeline: []leaderboarddomain.TimelineEntry{
			{Date: day(2), Status: leaderboarddomain.StatusMissing},
			{Date: day(3), Status: leaderboarddomain.StatusSolved, Score: score(4)},
			{Date: day(4), Status: leaderboarddomain.StatusFailed},
		},
	}
}
