package leaderboardservice

import (
	"context"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
)

// UserStats is a player's all-time summary plus the daily timeline it was
// computed from.
type UserStats struct {
	DisplayName string
	Stats       leaderboarddomain.PlayerStats
	Timeline    []leaderboarddomain.TimelineEntry
}

// UserStatsResult fails with userservice.ErrUserNotFound or
// userservice.ErrInvalidUserID.
type UserStatsResult = results.OperationResult[UserStats, error]

// GetUserStats scores a player's whole history against the global timeline.
func (s *LeaderboardService) GetUserStats(ctx context.Context, userID string) (UserStatsResult, error) {
	return withTelemetry[UserStats, error](s, ctx, "GetUserStats", userID, func(ctx context.Context) (UserStatsResult, error) {
		userRes, err := s.users.GetUser(ctx, userID)
		if err != nil {
			return UserStatsResult{}, err
		}
		if userRes.IsFailure() {
			return results.FailureResult[UserStats](*userRes.Failure), nil
		}
		user := *userRes.Success

		rows, err := s.outcomes.ListOutcomesForUser(ctx, nil, user.UserID)
		if err != nil {
			return UserStatsResult{}, fmt.Errorf("failed to load outcomes: %w", err)
		}
		bounds, err := s.globalBounds(ctx)
		if err != nil {
			return UserStatsResult{}, err
		}

		outcomes := toDomain(rows)
		stats := UserStats{
			DisplayName: user.DisplayName(),
			Stats:       leaderboarddomain.BuildPlayerStats(user.UserID, outcomes, bounds),
		}
		if !bounds.Empty() {
			stats.Timeline = leaderboarddomain.BuildTimeline(outcomes, bounds.Start, bounds.End)
		}
		return results.SuccessResult[UserStats, error](stats), nil
	})
}
