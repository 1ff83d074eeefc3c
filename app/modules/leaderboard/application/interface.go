package leaderboardservice

import (
	"context"

	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
)

// Service is the leaderboard module's application API.
type Service interface {
	GetLeaderboard(ctx context.Context, window leaderboarddomain.Window) (LeaderboardResult, error)
	GetUserStats(ctx context.Context, userID string) (UserStatsResult, error)
}

var _ Service = (*LeaderboardService)(nil)
