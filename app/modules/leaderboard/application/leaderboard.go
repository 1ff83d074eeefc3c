package leaderboardservice

import (
	"context"
	"fmt"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
)

// Leaderboard is a ranked window. Entries is empty, never nil, when nobody
// scored.
type Leaderboard struct {
	Window   leaderboarddomain.Window
	Start    time.Time
	End      time.Time
	MaxGames int
	Entries  []leaderboarddomain.RankedEntry
}

// LeaderboardResult never carries a failure; an empty store ranks nobody.
type LeaderboardResult = results.OperationResult[Leaderboard, error]

// GetLeaderboard ranks every user with recorded results over window.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, window leaderboarddomain.Window) (LeaderboardResult, error) {
	return withTelemetry[Leaderboard, error](s, ctx, "GetLeaderboard", window.String(), func(ctx context.Context) (LeaderboardResult, error) {
		board, err := s.rank(ctx, window)
		if err != nil {
			return LeaderboardResult{}, err
		}
		s.metrics.RecordLeaderboardEntries(ctx, window.String(), len(board.Entries))
		s.logger.InfoContext(ctx, "Leaderboard computed",
			attr.ExtractCorrelationID(ctx),
			attr.Window(window.String()),
			attr.Int("max_games", board.MaxGames),
			attr.Int("entries", len(board.Entries)),
		)
		return results.SuccessResult[Leaderboard, error](board), nil
	})
}

func (s *LeaderboardService) rank(ctx context.Context, window leaderboarddomain.Window) (Leaderboard, error) {
	users, err := s.users.ListActiveUsers(ctx)
	if err != nil {
		return Leaderboard{}, err
	}

	bounds, err := s.globalBounds(ctx)
	if err != nil {
		return Leaderboard{}, err
	}

	now := s.now()
	start, end := window.Range(now, s.loc, bounds)
	timelineLen := 0
	if !bounds.Empty() {
		timelineLen = puzzledate.DaysBetween(bounds.Start, bounds.End) + 1
	}
	board := Leaderboard{
		Window:   window,
		Start:    start,
		End:      end,
		MaxGames: window.MaxGames(now, s.loc, timelineLen),
		Entries:  []leaderboarddomain.RankedEntry{},
	}
	if len(users) == 0 || bounds.Empty() {
		return board, nil
	}

	rows, err := s.outcomes.ListOutcomesInRange(ctx, nil, start, end)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("failed to load outcomes: %w", err)
	}

	byUser := make(map[string][]leaderboarddomain.Outcome, len(users))
	for _, o := range toDomain(rows) {
		byUser[o.UserID] = append(byUser[o.UserID], o)
	}

	candidates := make([]leaderboarddomain.Candidate, 0, len(users))
	for _, u := range users {
		candidates = append(candidates, leaderboarddomain.Candidate{
			UserID:      u.UserID,
			DisplayName: u.DisplayName(),
			Outcomes:    byUser[u.UserID],
		})
	}

	board.Entries = leaderboarddomain.Rank(candidates, board.MaxGames)
	return board, nil
}
