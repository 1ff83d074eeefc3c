package leaderboardhandlers

import (
	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
	leaderboardevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/leaderboard"
)

func toEntries(ranked []leaderboarddomain.RankedEntry) []leaderboardevents.LeaderboardEntryV1 {
	out := make([]leaderboardevents.LeaderboardEntryV1, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, leaderboardevents.LeaderboardEntryV1{
			Position:    e.Position,
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Score:       e.Score,
			GamesPlayed: e.Metrics.GamesPlayed,
			SolvedCount: e.Metrics.SolvedCount,
			SolveRate:   e.Metrics.SolveRate,
			AvgGuesses:  e.Metrics.AvgGuesses,
		})
	}
	return out
}

func toPagePayload(page leaderboardservice.LeaderboardPage, channelID string) *leaderboardevents.LeaderboardRetrievedPayloadV1 {
	return &leaderboardevents.LeaderboardRetrievedPayloadV1{
		Window:     page.Window.String(),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		ChannelID:  channelID,
		Entries:    toEntries(page.Entries),
		Embed:      page.Embed,
	}
}

func toStatsPayload(stats leaderboardservice.UserStats, channelID string) *leaderboardevents.StatsRetrievedPayloadV1 {
	p := &leaderboardevents.StatsRetrievedPayloadV1{
		UserID:        stats.Stats.UserID,
		DisplayName:   stats.DisplayName,
		Score:         stats.Stats.Result.Score,
		GamesPlayed:   stats.Stats.Result.Metrics.GamesPlayed,
		SolvedCount:   stats.Stats.Result.Metrics.SolvedCount,
		SolveRate:     stats.Stats.Result.Metrics.SolveRate,
		AvgGuesses:    stats.Stats.Result.Metrics.AvgGuesses,
		MaxGames:      stats.Stats.Result.Metrics.MaxGames,
		Distribution:  stats.Stats.Distribution,
		CurrentStreak: stats.Stats.CurrentStreak,
		MaxStreak:     stats.Stats.MaxStreak,
		ChannelID:     channelID,
	}
	if !stats.Stats.LastPlayed.IsZero() {
		p.LastPlayed = puzzledate.Key(stats.Stats.LastPlayed)
	}
	return p
}
