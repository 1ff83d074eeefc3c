// Package leaderboardevents holds the leaderboard and stats topics and payloads.
package leaderboardevents

import "github.com/Black-And-White-Club/wordle-bot/internal/discord"

const (
	LeaderboardRequestedV1       = "wordle.leaderboard.requested.v1"
	LeaderboardRetrievedV1       = "wordle.leaderboard.retrieved.v1"
	LeaderboardRetrievalFailedV1 = "wordle.leaderboard.retrieval.failed.v1"

	StatsRequestedV1       = "wordle.stats.requested.v1"
	StatsRetrievedV1       = "wordle.stats.retrieved.v1"
	StatsRetrievalFailedV1 = "wordle.stats.retrieval.failed.v1"
)

// LeaderboardRequestedPayloadV1 asks for one rendered page. Page is 1-based;
// zero means the first page.
type LeaderboardRequestedPayloadV1 struct {
	Window    string `json:"window"`
	Page      int    `json:"page,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
}

type LeaderboardEntryV1 struct {
	Position    int     `json:"position"`
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
	GamesPlayed int     `json:"games_played"`
	SolvedCount int     `json:"solved_count"`
	SolveRate   float64 `json:"solve_rate"`
	AvgGuesses  float64 `json:"avg_guesses"`
}

type LeaderboardRetrievedPayloadV1 struct {
	Window     string               `json:"window"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
	ChannelID  string               `json:"channel_id,omitempty"`
	Entries    []LeaderboardEntryV1 `json:"entries"`
	Embed      discord.Embed        `json:"embed"`
}

type LeaderboardRetrievalFailedPayloadV1 struct {
	Window    string `json:"window"`
	ChannelID string `json:"channel_id,omitempty"`
	Reason    string `json:"reason"`
}

type StatsRequestedPayloadV1 struct {
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id,omitempty"`
}

type StatsRetrievedPayloadV1 struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
	GamesPlayed int     `json:"games_played"`
	SolvedCount int     `json:"solved_count"`
	SolveRate   float64 `json:"solve_rate"`
	AvgGuesses  float64 `json:"avg_guesses"`
	MaxGames    int     `json:"max_games"`
	// Distribution[0] counts failures, Distribution[n] games solved in n.
	Distribution  [7]int `json:"distribution"`
	CurrentStreak int    `json:"current_streak"`
	MaxStreak     int    `json:"max_streak"`
	LastPlayed    string `json:"last_played,omitempty"`
	ChannelID     string `json:"channel_id,omitempty"`
}

type StatsRetrievalFailedPayloadV1 struct {
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id,omitempty"`
	Reason    string `json:"reason"`
}
