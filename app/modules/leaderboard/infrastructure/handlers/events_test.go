package leaderboardhandlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
	leaderboardevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/leaderboard"
)

func TestLeaderboardHandlers_HandleLeaderboardRequested(t *testing.T) {
	tests := []struct {
		name        string
		payload     leaderboardevents.LeaderboardRequestedPayloadV1
		load        func(ctx context.Context, w leaderboarddomain.Window) (leaderboardservice.LeaderboardResult, error)
		wantWindows []leaderboarddomain.Window
		wantTopic   string
		check       func(t *testing.T, out any)
	}{
		{
			name:    "second page",
			payload: leaderboardevents.LeaderboardRequestedPayloadV1{Window: "weekly", Page: 2, ChannelID: "c1"},
			load: func(ctx context.Context, w leaderboarddomain.Window) (leaderboardservice.LeaderboardResult, error) {
				return boardResult(boardOf(w, 15))
			},
			wantWindows: []leaderboarddomain.Window{leaderboarddomain.WindowWeekly},
			wantTopic:   leaderboardevents.LeaderboardRetrievedV1,
			check: func(t *testing.T, out any) {
				p := out.(*leaderboardevents.LeaderboardRetrievedPayloadV1)
				require.Equal(t, "weekly", p.Window)
				require.Equal(t, 2, p.Page)
				require.Equal(t, 2, p.TotalPages)
				require.Equal(t, "c1", p.ChannelID)
				require.Len(t, p.Entries, 5)
				require.Equal(t, 11, p.Entries[0].Position)
				require.Equal(t, "Page 2/2", p.Embed.Footer.Text)
			},
		},
		{
			name:    "empty window defaults to all time",
			payload: leaderboardevents.LeaderboardRequestedPayloadV1{},
			load: func(ctx context.Context, w leaderboarddomain.Window) (leaderboardservice.LeaderboardResult, error) {
				return boardResult(boardOf(w, 0))
			},
			wantWindows: []leaderboarddomain.Window{leaderboarddomain.WindowAllTime},
			wantTopic:   leaderboardevents.LeaderboardRetrievedV1,
			check: func(t *testing.T, out any) {
				p := out.(*leaderboardevents.LeaderboardRetrievedPayloadV1)
				require.Empty(t, p.Entries)
				require.NotNil(t, p.Entries)
				require.Equal(t, 1, p.TotalPages)
			},
		},
		{
			name:      "unknown window",
			payload:   leaderboardevents.LeaderboardRequestedPayloadV1{Window: "yearly"},
			wantTopic: leaderboardevents.LeaderboardRetrievalFailedV1,
			check: func(t *testing.T, out any) {
				p := out.(*leaderboardevents.LeaderboardRetrievalFailedPayloadV1)
				require.Equal(t, "yearly", p.Window)
				require.Contains(t, p.Reason, leaderboarddomain.ErrInvalidWindow.Error())
			},
		},
		{
			name:    "store error",
			payload: leaderboardevents.LeaderboardRequestedPayloadV1{Window: "month"},
			load: func(ctx context.Context, w leaderboarddomain.Window) (leaderboardservice.LeaderboardResult, error) {
				return leaderboardservice.LeaderboardResult{}, errors.New("timeout")
			},
			wantWindows: []leaderboarddomain.Window{leaderboarddomain.WindowMonthly},
			wantTopic:   leaderboardevents.LeaderboardRetrievalFailedV1,
			check: func(t *testing.T, out any) {
				p := out.(*leaderboardevents.LeaderboardRetrievalFailedPayloadV1)
				require.Equal(t, "monthly", p.Window)
				require.Equal(t, leaderboardFailedReason, p.Reason)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{GetLeaderboardFn: tt.load}
			h := NewLeaderboardHandlers(svc, observability.NoOpLogger)

			payload := tt.payload
			out, err := h.HandleLeaderboardRequested(context.Background(), &payload)
			require.NoError(t, err)
			require.Len(t, out, 1)
			require.Equal(t, tt.wantTopic, out[0].Topic)
			require.Equal(t, tt.wantWindows, svc.Windows)
			tt.check(t, out[0].Payload)
		})
	}
}

func TestLeaderboardHandlers_HandleStatsRequested(t *testing.T) {
	tests := []struct {
		name      string
		load      func(ctx context.Context, userID string) (leaderboardservice.UserStatsResult, error)
		wantTopic string
		want      any
	}{
		{
			name: "found",
			load: func(ctx context.Context, userID string) (leaderboardservice.UserStatsResult, error) {
				return results.SuccessResult[leaderboardservice.UserStats, error](sampleStats()), nil
			},
			wantTopic: leaderboardevents.StatsRetrievedV1,
			want: &leaderboardevents.StatsRetrievedPayloadV1{
				UserID:       "2",
				DisplayName:  "Bobby",
				Score:        42.5,
				GamesPlayed:  2,
				SolvedCount:  1,
				SolveRate:    0.5,
				AvgGuesses:   4,
				MaxGames:     3,
				Distribution: [7]int{1, 0, 0, 0, 1, 0, 0},
				MaxStreak:    1,
				LastPlayed:   "2025-06-04",
				ChannelID:    "c1",
			},
		},
		{
			name: "unknown user",
			load: func(ctx context.Context, userID string) (leaderboardservice.UserStatsResult, error) {
				return results.FailureResult[leaderboardservice.UserStats](userservice.ErrUserNotFound), nil
			},
			wantTopic: leaderboardevents.StatsRetrievalFailedV1,
			want:      &leaderboardevents.StatsRetrievalFailedPayloadV1{UserID: "2", ChannelID: "c1", Reason: "no results recorded for this user"},
		},
		{
			name: "store error",
			load: func(ctx context.Context, userID string) (leaderboardservice.UserStatsResult, error) {
				return leaderboardservice.UserStatsResult{}, errors.New("boom")
			},
			wantTopic: leaderboardevents.StatsRetrievalFailedV1,
			want:      &leaderboardevents.StatsRetrievalFailedPayloadV1{UserID: "2", ChannelID: "c1", Reason: statsFailedReason},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{GetUserStatsFn: tt.load}
			h := NewLeaderboardHandlers(svc, observability.NoOpLogger)

			out, err := h.HandleStatsRequested(context.Background(), &leaderboardevents.StatsRequestedPayloadV1{UserID: "2", ChannelID: "c1"})
			require.NoError(t, err)
			require.Len(t, out, 1)
			require.Equal(t, tt.wantTopic, out[0].Topic)
			require.Equal(t, tt.want, out[0].Payload)
			require.Equal(t, []string{"2"}, svc.UserIDs)
		})
	}
}
