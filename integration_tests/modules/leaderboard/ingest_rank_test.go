package leaderboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	wordlecheckpoint "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/checkpoint"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/integration_tests/testutils"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
)

// silentChannel satisfies the channel client without any history.
type silentChannel struct{}

func (silentChannel) ListChannelMessages(context.Context, string, string, int) ([]discord.Message, error) {
	return nil, nil
}

func (silentChannel) CreateMessage(context.Context, string, discord.OutgoingMessage) (*discord.Message, error) {
	return &discord.Message{}, nil
}

type stack struct {
	wordle      *wordleservice.WordleService
	leaderboard *leaderboardservice.LeaderboardService
}

func newStack(env *testutils.TestEnvironment) stack {
	logger := observability.NoOpLogger
	metrics := observability.NoOpMetrics{}
	tracer := noop.NewTracerProvider().Tracer("test")

	users := userservice.NewUserService(userdb.NewRepository(env.DB), nil, logger, metrics, tracer, env.DB)
	outcomes := wordledb.NewRepository(env.DB)

	opts := wordleservice.Options{
		ChannelID:   "results",
		WordleAppID: config.DefaultWordleAppID,
		Location:    time.UTC,
	}
	return stack{
		wordle:      wordleservice.NewWordleService(outcomes, users, silentChannel{}, wordlecheckpoint.NewMemoryStore(), opts, logger, metrics, tracer),
		leaderboard: leaderboardservice.NewLeaderboardService(outcomes, users, time.UTC, logger, metrics, tracer),
	}
}

// announcement is the results post for the puzzle of June day, 2025.
func announcement(day int, lines ...string) discord.Message {
	content := "Your group is on a streak! Here are yesterday's results:"
	for _, l := range lines {
		content += "\n" + l
	}
	return discord.Message{
		ID:        fmt.Sprintf("msg-%d", day),
		ChannelID: "results",
		Author:    discord.User{ID: config.DefaultWordleAppID, Bot: true, Username: "Wordle"},
		Content:   content,
		Timestamp: time.Date(2025, 6, day+1, 9, 0, 0, 0, time.UTC),
	}
}

func ingest(t *testing.T, s stack, msg discord.Message) wordleservice.IngestReport {
	t.Helper()
	res, err := s.wordle.IngestAnnouncement(context.Background(), msg)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	return *res.Success
}

func TestIngestThenRank_AllTime(t *testing.T) {
	env := testutils.GetTestEnv(t)
	s := newStack(env)

	for day := 1; day <= 5; day++ {
		lines := []string{"3/6: <@100>"}
		if day == 1 {
			lines = append(lines, "X/6: <@200>")
		}
		report := ingest(t, s, announcement(day, lines...))
		require.Zero(t, report.Failed)
	}
	ingest(t, s, announcement(7, "4/6: <@200>"))

	res, err := s.leaderboard.GetLeaderboard(context.Background(), leaderboarddomain.WindowAllTime)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())

	board := res.Success
	require.Equal(t, 7, board.MaxGames)
	require.Len(t, board.Entries, 2)

	top := board.Entries[0]
	require.Equal(t, "100", top.UserID)
	require.Equal(t, 1, top.Position)
	require.InDelta(t, 60.08163265306122, top.Score, 1e-9)
	require.Equal(t, 5, top.Metrics.GamesPlayed)

	require.Equal(t, "200", board.Entries[1].UserID)
	require.Less(t, board.Entries[1].Score, top.Score)
}

func TestIngest_IsIdempotent(t *testing.T) {
	env := testutils.GetTestEnv(t)
	s := newStack(env)
	msg := announcement(1, "🏆 3/6: <@111>, @alice", "X/6: <@222>")

	first := ingest(t, s, msg)
	second := ingest(t, s, msg)

	require.Equal(t, first.Recorded, second.Recorded)
	require.Equal(t, 2, first.Recorded)
	require.Equal(t, 1, first.Unresolved, "@alice has never been synced")

	n, err := wordledb.NewRepository(env.DB).CountOutcomes(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestGetUserStats_AfterIngest(t *testing.T) {
	env := testutils.GetTestEnv(t)
	s := newStack(env)

	for day := 1; day <= 5; day++ {
		ingest(t, s, announcement(day, "3/6: <@100>"))
	}
	ingest(t, s, announcement(7, "X/6: <@100>"))

	res, err := s.leaderboard.GetUserStats(context.Background(), "100")
	require.NoError(t, err)
	require.True(t, res.IsSuccess())

	stats := res.Success.Stats
	require.Equal(t, 5, stats.MaxStreak)
	require.Zero(t, stats.CurrentStreak)
	require.Equal(t, 5, stats.Distribution[3])
	require.Equal(t, 1, stats.Distribution[0])
	require.Len(t, res.Success.Timeline, 7)

	missing, err := s.leaderboard.GetUserStats(context.Background(), "999")
	require.NoError(t, err)
	require.True(t, missing.IsFailure())
	require.ErrorIs(t, *missing.Failure, userservice.ErrUserNotFound)
}
