package leaderboardhandlers

import (
	"context"
	"log/slog"
	"net/http"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	leaderboardevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/leaderboard"
)

// Handlers are the leaderboard module's event and HTTP handlers.
type Handlers interface {
	HandleLeaderboardRequested(ctx context.Context, payload *leaderboardevents.LeaderboardRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleStatsRequested(ctx context.Context, payload *leaderboardevents.StatsRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleHTTPLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleHTTPLeaderboardExport(w http.ResponseWriter, r *http.Request)
	HandleHTTPUserStats(w http.ResponseWriter, r *http.Request)
	HandleHTTPUserChart(w http.ResponseWriter, r *http.Request)
}

// LeaderboardHandlers handles leaderboard-related events and requests.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	palette leaderboardservice.ChartPalette
	logger  *slog.Logger
}

// NewLeaderboardHandlers creates a new instance of LeaderboardHandlers.
func NewLeaderboardHandlers(service leaderboardservice.Service, logger *slog.Logger) *LeaderboardHandlers {
	return &LeaderboardHandlers{
		service: service,
		palette: leaderboardservice.DefaultPalette,
		logger:  logger,
	}
}

var _ Handlers = (*LeaderboardHandlers)(nil)
