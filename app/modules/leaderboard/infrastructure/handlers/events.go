package leaderboardhandlers

import (
	"context"
	"errors"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	leaderboardevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/leaderboard"
)

const (
	defaultWindow = "all"

	leaderboardFailedReason = "failed to load leaderboard"
	statsFailedReason       = "failed to load stats"
)

// HandleLeaderboardRequested ranks the requested window and returns one
// rendered page.
func (h *LeaderboardHandlers) HandleLeaderboardRequested(
	ctx context.Context,
	payload *leaderboardevents.LeaderboardRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	name := payload.Window
	if name == "" {
		name = defaultWindow
	}

	window, err := leaderboarddomain.ParseWindow(name)
	if err != nil {
		return []handlerwrapper.Result{leaderboardFailed(payload, name, err.Error())}, nil
	}

	result, err := h.service.GetLeaderboard(ctx, window)
	if err != nil {
		return []handlerwrapper.Result{leaderboardFailed(payload, window.String(), leaderboardFailedReason)}, nil
	}
	if result.IsFailure() {
		return []handlerwrapper.Result{leaderboardFailed(payload, window.String(), (*result.Failure).Error())}, nil
	}

	page := leaderboardservice.RenderLeaderboardPage(*result.Success, payload.Page)
	return []handlerwrapper.Result{{
		Topic:   leaderboardevents.LeaderboardRetrievedV1,
		Payload: toPagePayload(page, payload.ChannelID),
	}}, nil
}

func leaderboardFailed(payload *leaderboardevents.LeaderboardRequestedPayloadV1, window, reason string) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: leaderboardevents.LeaderboardRetrievalFailedV1,
		Payload: &leaderboardevents.LeaderboardRetrievalFailedPayloadV1{
			Window:    window,
			ChannelID: payload.ChannelID,
			Reason:    reason,
		},
	}
}

// HandleStatsRequested returns a player's all-time stats.
func (h *LeaderboardHandlers) HandleStatsRequested(
	ctx context.Context,
	payload *leaderboardevents.StatsRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.GetUserStats(ctx, payload.UserID)
	if err != nil {
		return []handlerwrapper.Result{statsFailed(payload, statsFailedReason)}, nil
	}
	if result.IsFailure() {
		reason := (*result.Failure).Error()
		if errors.Is(*result.Failure, userservice.ErrUserNotFound) {
			reason = "no results recorded for this user"
		}
		return []handlerwrapper.Result{statsFailed(payload, reason)}, nil
	}

	return []handlerwrapper.Result{{
		Topic:   leaderboardevents.StatsRetrievedV1,
		Payload: toStatsPayload(*result.Success, payload.ChannelID),
	}}, nil
}

func statsFailed(payload *leaderboardevents.StatsRequestedPayloadV1, reason string) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: leaderboardevents.StatsRetrievalFailedV1,
		Payload: &leaderboardevents.StatsRetrievalFailedPayloadV1{
			UserID:    payload.UserID,
			ChannelID: payload.ChannelID,
			Reason:    reason,
		},
	}
}
