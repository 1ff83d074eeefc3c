package userhandlers

import (
	"context"
	"log/slog"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	userevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/user"
)

const syncFailedReason = "failed to sync guild members"

// Handlers are the user module's event handlers.
type Handlers interface {
	HandleMembersSyncRequested(ctx context.Context, payload *userevents.MembersSyncRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

// UserHandlers handles user-related events.
type UserHandlers struct {
	userService    userservice.Service
	defaultGuildID string
	logger         *slog.Logger
}

// NewUserHandlers creates a new UserHandlers. defaultGuildID is used when a
// request names no guild.
func NewUserHandlers(userService userservice.Service, defaultGuildID string, logger *slog.Logger) *UserHandlers {
	return &UserHandlers{
		userService:    userService,
		defaultGuildID: defaultGuildID,
		logger:         logger,
	}
}

var _ Handlers = (*UserHandlers)(nil)

// HandleMembersSyncRequested refreshes the user table from the guild member
// list.
func (h *UserHandlers) HandleMembersSyncRequested(
	ctx context.Context,
	payload *userevents.MembersSyncRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	guildID := payload.GuildID
	if guildID == "" {
		guildID = h.defaultGuildID
	}

	h.logger.InfoContext(ctx, "Received member sync request",
		attr.String("guild_id", guildID),
		attr.String("requested_by", payload.RequestedBy),
	)

	result, err := h.userService.SyncMembers(ctx, guildID)
	if err != nil {
		return []handlerwrapper.Result{syncFailed(guildID, syncFailedReason)}, nil
	}
	if result.IsFailure() {
		return []handlerwrapper.Result{syncFailed(guildID, (*result.Failure).Error())}, nil
	}

	report := result.Success
	return []handlerwrapper.Result{{
		Topic: userevents.MembersSyncedV1,
		Payload: &userevents.MembersSyncedPayloadV1{
			GuildID: report.GuildID,
			Created: report.Created,
			Updated: report.Updated,
			Skipped: report.Skipped,
			Failed:  report.Failed,
		},
	}}, nil
}

func syncFailed(guildID, reason string) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: userevents.MembersSyncFailedV1,
		Payload: &userevents.MembersSyncFailedPayloadV1{
			GuildID: guildID,
			Reason:  reason,
		},
	}
}
