package userservice

import (
	"context"
	"fmt"

	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
)

// SyncReport counts what a member sync did.
type SyncReport struct {
	GuildID string `json:"guild_id"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// SyncMembersResult is ErrNoGuild on failure.
type SyncMembersResult = results.OperationResult[SyncReport, error]

// SyncMembers upserts every non-bot member of the guild. Per-member store
// errors are logged and counted; a failed page fetch aborts the sync but
// keeps what was already written.
func (s *UserService) SyncMembers(ctx context.Context, guildID string) (SyncMembersResult, error) {
	result, err := withTelemetry[SyncReport, error](s, ctx, "SyncMembers", "", func(ctx context.Context) (SyncMembersResult, error) {
		return s.syncMembers(ctx, guildID)
	})
	if err != nil {
		return SyncMembersResult{}, err
	}
	if result.IsSuccess() {
		s.metrics.RecordMembersSynced(ctx, result.Success.Created, result.Success.Updated)
	}
	return result, nil
}

func (s *UserService) syncMembers(ctx context.Context, guildID string) (SyncMembersResult, error) {
	if guildID == "" {
		return results.FailureResult[SyncReport](ErrNoGuild), nil
	}

	report := SyncReport{GuildID: guildID}
	after := ""
	for {
		if err := ctx.Err(); err != nil {
			return SyncMembersResult{}, err
		}

		page, err := s.members.ListGuildMembers(ctx, guildID, after, discord.MaxMembersPerPage)
		if err != nil {
			return SyncMembersResult{}, fmt.Errorf("failed to list guild members: %w", err)
		}

		for _, m := range page {
			s.syncMember(ctx, m, &report)
			after = maxSnowflake(after, m.User.ID)
		}

		if len(page) < discord.MaxMembersPerPage {
			break
		}
	}

	s.logger.InfoContext(ctx, "Member sync finished",
		attr.ExtractCorrelationID(ctx),
		attr.String("guild_id", guildID),
		attr.Int("created", report.Created),
		attr.Int("updated", report.Updated),
		attr.Int("skipped", report.Skipped),
		attr.Int("failed", report.Failed),
	)
	return results.SuccessResult[SyncReport, error](report), nil
}

func (s *UserService) syncMember(ctx context.Context, m discord.Member, report *SyncReport) {
	if m.User.Bot || m.User.ID == "" {
		report.Skipped++
		return
	}

	user := MemberToUser(m)
	created, err := s.repo.UpsertUser(ctx, nil, user)
	if err != nil {
		report.Failed++
		s.logger.ErrorContext(ctx, "Failed to upsert member",
			attr.ExtractCorrelationID(ctx),
			attr.UserID(m.User.ID),
			attr.Error(err),
		)
		return
	}
	if created {
		report.Created++
	} else {
		report.Updated++
	}
}

// MemberToUser maps a guild member onto the stored user shape.
func MemberToUser(m discord.Member) *userdb.User {
	guildName := m.Nick
	if guildName == "" {
		guildName = m.User.Username
	}
	globalName := m.User.GlobalName
	if globalName == "" {
		globalName = m.User.Username
	}
	return &userdb.User{
		UserID:     m.User.ID,
		Username:   m.User.Username,
		GuildName:  guildName,
		GlobalName: globalName,
	}
}

// Snowflakes are decimal strings; longer means larger.
func maxSnowflake(a, b string) string {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return a
		}
		return b
	}
	if a > b {
		return a
	}
	return b
}
