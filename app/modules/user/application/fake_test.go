package userservice

import (
	"context"
	"io"
	"log/slog"

	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"go.opentelemetry.io/otel/trace/noop"
)

// FakeMemberLister serves members from pages keyed by the after cursor.
type FakeMemberLister struct {
	ListGuildMembersFn func(ctx context.Context, guildID, after string, limit int) ([]discord.Member, error)
	calls              []string
}

func (f *FakeMemberLister) ListGuildMembers(ctx context.Context, guildID, after string, limit int) ([]discord.Member, error) {
	f.calls = append(f.calls, after)
	if f.ListGuildMembersFn != nil {
		return f.ListGuildMembersFn(ctx, guildID, after, limit)
	}
	return nil, nil
}

func newTestService(repo userdb.Repository, members MemberLister) *UserService {
	return NewUserService(
		repo,
		members,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
}
