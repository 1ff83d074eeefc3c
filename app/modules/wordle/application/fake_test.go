package wordleservice

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordlecheckpoint "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/checkpoint"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"go.opentelemetry.io/otel/trace/noop"
)

const testAppID = "1211781489931452447"

// FakeResolver resolves ids to themselves and names through a fixed table.
type FakeResolver struct {
	Names             map[string]string
	ResolveIdentityFn func(ctx context.Context, token wordledomain.IdentityToken) (userservice.Resolution, error)
}

func (f *FakeResolver) ResolveIdentity(ctx context.Context, token wordledomain.IdentityToken) (userservice.Resolution, error) {
	if f.ResolveIdentityFn != nil {
		return f.ResolveIdentityFn(ctx, token)
	}
	if token.UserID != "" {
		return userservice.Resolution{Kind: userservice.ResolvedByID, User: &userdb.User{UserID: token.UserID}}, nil
	}
	if id, ok := f.Names[token.Name]; ok {
		return userservice.Resolution{Kind: userservice.ResolvedByName, User: &userdb.User{UserID: id}}, nil
	}
	return userservice.Resolution{Kind: userservice.Unresolved, Reason: "unknown"}, nil
}

// FakeChannel serves history pages by before cursor and records sent messages.
type FakeChannel struct {
	mu      sync.Mutex
	Pages   map[string][]discord.Message
	Err     error
	Sent    []discord.OutgoingMessage
	Befores []string
}

func (f *FakeChannel) ListChannelMessages(ctx context.Context, channelID, before string, limit int) ([]discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Befores = append(f.Befores, before)
	if f.Err != nil {
		return nil, f.Err
	}
	page := f.Pages[before]
	if len(page) > limit {
		page = page[:limit]
	}
	return page, nil
}

func (f *FakeChannel) CreateMessage(ctx context.Context, channelID string, msg discord.OutgoingMessage) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, msg)
	return &discord.Message{ID: "reply", ChannelID: channelID}, nil
}

func newTestService(repo wordledb.Repository, resolver IdentityResolver, ch ChannelClient, cps wordlecheckpoint.Store, opts Options) *WordleService {
	if opts.WordleAppID == "" {
		opts.WordleAppID = testAppID
	}
	svc := NewWordleService(
		repo,
		resolver,
		ch,
		cps,
		opts,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
	svc.now = func() time.Time { return time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC) }
	return svc
}

func announcement(id string, at time.Time, lines string) discord.Message {
	return discord.Message{
		ID:        id,
		ChannelID: "chan",
		Author:    discord.User{ID: testAppID, Username: "Wordle", Bot: true},
		Content:   "Your group is on a 3 day streak! Here are yesterday's results:\n" + lines,
		Timestamp: at,
	}
}

func chatter(id string, at time.Time) discord.Message {
	return discord.Message{ID: id, ChannelID: "chan", Author: discord.User{ID: "555", Username: "someone"}, Content: "3/6: <@555> lol", Timestamp: at}
}
