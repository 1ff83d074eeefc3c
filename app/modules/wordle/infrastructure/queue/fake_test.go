package wordlequeue

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
)

type FakeScraper struct {
	ScrapeChannelFn func(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error)
	Requests        []wordleservice.ScrapeRequest
}

func (f *FakeScraper) ScrapeChannel(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error) {
	f.Requests = append(f.Requests, req)
	return f.ScrapeChannelFn(ctx, req)
}

type FakeMemberSyncer struct {
	SyncMembersFn func(ctx context.Context, guildID string) (userservice.SyncMembersResult, error)
}

func (f *FakeMemberSyncer) SyncMembers(ctx context.Context, guildID string) (userservice.SyncMembersResult, error) {
	return f.SyncMembersFn(ctx, guildID)
}

// FakePublisher records everything published to it.
type FakePublisher struct {
	mu       sync.Mutex
	Err      error
	Messages map[string][]*message.Message
}

func (f *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if f.Messages == nil {
		f.Messages = map[string][]*message.Message{}
	}
	f.Messages[topic] = append(f.Messages[topic], msgs...)
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func decodeOnly[T any](t *testing.T, pub *FakePublisher, topic string) T {
	t.Helper()
	msgs := pub.Messages[topic]
	require.Len(t, msgs, 1, "messages on %s", topic)
	var out T
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &out))
	return out
}
