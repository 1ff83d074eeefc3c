package userrouter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	userevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/user"
)

type stubHandlers struct{}

func (stubHandlers) HandleMembersSyncRequested(ctx context.Context, p *userevents.MembersSyncRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if p.GuildID == "" {
		return []handlerwrapper.Result{{
			Topic:   userevents.MembersSyncFailedV1,
			Payload: &userevents.MembersSyncFailedPayloadV1{Reason: "no guild"},
		}}, nil
	}
	return []handlerwrapper.Result{{
		Topic:   userevents.MembersSyncedV1,
		Payload: &userevents.MembersSyncedPayloadV1{GuildID: p.GuildID, Created: 3},
	}}, nil
}

func TestUserRouter_RoutesSyncResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := eventbus.NewInProcess(observability.NoOpLogger)
	defer bus.Close()

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(observability.NoOpLogger))
	require.NoError(t, err)

	ur := NewUserRouter(observability.NoOpLogger, router, bus, noop.NewTracerProvider().Tracer("test"), observability.NoOpMetrics{})
	require.NoError(t, ur.Configure(ctx, stubHandlers{}))

	synced, err := bus.Subscribe(ctx, userevents.MembersSyncedV1)
	require.NoError(t, err)
	failed, err := bus.Subscribe(ctx, userevents.MembersSyncFailedV1)
	require.NoError(t, err)

	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	require.NoError(t, eventbus.PublishEvent(ctx, bus, userevents.MembersSyncRequestedV1, userevents.MembersSyncRequestedPayloadV1{GuildID: "g1"}))
	select {
	case msg := <-synced:
		msg.Ack()
		var got userevents.MembersSyncedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		require.Equal(t, "g1", got.GuildID)
		require.Equal(t, 3, got.Created)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for members synced event")
	}

	require.NoError(t, eventbus.PublishEvent(ctx, bus, userevents.MembersSyncRequestedV1, userevents.MembersSyncRequestedPayloadV1{}))
	select {
	case msg := <-failed:
		msg.Ack()
		var got userevents.MembersSyncFailedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		require.Equal(t, "no guild", got.Reason)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for members sync failed event")
	}
}
