package wordlerouter

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	wordleevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/wordle"
)

type stubHandlers struct{}

func (stubHandlers) HandleResultsAnnounced(ctx context.Context, p *wordleevents.ResultsAnnouncedPayloadV1) ([]handlerwrapper.Result, error) {
	return []handlerwrapper.Result{{
		Topic:   wordleevents.ResultsRecordedV1,
		Payload: &wordleevents.ResultsRecordedPayloadV1{MessageID: p.MessageID, Recorded: 2},
	}}, nil
}

func (stubHandlers) HandleScrapeRequested(ctx context.Context, p *wordleevents.ScrapeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return []handlerwrapper.Result{{
		Topic:   wordleevents.ScrapeQueuedV1,
		Payload: &wordleevents.ScrapeQueuedPayloadV1{Since: p.Since, JobID: 1},
	}}, nil
}

func (stubHandlers) HandleHTTPScrape(http.ResponseWriter, *http.Request)     {}
func (stubHandlers) HandleHTTPMemberSync(http.ResponseWriter, *http.Request) {}

func TestWordleRouter_RoutesResultsToReplyTopic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := eventbus.NewInProcess(observability.NoOpLogger)
	defer bus.Close()

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(observability.NoOpLogger))
	require.NoError(t, err)

	wr := NewWordleRouter(observability.NoOpLogger, router, bus, noop.NewTracerProvider().Tracer("test"), observability.NoOpMetrics{})
	require.NoError(t, wr.Configure(ctx, stubHandlers{}))

	recorded, err := bus.Subscribe(ctx, wordleevents.ResultsRecordedV1)
	require.NoError(t, err)

	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	require.NoError(t, eventbus.PublishEvent(ctx, bus, wordleevents.ResultsAnnouncedV1, wordleevents.ResultsAnnouncedPayloadV1{MessageID: "m1"}))

	select {
	case msg := <-recorded:
		msg.Ack()
		var got wordleevents.ResultsRecordedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		require.Equal(t, "m1", got.MessageID)
		require.Equal(t, 2, got.Recorded)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for results recorded event")
	}
}
