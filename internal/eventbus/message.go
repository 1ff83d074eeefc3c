package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"

	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
)

// NewMessage marshals payload to JSON and addresses it to topic. The
// correlation id on ctx is carried over, or a fresh one is minted.
func NewMessage(ctx context.Context, topic string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(uuid.NewString(), body)
	msg.Metadata.Set(TopicMetadataKey, topic)

	correlationID := attr.CorrelationID(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	middleware.SetCorrelationID(correlationID, msg)
	msg.SetContext(ctx)

	return msg, nil
}

// PublishEvent is a convenience for code outside a router handler.
func PublishEvent(ctx context.Context, pub message.Publisher, topic string, payload any) error {
	msg, err := NewMessage(ctx, topic, payload)
	if err != nil {
		return err
	}
	return pub.Publish(topic, msg)
}
