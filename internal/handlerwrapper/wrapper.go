package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
)

// Result is one outbound event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTransformingTyped adapts a typed handler into a watermill handler. The
// inbound payload is decoded into T, and every Result becomes an outbound
// message routed by topic metadata. Inbound metadata (Discord channel,
// interaction ids) is propagated so the frontend can correlate replies.
//
// Undecodable payloads are logged and acked; handler errors nack for redelivery.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.OperationMetrics,
	handler func(context.Context, *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))
		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("message.uuid", msg.UUID),
		))
		defer span.End()

		if metrics != nil {
			metrics.RecordOperationAttempt(ctx, handlerName, "handler")
			start := time.Now()
			defer func() {
				metrics.RecordOperationDuration(ctx, handlerName, "handler", time.Since(start))
			}()
		}

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Dropping message with undecodable payload",
				attr.CorrelationIDFromMsg(msg),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			span.SetStatus(codes.Error, "decode failed")
			if metrics != nil {
				metrics.RecordOperationFailure(ctx, handlerName, "handler")
			}
			return nil, nil
		}

		out, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler failed",
				attr.CorrelationIDFromMsg(msg),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if metrics != nil {
				metrics.RecordOperationFailure(ctx, handlerName, "handler")
			}
			return nil, err
		}

		messages := make([]*message.Message, 0, len(out))
		for _, r := range out {
			m, err := toMessage(ctx, msg, r)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			messages = append(messages, m)
		}

		if metrics != nil {
			metrics.RecordOperationSuccess(ctx, handlerName, "handler")
		}
		return messages, nil
	}
}

func toMessage(ctx context.Context, in *message.Message, r Result) (*message.Message, error) {
	if r.Topic == "" {
		return nil, fmt.Errorf("handler result has no topic")
	}

	m, err := eventbus.NewMessage(ctx, r.Topic, r.Payload)
	if err != nil {
		return nil, err
	}

	for k, v := range in.Metadata {
		if k == eventbus.TopicMetadataKey {
			continue
		}
		m.Metadata.Set(k, v)
	}
	for k, v := range r.Metadata {
		m.Metadata.Set(k, v)
	}
	m.Metadata.Set(eventbus.TopicMetadataKey, r.Topic)

	return m, nil
}
