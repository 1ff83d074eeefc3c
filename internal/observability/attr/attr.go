// Package attr provides slog attribute helpers shared across modules.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type correlationKey struct{}

// WithCorrelationID stores a correlation id on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the correlation id stored on ctx, if any.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

func String(key, value string) slog.Attr             { return slog.String(key, value) }
func Int(key string, value int) slog.Attr            { return slog.Int(key, value) }
func Int64(key string, value int64) slog.Attr        { return slog.Int64(key, value) }
func Float64(key string, value float64) slog.Attr    { return slog.Float64(key, value) }
func Bool(key string, value bool) slog.Attr          { return slog.Bool(key, value) }
func Any(key string, value any) slog.Attr            { return slog.Any(key, value) }
func Time(key string, value time.Time) slog.Attr     { return slog.Time(key, value) }
func Duration(key string, d time.Duration) slog.Attr { return slog.Duration(key, d) }

// Error renders err under the "error" key. A nil error renders as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func UserID(id string) slog.Attr    { return slog.String("user_id", id) }
func ChannelID(id string) slog.Attr { return slog.String("channel_id", id) }
func MessageID(id string) slog.Attr { return slog.String("message_id", id) }
func Window(w string) slog.Attr     { return slog.String("window", w) }

// Date renders a calendar date without its time component.
func Date(key string, t time.Time) slog.Attr {
	return slog.String(key, t.Format(time.DateOnly))
}

// ExtractCorrelationID reads the correlation id from the context.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationID(ctx))
}

// CorrelationIDFromMsg reads the correlation id watermill stored on the message.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", middleware.MessageCorrelationID(msg))
}
