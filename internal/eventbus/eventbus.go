package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"

	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
)

const (
	// TopicMetadataKey carries the destination topic for messages published
	// with an empty topic, which is how router handlers route their results.
	TopicMetadataKey = "topic"

	// StreamName is the JetStream stream holding every wordle.* subject.
	StreamName    = "WORDLE"
	streamSubject = "wordle.>"
)

var ErrMissingTopic = errors.New("eventbus: message has no topic metadata")

// EventBus is the publisher/subscriber pair the module routers run on.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	conn       *nc.Conn
	logger     *slog.Logger
}

var _ EventBus = (*bus)(nil)

// NewEventBus connects to NATS JetStream. An empty URL returns an in-process
// bus backed by a watermill Go channel.
func NewEventBus(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger, serviceName string) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if cfg.URL == "" {
		logger.WarnContext(ctx, "NATS URL not configured, using in-process event bus")
		return NewInProcess(logger), nil
	}

	options := []nc.Option{
		nc.Name(serviceName),
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription",
					attr.Error(err),
					attr.String("subject", s.Subject),
					attr.String("queue", s.Queue),
				)
			} else {
				logger.Error("Error in connection", attr.Error(err))
			}
		}),
	}

	if cfg.NKeySeed != "" {
		opt, err := nkeyOption(cfg.NKeySeed)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}

	conn, err := nc.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	if err := ensureStream(conn, logger); err != nil {
		conn.Close()
		return nil, err
	}

	jsConfig := wmnats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: false,
		DurablePrefix: serviceName,
		DurableCalculator: func(prefix, topic string) string {
			return durableName(prefix, topic)
		},
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:         cfg.URL,
			NatsOptions: options,
			Marshaler:   &wmnats.NATSMarshaler{},
			JetStream:   jsConfig,
		},
		wmLogger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:              cfg.URL,
			SubscribersCount: 1,
			AckWaitTimeout:   30 * time.Second,
			CloseTimeout:     10 * time.Second,
			NatsOptions:      options,
			Unmarshaler:      &wmnats.NATSMarshaler{},
			JetStream:        jsConfig,
		},
		wmLogger,
	)
	if err != nil {
		_ = publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Connected to NATS JetStream", attr.String("url", cfg.URL))

	return &bus{
		publisher:  publisher,
		subscriber: subscriber,
		conn:       conn,
		logger:     logger,
	}, nil
}

// NewInProcess returns a bus that never leaves the process.
func NewInProcess(logger *slog.Logger) EventBus {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return &bus{publisher: pubSub, subscriber: pubSub, logger: logger}
}

func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(strings.TrimSpace(seed)))
	if err != nil {
		return nil, fmt.Errorf("invalid NATS nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive NATS nkey public key: %w", err)
	}
	return nc.Nkey(pub, func(nonce []byte) ([]byte, error) {
		return kp.Sign(nonce)
	}), nil
}

func ensureStream(conn *nc.Conn, logger *slog.Logger) error {
	js, err := conn.JetStream()
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	info, err := js.StreamInfo(StreamName)
	if err != nil && !errors.Is(err, nc.ErrStreamNotFound) {
		return fmt.Errorf("failed to get stream info: %w", err)
	}
	if info != nil {
		return nil
	}

	_, err = js.AddStream(&nc.StreamConfig{
		Name:     StreamName,
		Subjects: []string{streamSubject},
		MaxAge:   7 * 24 * time.Hour,
	})
	if err != nil && !errors.Is(err, nc.ErrStreamNameAlreadyInUse) {
		return fmt.Errorf("failed to add stream: %w", err)
	}

	logger.Info("Stream created", attr.String("stream", StreamName))
	return nil
}

// durableName builds a consumer name valid for JetStream (no dots).
func durableName(prefix, topic string) string {
	return prefix + "-" + strings.NewReplacer(".", "_", "*", "_", ">", "_").Replace(topic)
}

// Publish sends messages to topic. With an empty topic each message is routed
// by its TopicMetadataKey.
func (b *bus) Publish(topic string, messages ...*message.Message) error {
	if topic != "" {
		return b.publisher.Publish(topic, messages...)
	}

	for _, msg := range messages {
		t := msg.Metadata.Get(TopicMetadataKey)
		if t == "" {
			return fmt.Errorf("%w (uuid %s)", ErrMissingTopic, msg.UUID)
		}
		if err := b.publisher.Publish(t, msg); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", t, err)
		}
	}
	return nil
}

func (b *bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

func (b *bus) Close() error {
	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	// The in-process bus uses one value for both sides.
	if closer, ok := b.subscriber.(message.Publisher); !ok || closer != b.publisher {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.conn != nil {
		b.conn.Close()
	}
	return errors.Join(errs...)
}
