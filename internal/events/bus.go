package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	jsoniter "github.com/json-iterator/go"

	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Topics carried on the internal bus
const (
	TopicNotificationCreated = "notification.created"
)

// Publisher is the narrow interface services use to emit events
type Publisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// Bus is an in-process pub/sub used to decouple post-commit side effects
// (realtime notification delivery) from the transactions that caused them.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger *logger.Logger
}

// NewBus creates the in-process event bus
func NewBus(log *logger.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		newWatermillAdapter(log),
	)
	return &Bus{pubSub: pubSub, logger: log}
}

// Publish marshals the payload and emits it on the topic
func (b *Bus) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal event payload").
			WithReportableDetails(map[string]interface{}{"topic": topic}).
			Mark(ierr.ErrInternal)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	if err := b.pubSub.Publish(topic, msg); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to publish event").
			WithReportableDetails(map[string]interface{}{"topic": topic}).
			Mark(ierr.ErrInternal)
	}
	return nil
}

// Subscribe registers a handler for a topic and consumes it on a goroutine
// until ctx is cancelled. Handler errors are logged; consumption continues.
func (b *Bus) Subscribe(ctx context.Context, topic string, handler func(ctx context.Context, payload []byte) error) error {
	messages, err := b.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to subscribe to topic").
			WithReportableDetails(map[string]interface{}{"topic": topic}).
			Mark(ierr.ErrInternal)
	}

	go func() {
		for msg := range messages {
			if err := handler(msg.Context(), msg.Payload); err != nil {
				b.logger.Errorw("event handler failed",
					"topic", topic,
					"message_id", msg.UUID,
					"error", err,
				)
			}
			msg.Ack()
		}
	}()
	return nil
}

// Close shuts the bus down, closing all subscriber channels
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
