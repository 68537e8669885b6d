package events

import (
	"time"

	"github.com/leaseflow/leaseflow/internal/types"
)

// NotificationCreatedPayload is emitted after a notification row is
// persisted, for realtime delivery to a connected recipient.
type NotificationCreatedPayload struct {
	NotificationID string                 `json:"notification_id"`
	UserID         string                 `json:"user_id"`
	Type           types.NotificationType `json:"type"`
	Title          string                 `json:"title"`
	Body           string                 `json:"body"`
	Link           string                 `json:"link,omitempty"`
	Meta           map[string]string      `json:"meta,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}
