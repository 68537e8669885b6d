package notification

import (
	"context"
	"time"
)

// Repository defines the interface for notification persistence
type Repository interface {
	// Create inserts a new notification
	Create(ctx context.Context, notification *Notification) error

	// ListByUser retrieves notifications for a recipient, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*Notification, error)

	// ExistsWithMeta reports whether a notification created at or after
	// since exists for the recipient whose meta contains every given
	// key/value pair. Used for same-day reminder deduplication.
	ExistsWithMeta(ctx context.Context, userID string, meta map[string]string, since time.Time) (bool, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id string) error
}
