package service

import (
	"context"

	"github.com/leaseflow/leaseflow/internal/domain/notification"
	"github.com/leaseflow/leaseflow/internal/events"
	"github.com/leaseflow/leaseflow/internal/types"
)

// NotificationService persists notifications and hands them to the realtime
// delivery pipeline.
type NotificationService interface {
	// Send persists the notification and publishes a notification.created
	// event. Publish failures are logged, not returned: the persisted row is
	// the source of truth, realtime delivery is best-effort.
	Send(ctx context.Context, n *notification.Notification) error
}

type notificationService struct {
	ServiceParams
}

// NewNotificationService creates a new notification service
func NewNotificationService(params ServiceParams) NotificationService {
	return &notificationService{ServiceParams: params}
}

func (s *notificationService) Send(ctx context.Context, n *notification.Notification) error {
	if n.ID == "" {
		n.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION)
	}
	if n.Status == "" {
		n.BaseModel = types.GetDefaultBaseModel(types.GetUserID(ctx))
	}
	if err := n.Validate(); err != nil {
		return err
	}

	if err := s.NotificationRepo.Create(ctx, n); err != nil {
		return err
	}

	if s.Publisher != nil {
		payload := events.NotificationCreatedPayload{
			NotificationID: n.ID,
			UserID:         n.UserID,
			Type:           n.Type,
			Title:          n.Title,
			Body:           n.Body,
			Link:           n.Link,
			Meta:           n.Meta,
			CreatedAt:      n.CreatedAt,
		}
		if err := s.Publisher.Publish(ctx, events.TopicNotificationCreated, payload); err != nil {
			s.Logger.Errorw("failed to publish notification event",
				"notification_id", n.ID,
				"user_id", n.UserID,
				"error", err,
			)
		}
	}
	return nil
}
