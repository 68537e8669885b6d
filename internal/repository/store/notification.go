package store

import (
	"context"
	"time"

	domainNotification "github.com/leaseflow/leaseflow/internal/domain/notification"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/postgres"
	"github.com/leaseflow/leaseflow/internal/types"
)

type notificationRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(client postgres.IClient, logger *logger.Logger) domainNotification.Repository {
	return &notificationRepository{
		client: client,
		logger: logger,
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domainNotification.Notification) error {
	r.logger.Debugw("creating notification",
		"notification_id", notification.ID,
		"user_id", notification.UserID,
		"type", notification.Type,
	)

	if err := r.client.Querier(ctx).Create(notification).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create notification").
			WithReportableDetails(map[string]interface{}{
				"notification_id": notification.ID,
				"user_id":         notification.UserID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domainNotification.Notification, error) {
	query := r.client.Querier(ctx).
		Where("user_id = ? AND status != ?", userID, types.StatusDeleted).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notifications []*domainNotification.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list notifications").
			Mark(ierr.ErrDatabase)
	}
	return notifications, nil
}

// ExistsWithMeta loads the recipient's notifications created since the given
// time and matches meta pairs in memory. The meta column is serialized JSON,
// so matching in Go keeps the query portable across postgres and sqlite; the
// candidate set is bounded by the since cutoff (one day for reminder dedup).
func (r *notificationRepository) ExistsWithMeta(ctx context.Context, userID string, meta map[string]string, since time.Time) (bool, error) {
	var notifications []*domainNotification.Notification
	err := r.client.Querier(ctx).
		Where("user_id = ? AND created_at >= ? AND status != ?", userID, since, types.StatusDeleted).
		Find(&notifications).Error
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check for existing notification").
			WithReportableDetails(map[string]interface{}{"user_id": userID}).
			Mark(ierr.ErrDatabase)
	}

	for _, n := range notifications {
		if n.MetaMatches(meta) {
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	result := r.client.Querier(ctx).
		Model(&domainNotification.Notification{}).
		Where("id = ? AND status != ?", id, types.StatusDeleted).
		Update("is_read", true)
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to mark notification read").
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewErrorf("notification %s not found", id).
			WithHint("Notification not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
