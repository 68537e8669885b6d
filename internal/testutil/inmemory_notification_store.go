package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/leaseflow/leaseflow/internal/domain/notification"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// InMemoryNotificationStore implements notification.Repository
type InMemoryNotificationStore struct {
	*InMemoryStore[*notification.Notification]
}

// NewInMemoryNotificationStore creates a new in-memory notification store
func NewInMemoryNotificationStore() *InMemoryNotificationStore {
	return &InMemoryNotificationStore{
		InMemoryStore: NewInMemoryStore[*notification.Notification](),
	}
}

func copyNotification(n *notification.Notification) *notification.Notification {
	if n == nil {
		return nil
	}
	copied := *n
	copied.Meta = lo.Assign(map[string]string{}, n.Meta)
	return &copied
}

func (s *InMemoryNotificationStore) Create(ctx context.Context, n *notification.Notification) error {
	if n == nil {
		return ierr.NewError("notification cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, n.ID, copyNotification(n))
}

func (s *InMemoryNotificationStore) ListByUser(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	notifications := s.InMemoryStore.List(ctx, func(n *notification.Notification) bool {
		return n.Status != types.StatusDeleted && n.UserID == userID
	})

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}

	out := make([]*notification.Notification, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, copyNotification(n))
	}
	return out, nil
}

func (s *InMemoryNotificationStore) ExistsWithMeta(ctx context.Context, userID string, meta map[string]string, since time.Time) (bool, error) {
	matches := s.InMemoryStore.List(ctx, func(n *notification.Notification) bool {
		return n.Status != types.StatusDeleted &&
			n.UserID == userID &&
			!n.CreatedAt.Before(since) &&
			n.MetaMatches(meta)
	})
	return len(matches) > 0, nil
}

func (s *InMemoryNotificationStore) MarkRead(ctx context.Context, id string) error {
	n, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewErrorf("notification %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	updated := copyNotification(n)
	updated.IsRead = true
	return s.InMemoryStore.Update(ctx, id, updated)
}
