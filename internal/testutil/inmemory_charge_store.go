package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/leaseflow/leaseflow/internal/domain/charge"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// InMemoryChargeStore implements charge.Repository, including the
// (template_id, due_date) uniqueness the real store gets from its index.
type InMemoryChargeStore struct {
	*InMemoryStore[*charge.Charge]
}

// NewInMemoryChargeStore creates a new in-memory charge store
func NewInMemoryChargeStore() *InMemoryChargeStore {
	return &InMemoryChargeStore{
		InMemoryStore: NewInMemoryStore[*charge.Charge](),
	}
}

func copyCharge(c *charge.Charge) *charge.Charge {
	if c == nil {
		return nil
	}
	copied := *c
	if c.TemplateID != nil {
		copied.TemplateID = lo.ToPtr(*c.TemplateID)
	}
	return &copied
}

func (s *InMemoryChargeStore) Create(ctx context.Context, c *charge.Charge) error {
	if c == nil {
		return ierr.NewError("charge cannot be nil").
			Mark(ierr.ErrValidation)
	}

	if c.TemplateID != nil {
		exists, _ := s.ExistsForTemplateAndDueDate(ctx, *c.TemplateID, c.DueDate)
		if exists {
			return ierr.NewErrorf("charge for template %s due %s already exists",
				*c.TemplateID, c.DueDate.Format(types.DateFormat)).
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCharge(c))
}

func (s *InMemoryChargeStore) Get(ctx context.Context, id string) (*charge.Charge, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("charge %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCharge(c), nil
}

func (s *InMemoryChargeStore) Update(ctx context.Context, c *charge.Charge) error {
	if c == nil {
		return ierr.NewError("charge cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCharge(c))
}

func (s *InMemoryChargeStore) List(ctx context.Context, filter *charge.Filter) ([]*charge.Charge, error) {
	if filter == nil {
		filter = charge.NewFilter()
	}

	charges := s.InMemoryStore.List(ctx, func(c *charge.Charge) bool {
		if c.Status == types.StatusDeleted {
			return false
		}
		if len(filter.ChargeIDs) > 0 && !lo.Contains(filter.ChargeIDs, c.ID) {
			return false
		}
		if len(filter.LeaseIDs) > 0 && !lo.Contains(filter.LeaseIDs, c.LeaseID) {
			return false
		}
		if len(filter.TemplateIDs) > 0 {
			if c.TemplateID == nil || !lo.Contains(filter.TemplateIDs, *c.TemplateID) {
				return false
			}
		}
		if len(filter.Statuses) > 0 && !lo.Contains(filter.Statuses, c.ChargeStatus) {
			return false
		}
		if len(filter.ChargeTypes) > 0 && !lo.Contains(filter.ChargeTypes, c.ChargeType) {
			return false
		}
		if filter.DueBefore != nil && !c.DueDate.Before(*filter.DueBefore) {
			return false
		}
		if filter.DueAfter != nil && !c.DueDate.After(*filter.DueAfter) {
			return false
		}
		return true
	})

	sort.Slice(charges, func(i, j int) bool {
		return charges[i].DueDate.Before(charges[j].DueDate)
	})

	out := make([]*charge.Charge, 0, len(charges))
	for _, c := range charges {
		out = append(out, copyCharge(c))
	}
	return out, nil
}

func (s *InMemoryChargeStore) ExistsForTemplateAndDueDate(ctx context.Context, templateID string, dueDate time.Time) (bool, error) {
	due := types.ToDate(dueDate)
	matches := s.InMemoryStore.List(ctx, func(c *charge.Charge) bool {
		return c.Status != types.StatusDeleted &&
			c.TemplateID != nil && *c.TemplateID == templateID &&
			types.ToDate(c.DueDate).Equal(due)
	})
	return len(matches) > 0, nil
}

func (s *InMemoryChargeStore) ListOutstanding(ctx context.Context) ([]*charge.Charge, error) {
	charges := s.InMemoryStore.List(ctx, func(c *charge.Charge) bool {
		return c.Status != types.StatusDeleted && c.ChargeStatus.IsOutstanding()
	})

	sort.Slice(charges, func(i, j int) bool {
		return charges[i].DueDate.Before(charges[j].DueDate)
	})

	out := make([]*charge.Charge, 0, len(charges))
	for _, c := range charges {
		out = append(out, copyCharge(c))
	}
	return out, nil
}
