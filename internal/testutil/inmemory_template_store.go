package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/leaseflow/leaseflow/internal/domain/billingtemplate"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// InMemoryTemplateStore implements billingtemplate.Repository
type InMemoryTemplateStore struct {
	*InMemoryStore[*billingtemplate.Template]
}

// NewInMemoryTemplateStore creates a new in-memory template store
func NewInMemoryTemplateStore() *InMemoryTemplateStore {
	return &InMemoryTemplateStore{
		InMemoryStore: NewInMemoryStore[*billingtemplate.Template](),
	}
}

func copyTemplate(t *billingtemplate.Template) *billingtemplate.Template {
	if t == nil {
		return nil
	}
	copied := *t
	if t.AutoGenerateUntil != nil {
		copied.AutoGenerateUntil = lo.ToPtr(*t.AutoGenerateUntil)
	}
	return &copied
}

func (s *InMemoryTemplateStore) Create(ctx context.Context, t *billingtemplate.Template) error {
	if t == nil {
		return ierr.NewError("template cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, t.ID, copyTemplate(t))
}

func (s *InMemoryTemplateStore) Get(ctx context.Context, id string) (*billingtemplate.Template, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("template %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyTemplate(t), nil
}

func (s *InMemoryTemplateStore) Update(ctx context.Context, t *billingtemplate.Template) error {
	if t == nil {
		return ierr.NewError("template cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, t.ID, copyTemplate(t))
}

func (s *InMemoryTemplateStore) ListDueWithin(ctx context.Context, from, to time.Time) ([]*billingtemplate.Template, error) {
	templates := s.InMemoryStore.List(ctx, func(t *billingtemplate.Template) bool {
		if t.Status == types.StatusDeleted || !t.IsActive {
			return false
		}
		due := types.ToDate(t.NextDue)
		return !due.Before(types.ToDate(from)) && !due.After(types.ToDate(to))
	})

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].NextDue.Before(templates[j].NextDue)
	})

	out := make([]*billingtemplate.Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, copyTemplate(t))
	}
	return out, nil
}

func (s *InMemoryTemplateStore) ListByLease(ctx context.Context, leaseID string) ([]*billingtemplate.Template, error) {
	templates := s.InMemoryStore.List(ctx, func(t *billingtemplate.Template) bool {
		return t.Status != types.StatusDeleted && t.LeaseID == leaseID
	})

	out := make([]*billingtemplate.Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, copyTemplate(t))
	}
	return out, nil
}
