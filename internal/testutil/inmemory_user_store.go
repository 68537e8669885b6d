package testutil

import (
	"context"
	"sort"

	"github.com/leaseflow/leaseflow/internal/domain/user"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

// NewInMemoryUserStore creates a new in-memory user store
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

// AddUser seeds a user for tests
func (s *InMemoryUserStore) AddUser(u *user.User) {
	copied := *u
	_ = s.InMemoryStore.Create(context.Background(), u.ID, &copied)
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("user %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (s *InMemoryUserStore) ListAdmins(ctx context.Context) ([]*user.User, error) {
	admins := s.InMemoryStore.List(ctx, func(u *user.User) bool {
		return u.Status != types.StatusDeleted && u.Role == types.UserRoleAdmin
	})

	sort.Slice(admins, func(i, j int) bool {
		return admins[i].ID < admins[j].ID
	})

	out := make([]*user.User, 0, len(admins))
	for _, u := range admins {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}
