package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/leaseflow/leaseflow/internal/domain/lease"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// InMemoryLeaseStore implements lease.Repository
type InMemoryLeaseStore struct {
	*InMemoryStore[*lease.Lease]

	mu           sync.RWMutex
	contracts    map[string]*lease.Contract
	terminations map[string]*lease.Termination
	renewals     []*lease.Renewal
}

// NewInMemoryLeaseStore creates a new in-memory lease store
func NewInMemoryLeaseStore() *InMemoryLeaseStore {
	return &InMemoryLeaseStore{
		InMemoryStore: NewInMemoryStore[*lease.Lease](),
		contracts:     make(map[string]*lease.Contract),
		terminations:  make(map[string]*lease.Termination),
	}
}

func copyLease(l *lease.Lease) *lease.Lease {
	if l == nil {
		return nil
	}
	copied := *l
	if l.ParentLeaseID != nil {
		copied.ParentLeaseID = lo.ToPtr(*l.ParentLeaseID)
	}
	if l.ContractID != nil {
		copied.ContractID = lo.ToPtr(*l.ContractID)
	}
	return &copied
}

func (s *InMemoryLeaseStore) Create(ctx context.Context, l *lease.Lease) error {
	if l == nil {
		return ierr.NewError("lease cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, l.ID, copyLease(l))
}

func (s *InMemoryLeaseStore) Get(ctx context.Context, id string) (*lease.Lease, error) {
	l, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("lease %s not found", id).
			WithHint("Lease not found").
			Mark(ierr.ErrNotFound)
	}
	return copyLease(l), nil
}

func (s *InMemoryLeaseStore) Update(ctx context.Context, l *lease.Lease) error {
	if l == nil {
		return ierr.NewError("lease cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, l.ID, copyLease(l))
}

func (s *InMemoryLeaseStore) List(ctx context.Context, filter *lease.Filter) ([]*lease.Lease, error) {
	if filter == nil {
		filter = lease.NewFilter()
	}

	leases := s.InMemoryStore.List(ctx, func(l *lease.Lease) bool {
		if l.Status == types.StatusDeleted {
			return false
		}
		if len(filter.LeaseIDs) > 0 && !lo.Contains(filter.LeaseIDs, l.ID) {
			return false
		}
		if len(filter.TenantIDs) > 0 && !lo.Contains(filter.TenantIDs, l.TenantID) {
			return false
		}
		if len(filter.PropertyIDs) > 0 && !lo.Contains(filter.PropertyIDs, l.PropertyID) {
			return false
		}
		if len(filter.Statuses) > 0 && !lo.Contains(filter.Statuses, l.LeaseStatus) {
			return false
		}
		return true
	})

	sort.Slice(leases, func(i, j int) bool {
		return leases[i].CreatedAt.After(leases[j].CreatedAt)
	})

	out := make([]*lease.Lease, 0, len(leases))
	for _, l := range leases {
		out = append(out, copyLease(l))
	}
	return out, nil
}

func (s *InMemoryLeaseStore) ExistsActiveOrPendingForProperty(ctx context.Context, propertyID, excludeLeaseID string) (bool, error) {
	matches := s.InMemoryStore.List(ctx, func(l *lease.Lease) bool {
		return l.Status != types.StatusDeleted &&
			l.PropertyID == propertyID &&
			l.LeaseStatus.OccupiesProperty() &&
			l.ID != excludeLeaseID
	})
	return len(matches) > 0, nil
}

func (s *InMemoryLeaseStore) CreateContract(ctx context.Context, contract *lease.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contracts[contract.ID]; ok {
		return ierr.NewErrorf("contract %s already exists", contract.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	copied := *contract
	s.contracts[contract.ID] = &copied
	return nil
}

func (s *InMemoryLeaseStore) CreateTermination(ctx context.Context, termination *lease.Termination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.terminations[termination.LeaseID]; ok {
		return ierr.NewErrorf("lease %s already has a termination record", termination.LeaseID).
			WithHint("This lease has already been terminated").
			Mark(ierr.ErrAlreadyExists)
	}
	copied := *termination
	s.terminations[termination.LeaseID] = &copied
	return nil
}

func (s *InMemoryLeaseStore) GetTermination(ctx context.Context, leaseID string) (*lease.Termination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	termination, ok := s.terminations[leaseID]
	if !ok {
		return nil, ierr.NewErrorf("termination for lease %s not found", leaseID).
			Mark(ierr.ErrNotFound)
	}
	copied := *termination
	return &copied, nil
}

func (s *InMemoryLeaseStore) CreateRenewal(ctx context.Context, renewal *lease.Renewal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *renewal
	s.renewals = append(s.renewals, &copied)
	return nil
}

func (s *InMemoryLeaseStore) ListRenewals(ctx context.Context, leaseID string) ([]*lease.Renewal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*lease.Renewal, 0)
	for _, r := range s.renewals {
		if r.LeaseID == leaseID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}
