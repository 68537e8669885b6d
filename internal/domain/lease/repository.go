package lease

import (
	"context"

	"github.com/leaseflow/leaseflow/internal/types"
)

// Repository defines the interface for lease persistence operations
type Repository interface {
	// Create inserts a new lease
	Create(ctx context.Context, lease *Lease) error

	// Get retrieves a lease by id
	Get(ctx context.Context, id string) (*Lease, error)

	// Update persists changes to an existing lease
	Update(ctx context.Context, lease *Lease) error

	// List retrieves leases matching the filter
	List(ctx context.Context, filter *Filter) ([]*Lease, error)

	// ExistsActiveOrPendingForProperty reports whether a lease with status
	// ACTIVE or PENDING exists for the property, excluding the given lease
	// id. When called inside a transaction the matching rows are locked so
	// concurrent creates against the same property serialize.
	ExistsActiveOrPendingForProperty(ctx context.Context, propertyID, excludeLeaseID string) (bool, error)

	// CreateContract inserts the contract record backing a lease
	CreateContract(ctx context.Context, contract *Contract) error

	// CreateTermination inserts the termination record for a lease
	CreateTermination(ctx context.Context, termination *Termination) error

	// GetTermination retrieves the termination record for a lease
	GetTermination(ctx context.Context, leaseID string) (*Termination, error)

	// CreateRenewal appends a renewal audit record
	CreateRenewal(ctx context.Context, renewal *Renewal) error

	// ListRenewals retrieves the renewal history of a lease, oldest first
	ListRenewals(ctx context.Context, leaseID string) ([]*Renewal, error)
}

// Filter defines structured query parameters for listing leases
type Filter struct {
	*types.QueryFilter

	LeaseIDs    []string            `json:"lease_ids,omitempty" form:"lease_ids"`
	TenantIDs   []string            `json:"tenant_ids,omitempty" form:"tenant_ids"`
	PropertyIDs []string            `json:"property_ids,omitempty" form:"property_ids"`
	Statuses    []types.LeaseStatus `json:"statuses,omitempty" form:"statuses"`
}

// NewFilter creates a lease filter with default pagination
func NewFilter() *Filter {
	return &Filter{QueryFilter: types.NewDefaultQueryFilter()}
}

// Validate validates the filter
func (f *Filter) Validate() error {
	if f.QueryFilter == nil {
		f.QueryFilter = types.NewDefaultQueryFilter()
	}
	for _, s := range f.Statuses {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return f.QueryFilter.Validate()
}
