package charge

import (
	"context"
	"time"

	"github.com/leaseflow/leaseflow/internal/types"
)

// Repository defines the interface for charge persistence operations
type Repository interface {
	// Create inserts a new charge
	Create(ctx context.Context, charge *Charge) error

	// Get retrieves a charge by id
	Get(ctx context.Context, id string) (*Charge, error)

	// Update persists changes to an existing charge
	Update(ctx context.Context, charge *Charge) error

	// List retrieves charges matching the filter
	List(ctx context.Context, filter *Filter) ([]*Charge, error)

	// ExistsForTemplateAndDueDate reports whether a charge spawned by the
	// template with the given due date already exists. This is the
	// idempotency guard for the recurring charge scheduler.
	ExistsForTemplateAndDueDate(ctx context.Context, templateID string, dueDate time.Time) (bool, error)

	// ListOutstanding retrieves all charges with status Unpaid or
	// Partially Paid
	ListOutstanding(ctx context.Context) ([]*Charge, error)
}

// Filter defines structured query parameters for listing charges
type Filter struct {
	*types.QueryFilter

	ChargeIDs   []string             `json:"charge_ids,omitempty" form:"charge_ids"`
	LeaseIDs    []string             `json:"lease_ids,omitempty" form:"lease_ids"`
	TemplateIDs []string             `json:"template_ids,omitempty" form:"template_ids"`
	Statuses    []types.ChargeStatus `json:"statuses,omitempty" form:"statuses"`
	ChargeTypes []types.ChargeType   `json:"charge_types,omitempty" form:"charge_types"`
	DueBefore   *time.Time           `json:"due_before,omitempty" form:"due_before"`
	DueAfter    *time.Time           `json:"due_after,omitempty" form:"due_after"`
}

// NewFilter creates a charge filter with default pagination
func NewFilter() *Filter {
	return &Filter{QueryFilter: types.NewDefaultQueryFilter()}
}

// Validate validates the filter
func (f *Filter) Validate() error {
	if f.QueryFilter == nil {
		f.QueryFilter = types.NewDefaultQueryFilter()
	}
	return f.QueryFilter.Validate()
}
