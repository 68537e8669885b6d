package billingtemplate

import (
	"context"
	"time"
)

// Repository defines the interface for recurring template persistence
type Repository interface {
	// Create inserts a new template
	Create(ctx context.Context, template *Template) error

	// Get retrieves a template by id
	Get(ctx context.Context, id string) (*Template, error)

	// Update persists changes to an existing template, including NextDue
	// advancement and deactivation in a single write
	Update(ctx context.Context, template *Template) error

	// ListDueWithin retrieves active templates whose NextDue falls within
	// [from, to]
	ListDueWithin(ctx context.Context, from, to time.Time) ([]*Template, error)

	// ListByLease retrieves all templates owned by a lease
	ListByLease(ctx context.Context, leaseID string) ([]*Template, error)
}
