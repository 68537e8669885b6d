package postgres

import (
	"context"

	"github.com/leaseflow/leaseflow/internal/domain/billingtemplate"
	"github.com/leaseflow/leaseflow/internal/domain/charge"
	"github.com/leaseflow/leaseflow/internal/domain/lease"
	"github.com/leaseflow/leaseflow/internal/domain/notification"
	"github.com/leaseflow/leaseflow/internal/domain/property"
	"github.com/leaseflow/leaseflow/internal/domain/user"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
)

// Migrate creates or updates the schema for every entity the core owns.
// On postgres it additionally installs the partial unique index that backs
// the one-active-or-pending-lease-per-property invariant; the recurring
// duplicate guard index ships as gorm tags on the charge model.
func (c *Client) Migrate(ctx context.Context) error {
	db := c.Querier(ctx)

	if err := db.AutoMigrate(
		&lease.Lease{},
		&lease.Contract{},
		&lease.Termination{},
		&lease.Renewal{},
		&charge.Charge{},
		&billingtemplate.Template{},
		&notification.Notification{},
		&property.Property{},
		&user.User{},
	); err != nil {
		return ierr.WithError(err).
			WithHint("Schema migration failed").
			Mark(ierr.ErrDatabase)
	}

	if db.Dialector.Name() == "postgres" {
		// Partial unique indexes cannot be expressed as gorm tags
		if err := db.Exec(`
			CREATE UNIQUE INDEX IF NOT EXISTS ux_leases_property_occupying
			ON leases (property_id)
			WHERE lease_status IN ('ACTIVE', 'PENDING') AND status != 'deleted'
		`).Error; err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create lease occupancy index").
				Mark(ierr.ErrDatabase)
		}
	}

	c.logger.Infow("schema migration complete")
	return nil
}
