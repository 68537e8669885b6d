package store

import (
	"github.com/leaseflow/leaseflow/internal/domain/billingtemplate"
	"github.com/leaseflow/leaseflow/internal/domain/charge"
	"github.com/leaseflow/leaseflow/internal/domain/lease"
	"github.com/leaseflow/leaseflow/internal/domain/notification"
	"github.com/leaseflow/leaseflow/internal/domain/property"
	"github.com/leaseflow/leaseflow/internal/domain/user"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/postgres"
)

// Repositories bundles every store-backed repository for wiring
type Repositories struct {
	Lease          lease.Repository
	Charge         charge.Repository
	Template       billingtemplate.Repository
	Notification   notification.Repository
	User           user.Repository
	PropertySyncer property.StatusSyncer
}

// NewRepositories constructs all repositories over one client
func NewRepositories(client postgres.IClient, log *logger.Logger) *Repositories {
	return &Repositories{
		Lease:          NewLeaseRepository(client, log),
		Charge:         NewChargeRepository(client, log),
		Template:       NewTemplateRepository(client, log),
		Notification:   NewNotificationRepository(client, log),
		User:           NewUserRepository(client, log),
		PropertySyncer: NewPropertyStatusSyncer(client, log),
	}
}
