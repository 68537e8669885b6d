package service

import (
	"github.com/leaseflow/leaseflow/internal/cache"
	"github.com/leaseflow/leaseflow/internal/config"
	"github.com/leaseflow/leaseflow/internal/domain/billingtemplate"
	"github.com/leaseflow/leaseflow/internal/domain/charge"
	"github.com/leaseflow/leaseflow/internal/domain/lease"
	"github.com/leaseflow/leaseflow/internal/domain/notification"
	"github.com/leaseflow/leaseflow/internal/domain/property"
	"github.com/leaseflow/leaseflow/internal/domain/user"
	"github.com/leaseflow/leaseflow/internal/events"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/postgres"
)

// ServiceParams bundles the dependencies every service draws from. Services
// embed it so constructors stay uniform and wiring stays in one place.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache

	Publisher events.Publisher

	LeaseRepo        lease.Repository
	ChargeRepo       charge.Repository
	TemplateRepo     billingtemplate.Repository
	NotificationRepo notification.Repository
	UserRepo         user.Repository
	PropertySyncer   property.StatusSyncer
}
