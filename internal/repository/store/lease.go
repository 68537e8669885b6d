package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainLease "github.com/leaseflow/leaseflow/internal/domain/lease"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/postgres"
	"github.com/leaseflow/leaseflow/internal/types"
)

type leaseRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewLeaseRepository creates a new lease repository
func NewLeaseRepository(client postgres.IClient, logger *logger.Logger) domainLease.Repository {
	return &leaseRepository{
		client: client,
		logger: logger,
	}
}

func (r *leaseRepository) Create(ctx context.Context, lease *domainLease.Lease) error {
	r.logger.Debugw("creating lease", "lease_id", lease.ID, "property_id", lease.PropertyID)

	if err := r.client.Querier(ctx).Create(lease).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHint("An active or pending lease already exists for this property").
				WithReportableDetails(map[string]interface{}{
					"lease_id":    lease.ID,
					"property_id": lease.PropertyID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create lease").
			WithReportableDetails(map[string]interface{}{"lease_id": lease.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *leaseRepository) Get(ctx context.Context, id string) (*domainLease.Lease, error) {
	var lease domainLease.Lease
	err := r.client.Querier(ctx).
		Where("id = ? AND status != ?", id, types.StatusDeleted).
		First(&lease).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("lease %s not found", id).
				WithHint("Lease not found").
				WithReportableDetails(map[string]interface{}{"lease_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get lease").
			WithReportableDetails(map[string]interface{}{"lease_id": id}).
			Mark(ierr.ErrDatabase)
	}
	return &lease, nil
}

func (r *leaseRepository) Update(ctx context.Context, lease *domainLease.Lease) error {
	r.logger.Debugw("updating lease", "lease_id", lease.ID, "lease_status", lease.LeaseStatus)

	result := r.client.Querier(ctx).
		Model(&domainLease.Lease{}).
		Where("id = ? AND status != ?", lease.ID, types.StatusDeleted).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(lease)
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update lease").
			WithReportableDetails(map[string]interface{}{"lease_id": lease.ID}).
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewErrorf("lease %s not found", lease.ID).
			WithHint("Lease not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *leaseRepository) List(ctx context.Context, filter *domainLease.Filter) ([]*domainLease.Lease, error) {
	if filter == nil {
		filter = domainLease.NewFilter()
	}

	query := r.client.Querier(ctx).
		Model(&domainLease.Lease{}).
		Where("status != ?", types.StatusDeleted)

	if len(filter.LeaseIDs) > 0 {
		query = query.Where("id IN ?", filter.LeaseIDs)
	}
	if len(filter.TenantIDs) > 0 {
		query = query.Where("tenant_id IN ?", filter.TenantIDs)
	}
	if len(filter.PropertyIDs) > 0 {
		query = query.Where("property_id IN ?", filter.PropertyIDs)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("lease_status IN ?", filter.Statuses)
	}

	query = applyQueryFilter(query, filter.QueryFilter)

	var leases []*domainLease.Lease
	if err := query.Find(&leases).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list leases").
			Mark(ierr.ErrDatabase)
	}
	return leases, nil
}

func (r *leaseRepository) ExistsActiveOrPendingForProperty(ctx context.Context, propertyID, excludeLeaseID string) (bool, error) {
	query := r.client.Querier(ctx).
		Model(&domainLease.Lease{}).
		Where("property_id = ? AND lease_status IN ? AND status != ?",
			propertyID,
			[]types.LeaseStatus{types.LeaseStatusActive, types.LeaseStatusPending},
			types.StatusDeleted,
		)
	if excludeLeaseID != "" {
		query = query.Where("id != ?", excludeLeaseID)
	}

	// Lock matching rows so concurrent creates against the same property
	// serialize on the existence check
	if query.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var leases []*domainLease.Lease
	if err := query.Limit(1).Find(&leases).Error; err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check for existing lease").
			WithReportableDetails(map[string]interface{}{"property_id": propertyID}).
			Mark(ierr.ErrDatabase)
	}
	return len(leases) > 0, nil
}

func (r *leaseRepository) CreateContract(ctx context.Context, contract *domainLease.Contract) error {
	r.logger.Debugw("creating lease contract", "lease_id", contract.LeaseID, "contract_id", contract.ID)

	if err := r.client.Querier(ctx).Create(contract).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create contract record").
			WithReportableDetails(map[string]interface{}{"lease_id": contract.LeaseID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *leaseRepository) CreateTermination(ctx context.Context, termination *domainLease.Termination) error {
	r.logger.Debugw("creating lease termination", "lease_id", termination.LeaseID, "reason", termination.Reason)

	if err := r.client.Querier(ctx).Create(termination).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHint("This lease has already been terminated").
				WithReportableDetails(map[string]interface{}{"lease_id": termination.LeaseID}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create termination record").
			WithReportableDetails(map[string]interface{}{"lease_id": termination.LeaseID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *leaseRepository) GetTermination(ctx context.Context, leaseID string) (*domainLease.Termination, error) {
	var termination domainLease.Termination
	err := r.client.Querier(ctx).
		Where("lease_id = ? AND status != ?", leaseID, types.StatusDeleted).
		First(&termination).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("termination for lease %s not found", leaseID).
				WithHint("Termination record not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get termination record").
			Mark(ierr.ErrDatabase)
	}
	return &termination, nil
}

func (r *leaseRepository) CreateRenewal(ctx context.Context, renewal *domainLease.Renewal) error {
	r.logger.Debugw("creating lease renewal", "lease_id", renewal.LeaseID, "new_rent", renewal.NewRent)

	if err := r.client.Querier(ctx).Create(renewal).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create renewal record").
			WithReportableDetails(map[string]interface{}{"lease_id": renewal.LeaseID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *leaseRepository) ListRenewals(ctx context.Context, leaseID string) ([]*domainLease.Renewal, error) {
	var renewals []*domainLease.Renewal
	err := r.client.Querier(ctx).
		Where("lease_id = ? AND status != ?", leaseID, types.StatusDeleted).
		Order("created_at asc").
		Find(&renewals).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list renewals").
			Mark(ierr.ErrDatabase)
	}
	return renewals, nil
}
