package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domainCharge "github.com/leaseflow/leaseflow/internal/domain/charge"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/postgres"
	"github.com/leaseflow/leaseflow/internal/types"
)

type chargeRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(client postgres.IClient, logger *logger.Logger) domainCharge.Repository {
	return &chargeRepository{
		client: client,
		logger: logger,
	}
}

func (r *chargeRepository) Create(ctx context.Context, charge *domainCharge.Charge) error {
	r.logger.Debugw("creating charge",
		"charge_id", charge.ID,
		"lease_id", charge.LeaseID,
		"charge_type", charge.ChargeType,
		"amount", charge.Amount,
	)

	if err := r.client.Querier(ctx).Create(charge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHint("A charge for this template and due date already exists").
				WithReportableDetails(map[string]interface{}{
					"charge_id":   charge.ID,
					"template_id": charge.TemplateID,
					"due_date":    charge.DueDate,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create charge").
			WithReportableDetails(map[string]interface{}{"charge_id": charge.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *chargeRepository) Get(ctx context.Context, id string) (*domainCharge.Charge, error) {
	var charge domainCharge.Charge
	err := r.client.Querier(ctx).
		Where("id = ? AND status != ?", id, types.StatusDeleted).
		First(&charge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("charge %s not found", id).
				WithHint("Charge not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get charge").
			Mark(ierr.ErrDatabase)
	}
	return &charge, nil
}

func (r *chargeRepository) Update(ctx context.Context, charge *domainCharge.Charge) error {
	result := r.client.Querier(ctx).
		Model(&domainCharge.Charge{}).
		Where("id = ? AND status != ?", charge.ID, types.StatusDeleted).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(charge)
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update charge").
			WithReportableDetails(map[string]interface{}{"charge_id": charge.ID}).
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewErrorf("charge %s not found", charge.ID).
			WithHint("Charge not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *chargeRepository) List(ctx context.Context, filter *domainCharge.Filter) ([]*domainCharge.Charge, error) {
	if filter == nil {
		filter = domainCharge.NewFilter()
	}

	query := r.client.Querier(ctx).
		Model(&domainCharge.Charge{}).
		Where("status != ?", types.StatusDeleted)

	if len(filter.ChargeIDs) > 0 {
		query = query.Where("id IN ?", filter.ChargeIDs)
	}
	if len(filter.LeaseIDs) > 0 {
		query = query.Where("lease_id IN ?", filter.LeaseIDs)
	}
	if len(filter.TemplateIDs) > 0 {
		query = query.Where("template_id IN ?", filter.TemplateIDs)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("charge_status IN ?", filter.Statuses)
	}
	if len(filter.ChargeTypes) > 0 {
		query = query.Where("charge_type IN ?", filter.ChargeTypes)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date <= ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_date >= ?", *filter.DueAfter)
	}

	query = applyQueryFilter(query, filter.QueryFilter)

	var charges []*domainCharge.Charge
	if err := query.Find(&charges).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list charges").
			Mark(ierr.ErrDatabase)
	}
	return charges, nil
}

func (r *chargeRepository) ExistsForTemplateAndDueDate(ctx context.Context, templateID string, dueDate time.Time) (bool, error) {
	var count int64
	err := r.client.Querier(ctx).
		Model(&domainCharge.Charge{}).
		Where("template_id = ? AND due_date = ? AND status != ?",
			templateID, dueDate, types.StatusDeleted).
		Count(&count).Error
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check for existing charge").
			WithReportableDetails(map[string]interface{}{
				"template_id": templateID,
				"due_date":    dueDate,
			}).
			Mark(ierr.ErrDatabase)
	}
	return count > 0, nil
}

func (r *chargeRepository) ListOutstanding(ctx context.Context) ([]*domainCharge.Charge, error) {
	var charges []*domainCharge.Charge
	err := r.client.Querier(ctx).
		Where("charge_status IN ? AND status != ?",
			[]types.ChargeStatus{types.ChargeStatusUnpaid, types.ChargeStatusPartiallyPaid},
			types.StatusDeleted).
		Order("due_date asc").
		Find(&charges).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list outstanding charges").
			Mark(ierr.ErrDatabase)
	}
	return charges, nil
}
