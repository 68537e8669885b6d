package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/leaseflow/leaseflow/internal/domain/billingtemplate"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/postgres"
	"github.com/leaseflow/leaseflow/internal/types"
)

type templateRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewTemplateRepository creates a new recurring template repository
func NewTemplateRepository(client postgres.IClient, logger *logger.Logger) billingtemplate.Repository {
	return &templateRepository{
		client: client,
		logger: logger,
	}
}

func (r *templateRepository) Create(ctx context.Context, template *billingtemplate.Template) error {
	r.logger.Debugw("creating recurring template",
		"template_id", template.ID,
		"lease_id", template.LeaseID,
		"frequency", template.Frequency,
	)

	if err := r.client.Querier(ctx).Create(template).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create recurring template").
			WithReportableDetails(map[string]interface{}{"template_id": template.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *templateRepository) Get(ctx context.Context, id string) (*billingtemplate.Template, error) {
	var template billingtemplate.Template
	err := r.client.Querier(ctx).
		Where("id = ? AND status != ?", id, types.StatusDeleted).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("recurring template %s not found", id).
				WithHint("Recurring template not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get recurring template").
			Mark(ierr.ErrDatabase)
	}
	return &template, nil
}

func (r *templateRepository) Update(ctx context.Context, template *billingtemplate.Template) error {
	r.logger.Debugw("updating recurring template",
		"template_id", template.ID,
		"next_due", template.NextDue,
		"is_active", template.IsActive,
	)

	result := r.client.Querier(ctx).
		Model(&billingtemplate.Template{}).
		Where("id = ? AND status != ?", template.ID, types.StatusDeleted).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(template)
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update recurring template").
			WithReportableDetails(map[string]interface{}{"template_id": template.ID}).
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewErrorf("recurring template %s not found", template.ID).
			WithHint("Recurring template not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *templateRepository) ListDueWithin(ctx context.Context, from, to time.Time) ([]*billingtemplate.Template, error) {
	var templates []*billingtemplate.Template
	err := r.client.Querier(ctx).
		Where("is_active = ? AND next_due >= ? AND next_due <= ? AND status != ?",
			true, from, to, types.StatusDeleted).
		Order("next_due asc").
		Find(&templates).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list due templates").
			WithReportableDetails(map[string]interface{}{"from": from, "to": to}).
			Mark(ierr.ErrDatabase)
	}
	return templates, nil
}

func (r *templateRepository) ListByLease(ctx context.Context, leaseID string) ([]*billingtemplate.Template, error) {
	var templates []*billingtemplate.Template
	err := r.client.Querier(ctx).
		Where("lease_id = ? AND status != ?", leaseID, types.StatusDeleted).
		Order("created_at asc").
		Find(&templates).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list templates for lease").
			Mark(ierr.ErrDatabase)
	}
	return templates, nil
}
