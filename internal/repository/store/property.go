package store

import (
	"context"

	"gorm.io/gorm/clause"

	domainProperty "github.com/leaseflow/leaseflow/internal/domain/property"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/postgres"
	"github.com/leaseflow/leaseflow/internal/types"
)

type propertyStatusSyncer struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewPropertyStatusSyncer creates the store-backed property status syncer
func NewPropertyStatusSyncer(client postgres.IClient, logger *logger.Logger) domainProperty.StatusSyncer {
	return &propertyStatusSyncer{
		client: client,
		logger: logger,
	}
}

// SetPropertyStatus upserts the property's derived occupancy value. The
// property row itself is owned by the surrounding system; this core only
// maintains the occupancy column.
func (s *propertyStatusSyncer) SetPropertyStatus(ctx context.Context, propertyID string, status types.PropertyStatus) error {
	s.logger.Debugw("syncing property status", "property_id", propertyID, "occupancy_status", status)

	err := s.client.Querier(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"occupancy_status", "updated_at"}),
		}).
		Create(&domainProperty.Property{
			ID:              propertyID,
			OccupancyStatus: status,
			BaseModel:       types.GetDefaultBaseModel(""),
		}).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to sync property status").
			WithReportableDetails(map[string]interface{}{
				"property_id":      propertyID,
				"occupancy_status": status,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}
