package property

import (
	"context"

	"github.com/leaseflow/leaseflow/internal/types"
)

// StatusSyncer is the collaborator contract for keeping a property's
// occupancy status consistent with its current lease state.
type StatusSyncer interface {
	// SetPropertyStatus updates the property's derived occupancy value
	SetPropertyStatus(ctx context.Context, propertyID string, status types.PropertyStatus) error
}

// Property is the minimal projection of a property this core writes to
type Property struct {
	ID              string               `json:"id" gorm:"column:id;primaryKey;type:varchar(64)"`
	OccupancyStatus types.PropertyStatus `json:"occupancy_status" gorm:"column:occupancy_status;type:varchar(20)"`

	types.BaseModel
}

// TableName overrides the gorm table name
func (Property) TableName() string {
	return "properties"
}
