package lease

import (
	"time"

	"github.com/leaseflow/leaseflow/internal/types"
)

// Contract is the signed agreement backing a lease. Document storage is
// external; only the reference is kept here.
type Contract struct {
	ID          string     `json:"id" gorm:"column:id;primaryKey;type:varchar(64)"`
	LeaseID     string     `json:"lease_id" gorm:"column:lease_id;type:varchar(64);index"`
	DocumentURL string     `json:"document_url" gorm:"column:document_url;type:varchar(512)"`
	SignedAt    *time.Time `json:"signed_at,omitempty" gorm:"column:signed_at"`

	types.BaseModel
}

// TableName overrides the gorm table name
func (Contract) TableName() string {
	return "lease_contracts"
}
