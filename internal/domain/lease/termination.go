package lease

import (
	"time"

	"github.com/leaseflow/leaseflow/internal/types"
)

// Termination records the explicit, terminal ending of a lease and the
// disposition of its deposits. Exactly one per terminated lease.
type Termination struct {
	ID                    string                           `json:"id" gorm:"column:id;primaryKey;type:varchar(64)"`
	LeaseID               string                           `json:"lease_id" gorm:"column:lease_id;type:varchar(64);uniqueIndex"`
	TerminationDate       time.Time                        `json:"termination_date" gorm:"column:termination_date"`
	Reason                types.TerminationReason          `json:"reason" gorm:"column:reason;type:varchar(20)"`
	AdvancePaymentStatus  types.AdvancePaymentDisposition  `json:"advance_payment_status" gorm:"column:advance_payment_status;type:varchar(20)"`
	SecurityDepositStatus types.SecurityDepositDisposition `json:"security_deposit_status" gorm:"column:security_deposit_status;type:varchar(20)"`
	Notes                 string                           `json:"notes" gorm:"column:notes;type:text"`

	types.BaseModel
}

// TableName overrides the gorm table name
func (Termination) TableName() string {
	return "lease_terminations"
}
