package charge

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// Charge is a single billable obligation tied to a lease
type Charge struct {
	ID          string             `json:"id" gorm:"column:id;primaryKey;type:varchar(64)"`
	LeaseID     string             `json:"lease_id" gorm:"column:lease_id;type:varchar(64);index"`
	ChargeType  types.ChargeType   `json:"charge_type" gorm:"column:charge_type;type:varchar(32)"`
	Description string             `json:"description" gorm:"column:description;type:text"`
	Amount      decimal.Decimal    `json:"amount" gorm:"column:amount;type:decimal(12,2)"`
	ChargeDate  time.Time          `json:"charge_date" gorm:"column:charge_date"`
	DueDate     time.Time          `json:"due_date" gorm:"column:due_date;uniqueIndex:ux_charges_template_due"`
	IsRecurring bool               `json:"is_recurring" gorm:"column:is_recurring;default:false"`
	// TemplateID tags charges spawned by a recurring template. The composite
	// unique index with DueDate makes duplicate emission by a second
	// scheduler replica a constraint violation instead of a double charge.
	TemplateID   *string            `json:"template_id,omitempty" gorm:"column:template_id;type:varchar(64);uniqueIndex:ux_charges_template_due"`
	ChargeStatus types.ChargeStatus `json:"charge_status" gorm:"column:charge_status;type:varchar(20);index"`

	types.BaseModel
}

// TableName overrides the gorm table name
func (Charge) TableName() string {
	return "charges"
}

// Validate checks invariants on the charge
func (c *Charge) Validate() error {
	if c.LeaseID == "" {
		return ierr.NewError("lease_id is required").
			Mark(ierr.ErrValidation)
	}
	if !c.Amount.IsPositive() {
		return ierr.NewError("amount must be positive").
			WithReportableDetails(map[string]interface{}{"amount": c.Amount.String()}).
			Mark(ierr.ErrValidation)
	}
	if err := c.ChargeStatus.Validate(); err != nil {
		return err
	}
	return nil
}
