package billingtemplate

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// Template is a pattern that periodically spawns new charges for a lease at
// a fixed frequency until an optional expiry.
type Template struct {
	ID        string                 `json:"id" gorm:"column:id;primaryKey;type:varchar(64)"`
	LeaseID   string                 `json:"lease_id" gorm:"column:lease_id;type:varchar(64);index"`
	Frequency types.BillingFrequency `json:"frequency" gorm:"column:frequency;type:varchar(20)"`

	// NextDue is the due date of the next charge this template will emit
	NextDue time.Time `json:"next_due" gorm:"column:next_due;index"`

	// AutoGenerateUntil bounds the generation window; the template is
	// deactivated once NextDue passes it
	AutoGenerateUntil *time.Time `json:"auto_generate_until,omitempty" gorm:"column:auto_generate_until"`

	IsActive bool `json:"is_active" gorm:"column:is_active;default:true;index"`

	// Fields stamped onto every charge the template emits
	ChargeType  types.ChargeType `json:"charge_type" gorm:"column:charge_type;type:varchar(32)"`
	Description string           `json:"description" gorm:"column:description;type:text"`
	Amount      decimal.Decimal  `json:"amount" gorm:"column:amount;type:decimal(12,2)"`

	types.BaseModel
}

// TableName overrides the gorm table name
func (Template) TableName() string {
	return "recurring_charge_templates"
}

// Validate checks invariants on the template
func (t *Template) Validate() error {
	if t.LeaseID == "" {
		return ierr.NewError("lease_id is required").
			Mark(ierr.ErrValidation)
	}
	if err := t.Frequency.Validate(); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return ierr.NewError("amount must be positive").
			WithReportableDetails(map[string]interface{}{"amount": t.Amount.String()}).
			Mark(ierr.ErrValidation)
	}
	if t.NextDue.IsZero() {
		return ierr.NewError("next_due is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// WindowExhausted reports whether a due date falls beyond the generation
// window
func (t *Template) WindowExhausted(due time.Time) bool {
	return t.AutoGenerateUntil != nil && due.After(*t.AutoGenerateUntil)
}

// AdvanceNextDue returns the due date one billing period after the current
// one, clamped to the last valid day of the target month.
func (t *Template) AdvanceNextDue() time.Time {
	return types.AddMonthsClamped(t.NextDue, t.Frequency.MonthCount())
}
