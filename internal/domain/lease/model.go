package lease

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// Lease represents the contractual relationship between a tenant and a
// property for a bounded or renewable term.
type Lease struct {
	ID          string            `json:"id" gorm:"column:id;primaryKey;type:varchar(64)"`
	TenantID    string            `json:"tenant_id" gorm:"column:tenant_id;type:varchar(64);index"`
	PropertyID  string            `json:"property_id" gorm:"column:property_id;type:varchar(64);index"`
	StartDate   time.Time         `json:"start_date" gorm:"column:start_date"`
	EndDate     time.Time         `json:"end_date" gorm:"column:end_date"`
	MonthlyRent decimal.Decimal   `json:"monthly_rent" gorm:"column:monthly_rent;type:decimal(12,2)"`
	LeaseStatus types.LeaseStatus `json:"lease_status" gorm:"column:lease_status;type:varchar(20);index"`

	RenewalCount  int     `json:"renewal_count" gorm:"column:renewal_count;default:0"`
	ParentLeaseID *string `json:"parent_lease_id,omitempty" gorm:"column:parent_lease_id;type:varchar(64)"`

	// Financial terms
	SecurityDepositMonths      int                    `json:"security_deposit_months" gorm:"column:security_deposit_months"`
	AdvancePaymentMonths       int                    `json:"advance_payment_months" gorm:"column:advance_payment_months"`
	PaymentFrequency           types.BillingFrequency `json:"payment_frequency" gorm:"column:payment_frequency;type:varchar(20)"`
	LateFeePercentage          decimal.Decimal        `json:"late_fee_percentage" gorm:"column:late_fee_percentage;type:decimal(5,2)"`
	GracePeriodDays            int                    `json:"grace_period_days" gorm:"column:grace_period_days"`
	AutoTerminationAfterMonths int                    `json:"auto_termination_after_months" gorm:"column:auto_termination_after_months"`
	RentIncreaseOnRenewal      decimal.Decimal        `json:"rent_increase_on_renewal" gorm:"column:rent_increase_on_renewal;type:decimal(5,2)"`

	ContractID *string `json:"contract_id,omitempty" gorm:"column:contract_id;type:varchar(64)"`
	Notes      string  `json:"notes" gorm:"column:notes;type:text"`

	types.BaseModel
}

// TableName overrides the gorm table name
func (Lease) TableName() string {
	return "leases"
}

// Validate checks invariants on the lease itself
func (l *Lease) Validate() error {
	if l.TenantID == "" {
		return ierr.NewError("tenant_id is required").
			WithHint("Tenant is required").
			Mark(ierr.ErrValidation)
	}
	if l.PropertyID == "" {
		return ierr.NewError("property_id is required").
			WithHint("Property is required").
			Mark(ierr.ErrValidation)
	}
	if err := l.LeaseStatus.Validate(); err != nil {
		return err
	}
	if !l.MonthlyRent.IsPositive() {
		return ierr.NewError("monthly_rent must be positive").
			WithHint("Monthly rent must be greater than zero").
			WithReportableDetails(map[string]interface{}{"monthly_rent": l.MonthlyRent.String()}).
			Mark(ierr.ErrValidation)
	}
	if !l.EndDate.IsZero() && l.EndDate.Before(l.StartDate) {
		return ierr.NewError("end_date must not be before start_date").
			WithHint("Lease end date must not precede its start date").
			Mark(ierr.ErrValidation)
	}
	if l.SecurityDepositMonths < 0 || l.AdvancePaymentMonths < 0 {
		return ierr.NewError("deposit and advance payment months must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CanRenew reports whether a renewal is permitted from the current status
func (l *Lease) CanRenew() bool {
	return l.LeaseStatus == types.LeaseStatusActive || l.LeaseStatus == types.LeaseStatusExpired
}

// CanTerminate reports whether a termination is permitted from the current
// status
func (l *Lease) CanTerminate() bool {
	switch l.LeaseStatus {
	case types.LeaseStatusPending, types.LeaseStatusActive, types.LeaseStatusExpired:
		return true
	default:
		return false
	}
}
