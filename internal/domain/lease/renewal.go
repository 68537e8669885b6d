package lease

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/leaseflow/leaseflow/internal/types"
)

// Renewal is an append-only audit record of a lease term extension
type Renewal struct {
	ID              string          `json:"id" gorm:"column:id;primaryKey;type:varchar(64)"`
	LeaseID         string          `json:"lease_id" gorm:"column:lease_id;type:varchar(64);index"`
	PreviousEndDate time.Time       `json:"previous_end_date" gorm:"column:previous_end_date"`
	NewEndDate      time.Time       `json:"new_end_date" gorm:"column:new_end_date"`
	PreviousRent    decimal.Decimal `json:"previous_rent" gorm:"column:previous_rent;type:decimal(12,2)"`
	NewRent         decimal.Decimal `json:"new_rent" gorm:"column:new_rent;type:decimal(12,2)"`
	RentIncreasePct decimal.Decimal `json:"rent_increase_pct" gorm:"column:rent_increase_pct;type:decimal(7,2)"`
	Notes           string          `json:"notes" gorm:"column:notes;type:text"`

	types.BaseModel
}

// TableName overrides the gorm table name
func (Renewal) TableName() string {
	return "lease_renewals"
}

// RentIncreasePercentage computes the rounded percentage change from old to
// new rent. Zero when the old rent is zero.
func RentIncreasePercentage(oldRent, newRent decimal.Decimal) decimal.Decimal {
	if oldRent.IsZero() {
		return decimal.Zero
	}
	return newRent.Sub(oldRent).
		Div(oldRent).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
