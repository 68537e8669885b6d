package dto

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/leaseflow/leaseflow/internal/errors"
)

// GenerateChargesRequest triggers a recurring charge generation run
type GenerateChargesRequest struct {
	// LookaheadDays is how far past today templates are considered due;
	// zero falls back to the configured default
	LookaheadDays int `json:"lookahead_days,omitempty"`

	// DryRun reports what would be created without writing anything
	DryRun bool `json:"dry_run,omitempty"`
}

// Validate validates the generate charges request
func (r *GenerateChargesRequest) Validate() error {
	if r.LookaheadDays < 0 {
		return ierr.NewError("lookahead_days must not be negative").
			WithReportableDetails(map[string]interface{}{"lookahead_days": r.LookaheadDays}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PlannedCharge describes a charge a dry run would have created
type PlannedCharge struct {
	TemplateID string          `json:"template_id"`
	LeaseID    string          `json:"lease_id"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
}

// GenerateChargesResponse summarizes a recurring charge generation run
type GenerateChargesResponse struct {
	Created     int  `json:"created"`
	Skipped     int  `json:"skipped"`
	Deactivated int  `json:"deactivated"`
	DryRun      bool `json:"dry_run"`

	// WouldCreate is populated only on dry runs
	WouldCreate []PlannedCharge `json:"would_create,omitempty"`
}

// ReminderScanResponse summarizes a payment reminder scan
type ReminderScanResponse struct {
	Scanned int `json:"scanned"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// InitialChargesResult summarizes upfront charge generation for a new lease
type InitialChargesResult struct {
	LeaseID        string          `json:"lease_id"`
	AdvanceCreated int             `json:"advance_created"`
	DepositCreated int             `json:"deposit_created"`
	Failed         int             `json:"failed"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}
