package dto

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/leaseflow/leaseflow/internal/domain/lease"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

var validate = validator.New()

// ContractInput references the signed agreement backing a lease
type ContractInput struct {
	DocumentURL string `json:"document_url" validate:"required,max=512"`
	SignedAt    string `json:"signed_at,omitempty"`
}

// CreateLeaseRequest creates a lease for a tenant on a property
type CreateLeaseRequest struct {
	TenantID    string          `json:"tenant_id" validate:"required"`
	PropertyID  string          `json:"property_id" validate:"required"`
	StartDate   string          `json:"start_date" validate:"required"`
	EndDate     string          `json:"end_date" validate:"required"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`

	// LeaseStatus may only be PENDING or ACTIVE at creation; defaults to
	// PENDING
	LeaseStatus types.LeaseStatus `json:"lease_status,omitempty"`

	SecurityDepositMonths      int                    `json:"security_deposit_months" validate:"min=0,max=12"`
	AdvancePaymentMonths       int                    `json:"advance_payment_months" validate:"min=0,max=12"`
	PaymentFrequency           types.BillingFrequency `json:"payment_frequency,omitempty"`
	LateFeePercentage          decimal.Decimal        `json:"late_fee_percentage"`
	GracePeriodDays            int                    `json:"grace_period_days" validate:"min=0,max=90"`
	AutoTerminationAfterMonths int                    `json:"auto_termination_after_months" validate:"min=0"`
	RentIncreaseOnRenewal      decimal.Decimal        `json:"rent_increase_on_renewal"`

	Contract *ContractInput `json:"contract,omitempty"`
	Notes    string         `json:"notes,omitempty"`
}

// Validate validates the create lease request
func (r *CreateLeaseRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid lease payload").
			Mark(ierr.ErrValidation)
	}

	if r.LeaseStatus == "" {
		r.LeaseStatus = types.LeaseStatusPending
	}
	if r.LeaseStatus != types.LeaseStatusPending && r.LeaseStatus != types.LeaseStatusActive {
		return ierr.NewErrorf("lease cannot be created with status %s", r.LeaseStatus).
			WithHint("A new lease must start as PENDING or ACTIVE").
			Mark(ierr.ErrValidation)
	}

	if r.PaymentFrequency == "" {
		r.PaymentFrequency = types.BillingFrequencyMonthly
	}
	if err := r.PaymentFrequency.Validate(); err != nil {
		return err
	}

	if !r.MonthlyRent.IsPositive() {
		return ierr.NewError("monthly_rent must be positive").
			WithHint("Monthly rent must be greater than zero").
			WithReportableDetails(map[string]interface{}{"monthly_rent": r.MonthlyRent.String()}).
			Mark(ierr.ErrValidation)
	}
	if r.LateFeePercentage.IsNegative() {
		return ierr.NewError("late_fee_percentage must not be negative").
			Mark(ierr.ErrValidation)
	}

	start, err := types.ParseDate(r.StartDate)
	if err != nil {
		return err
	}
	end, err := types.ParseDate(r.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return ierr.NewError("end_date must not be before start_date").
			WithHint("Lease end date must not precede its start date").
			Mark(ierr.ErrValidation)
	}

	if r.Contract != nil && r.Contract.SignedAt != "" {
		if _, err := types.ParseDate(r.Contract.SignedAt); err != nil {
			return err
		}
	}
	return nil
}

// ToLease converts the request into a domain lease. Validate must have been
// called first.
func (r *CreateLeaseRequest) ToLease(ctx context.Context) *lease.Lease {
	start, _ := types.ParseDate(r.StartDate)
	end, _ := types.ParseDate(r.EndDate)

	return &lease.Lease{
		ID:                         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEASE),
		TenantID:                   r.TenantID,
		PropertyID:                 r.PropertyID,
		StartDate:                  start,
		EndDate:                    end,
		MonthlyRent:                r.MonthlyRent,
		LeaseStatus:                r.LeaseStatus,
		SecurityDepositMonths:      r.SecurityDepositMonths,
		AdvancePaymentMonths:       r.AdvancePaymentMonths,
		PaymentFrequency:           r.PaymentFrequency,
		LateFeePercentage:          r.LateFeePercentage,
		GracePeriodDays:            r.GracePeriodDays,
		AutoTerminationAfterMonths: r.AutoTerminationAfterMonths,
		RentIncreaseOnRenewal:      r.RentIncreaseOnRenewal,
		Notes:                      r.Notes,
		BaseModel:                  types.GetDefaultBaseModel(types.GetUserID(ctx)),
	}
}

// ToContract converts the optional contract input into a domain record
func (r *CreateLeaseRequest) ToContract(ctx context.Context, leaseID string) *lease.Contract {
	if r.Contract == nil {
		return nil
	}
	contract := &lease.Contract{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEASE_CONTRACT),
		LeaseID:     leaseID,
		DocumentURL: r.Contract.DocumentURL,
		BaseModel:   types.GetDefaultBaseModel(types.GetUserID(ctx)),
	}
	if r.Contract.SignedAt != "" {
		signedAt, _ := types.ParseDate(r.Contract.SignedAt)
		contract.SignedAt = &signedAt
	}
	return contract
}

// UpdateLeaseRequest carries a partial update; nil fields are left untouched
type UpdateLeaseRequest struct {
	EndDate           *string                 `json:"end_date,omitempty"`
	MonthlyRent       *decimal.Decimal        `json:"monthly_rent,omitempty"`
	LeaseStatus       *types.LeaseStatus      `json:"lease_status,omitempty"`
	PaymentFrequency  *types.BillingFrequency `json:"payment_frequency,omitempty"`
	LateFeePercentage *decimal.Decimal        `json:"late_fee_percentage,omitempty"`
	GracePeriodDays   *int                    `json:"grace_period_days,omitempty"`
	Notes             *string                 `json:"notes,omitempty"`
}

// Validate validates the update lease request
func (r *UpdateLeaseRequest) Validate() error {
	if r.EndDate != nil {
		if _, err := types.ParseDate(*r.EndDate); err != nil {
			return err
		}
	}
	if r.MonthlyRent != nil && !r.MonthlyRent.IsPositive() {
		return ierr.NewError("monthly_rent must be positive").
			WithHint("Monthly rent must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if r.LeaseStatus != nil {
		if err := r.LeaseStatus.Validate(); err != nil {
			return err
		}
	}
	if r.PaymentFrequency != nil {
		if err := r.PaymentFrequency.Validate(); err != nil {
			return err
		}
	}
	if r.LateFeePercentage != nil && r.LateFeePercentage.IsNegative() {
		return ierr.NewError("late_fee_percentage must not be negative").
			Mark(ierr.ErrValidation)
	}
	if r.GracePeriodDays != nil && *r.GracePeriodDays < 0 {
		return ierr.NewError("grace_period_days must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply copies the set fields onto the lease. Validate must have been called
// first.
func (r *UpdateLeaseRequest) Apply(l *lease.Lease) {
	if r.EndDate != nil {
		end, _ := types.ParseDate(*r.EndDate)
		l.EndDate = end
	}
	if r.MonthlyRent != nil {
		l.MonthlyRent = *r.MonthlyRent
	}
	if r.LeaseStatus != nil {
		l.LeaseStatus = *r.LeaseStatus
	}
	if r.PaymentFrequency != nil {
		l.PaymentFrequency = *r.PaymentFrequency
	}
	if r.LateFeePercentage != nil {
		l.LateFeePercentage = *r.LateFeePercentage
	}
	if r.GracePeriodDays != nil {
		l.GracePeriodDays = *r.GracePeriodDays
	}
	if r.Notes != nil {
		l.Notes = *r.Notes
	}
}

// TerminateLeaseRequest ends a lease explicitly and records deposit
// dispositions
type TerminateLeaseRequest struct {
	TerminationDate       string `json:"termination_date,omitempty"`
	Reason                string `json:"reason,omitempty"`
	AdvancePaymentStatus  string `json:"advance_payment_status,omitempty"`
	SecurityDepositStatus string `json:"security_deposit_status,omitempty"`
	Notes                 string `json:"notes,omitempty"`
}

// Validate validates the terminate lease request
func (r *TerminateLeaseRequest) Validate() error {
	if r.TerminationDate != "" {
		if _, err := types.ParseDate(r.TerminationDate); err != nil {
			return err
		}
	}
	return nil
}

// GetTerminationDate resolves the termination date, defaulting to today
func (r *TerminateLeaseRequest) GetTerminationDate() time.Time {
	if r.TerminationDate == "" {
		return types.ToDate(time.Now())
	}
	d, _ := types.ParseDate(r.TerminationDate)
	return d
}

// GetReason resolves the reason, falling back to OTHER on unknown input
func (r *TerminateLeaseRequest) GetReason() types.TerminationReason {
	reason := types.TerminationReason(r.Reason)
	if reason.Validate() != nil {
		return types.TerminationReasonOther
	}
	return reason
}

// GetAdvancePaymentStatus resolves the advance payment disposition, falling
// back to APPLIED_TO_RENT on unknown input
func (r *TerminateLeaseRequest) GetAdvancePaymentStatus() types.AdvancePaymentDisposition {
	d := types.AdvancePaymentDisposition(r.AdvancePaymentStatus)
	if d.Validate() != nil {
		return types.AdvancePaymentAppliedToRent
	}
	return d
}

// GetSecurityDepositStatus resolves the deposit disposition, falling back to
// HELD on unknown input
func (r *TerminateLeaseRequest) GetSecurityDepositStatus() types.SecurityDepositDisposition {
	d := types.SecurityDepositDisposition(r.SecurityDepositStatus)
	if d.Validate() != nil {
		return types.SecurityDepositHeld
	}
	return d
}

// RenewLeaseRequest extends a lease into a new term
type RenewLeaseRequest struct {
	NewEndDate string `json:"new_end_date" validate:"required"`

	// NewMonthlyRent defaults to the current rent when omitted
	NewMonthlyRent *decimal.Decimal `json:"new_monthly_rent,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// Validate validates the renew lease request
func (r *RenewLeaseRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid renewal payload").
			Mark(ierr.ErrValidation)
	}
	if _, err := types.ParseDate(r.NewEndDate); err != nil {
		return err
	}
	if r.NewMonthlyRent != nil && !r.NewMonthlyRent.IsPositive() {
		return ierr.NewError("new_monthly_rent must be positive").
			WithHint("Renewal rent must be greater than zero").
			WithReportableDetails(map[string]interface{}{"new_monthly_rent": r.NewMonthlyRent.String()}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetNewEndDate resolves the parsed end date. Validate must have been called
// first.
func (r *RenewLeaseRequest) GetNewEndDate() time.Time {
	d, _ := types.ParseDate(r.NewEndDate)
	return d
}

// LeaseResponse is the lease representation returned by the API
type LeaseResponse struct {
	*lease.Lease
}

// NewLeaseResponse creates a lease response
func NewLeaseResponse(l *lease.Lease) *LeaseResponse {
	return &LeaseResponse{Lease: l}
}

// ListLeasesResponse is a paginated list of leases
type ListLeasesResponse struct {
	Items []*LeaseResponse `json:"items"`
	Total int              `json:"total"`
}

// TerminateLeaseResponse returns the updated lease with its termination
// record
type TerminateLeaseResponse struct {
	Lease       *LeaseResponse     `json:"lease"`
	Termination *lease.Termination `json:"termination"`
}

// RenewLeaseResponse returns the updated lease with its renewal audit record
type RenewLeaseResponse struct {
	Lease   *LeaseResponse `json:"lease"`
	Renewal *lease.Renewal `json:"renewal"`
}
