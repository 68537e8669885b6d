package types

import ierr "github.com/leaseflow/leaseflow/internal/errors"

// LeaseStatus is the lifecycle status of a lease
type LeaseStatus string

const (
	LeaseStatusPending    LeaseStatus = "PENDING"
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusExpired    LeaseStatus = "EXPIRED"
	LeaseStatusTerminated LeaseStatus = "TERMINATED"
	LeaseStatusCancelled  LeaseStatus = "CANCELLED"
)

// Validate checks the lease status is one of the known values
func (s LeaseStatus) Validate() error {
	switch s {
	case LeaseStatusPending, LeaseStatusActive, LeaseStatusExpired,
		LeaseStatusTerminated, LeaseStatusCancelled:
		return nil
	default:
		return ierr.NewErrorf("invalid lease status: %s", s).
			WithHint("Lease status must be one of: PENDING, ACTIVE, EXPIRED, TERMINATED, CANCELLED").
			Mark(ierr.ErrValidation)
	}
}

// IsTerminal returns true for statuses a lease can never leave
func (s LeaseStatus) IsTerminal() bool {
	return s == LeaseStatusTerminated || s == LeaseStatusCancelled
}

// OccupiesProperty returns true for statuses that reserve or occupy the
// property. At most one lease per property may hold such a status.
func (s LeaseStatus) OccupiesProperty() bool {
	return s == LeaseStatusActive || s == LeaseStatusPending
}

// TerminationReason is the recorded reason for a lease termination
type TerminationReason string

const (
	TerminationReasonCancellation TerminationReason = "CANCELLATION"
	TerminationReasonNonPayment   TerminationReason = "NON_PAYMENT"
	TerminationReasonEndOfTerm    TerminationReason = "END_OF_TERM"
	TerminationReasonOther        TerminationReason = "OTHER"
)

// Validate checks the reason is one of the known values
func (r TerminationReason) Validate() error {
	switch r {
	case TerminationReasonCancellation, TerminationReasonNonPayment,
		TerminationReasonEndOfTerm, TerminationReasonOther:
		return nil
	default:
		return ierr.NewErrorf("invalid termination reason: %s", r).
			Mark(ierr.ErrValidation)
	}
}

// AdvancePaymentDisposition records what happened to the advance payment on
// termination
type AdvancePaymentDisposition string

const (
	AdvancePaymentAppliedToRent AdvancePaymentDisposition = "APPLIED_TO_RENT"
	AdvancePaymentForfeited     AdvancePaymentDisposition = "FORFEITED"
	AdvancePaymentRefunded      AdvancePaymentDisposition = "REFUNDED"
)

// Validate checks the disposition is one of the known values
func (d AdvancePaymentDisposition) Validate() error {
	switch d {
	case AdvancePaymentAppliedToRent, AdvancePaymentForfeited, AdvancePaymentRefunded:
		return nil
	default:
		return ierr.NewErrorf("invalid advance payment disposition: %s", d).
			Mark(ierr.ErrValidation)
	}
}

// SecurityDepositDisposition records what happened to the security deposit
// on termination
type SecurityDepositDisposition string

const (
	SecurityDepositRefunded  SecurityDepositDisposition = "REFUNDED"
	SecurityDepositForfeited SecurityDepositDisposition = "FORFEITED"
	SecurityDepositHeld      SecurityDepositDisposition = "HELD"
)

// Validate checks the disposition is one of the known values
func (d SecurityDepositDisposition) Validate() error {
	switch d {
	case SecurityDepositRefunded, SecurityDepositForfeited, SecurityDepositHeld:
		return nil
	default:
		return ierr.NewErrorf("invalid security deposit disposition: %s", d).
			Mark(ierr.ErrValidation)
	}
}
