package types

import ierr "github.com/leaseflow/leaseflow/internal/errors"

// ChargeStatus is the payment status of a charge
type ChargeStatus string

const (
	ChargeStatusUnpaid        ChargeStatus = "UNPAID"
	ChargeStatusPartiallyPaid ChargeStatus = "PARTIALLY_PAID"
	ChargeStatusPaid          ChargeStatus = "PAID"
	ChargeStatusWaived        ChargeStatus = "WAIVED"
	ChargeStatusCancelled     ChargeStatus = "CANCELLED"
)

// Validate checks the charge status is one of the known values
func (s ChargeStatus) Validate() error {
	switch s {
	case ChargeStatusUnpaid, ChargeStatusPartiallyPaid, ChargeStatusPaid,
		ChargeStatusWaived, ChargeStatusCancelled:
		return nil
	default:
		return ierr.NewErrorf("invalid charge status: %s", s).
			Mark(ierr.ErrValidation)
	}
}

// IsOutstanding returns true for statuses the reminder scan cares about
func (s ChargeStatus) IsOutstanding() bool {
	return s == ChargeStatusUnpaid || s == ChargeStatusPartiallyPaid
}

// ChargeType categorizes what a charge bills for
type ChargeType string

const (
	ChargeTypeRent            ChargeType = "RENT"
	ChargeTypeAdvancePayment  ChargeType = "ADVANCE_PAYMENT"
	ChargeTypeSecurityDeposit ChargeType = "SECURITY_DEPOSIT"
	ChargeTypeLateFee         ChargeType = "LATE_FEE"
	ChargeTypeUtility         ChargeType = "UTILITY"
	ChargeTypeOther           ChargeType = "OTHER"
)
