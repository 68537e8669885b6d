package dto

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

func validCreateRequest() *CreateLeaseRequest {
	return &CreateLeaseRequest{
		TenantID:    "user_tenant",
		PropertyID:  "prop_1",
		StartDate:   "2024-01-01",
		EndDate:     "2024-12-31",
		MonthlyRent: decimal.NewFromInt(1000),
	}
}

func TestCreateLeaseRequestDefaults(t *testing.T) {
	req := validCreateRequest()
	require.NoError(t, req.Validate())

	assert.Equal(t, types.LeaseStatusPending, req.LeaseStatus)
	assert.Equal(t, types.BillingFrequencyMonthly, req.PaymentFrequency)

	l := req.ToLease(context.Background())
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, types.LeaseStatusPending, l.LeaseStatus)
	assert.Equal(t, "2024-01-01", l.StartDate.Format(types.DateFormat))
}

func TestCreateLeaseRequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateLeaseRequest)
	}{
		{"missing tenant", func(r *CreateLeaseRequest) { r.TenantID = "" }},
		{"missing property", func(r *CreateLeaseRequest) { r.PropertyID = "" }},
		{"zero rent", func(r *CreateLeaseRequest) { r.MonthlyRent = decimal.Zero }},
		{"negative late fee", func(r *CreateLeaseRequest) { r.LateFeePercentage = decimal.NewFromInt(-1) }},
		{"bad start date", func(r *CreateLeaseRequest) { r.StartDate = "not-a-date" }},
		{"end before start", func(r *CreateLeaseRequest) { r.EndDate = "2023-06-01" }},
		{"terminal status", func(r *CreateLeaseRequest) { r.LeaseStatus = types.LeaseStatusCancelled }},
		{"unknown frequency", func(r *CreateLeaseRequest) { r.PaymentFrequency = "WEEKLY" }},
		{"negative deposit months", func(r *CreateLeaseRequest) { r.SecurityDepositMonths = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestTerminateLeaseRequestDefaults(t *testing.T) {
	req := &TerminateLeaseRequest{}
	require.NoError(t, req.Validate())

	assert.Equal(t, types.TerminationReasonOther, req.GetReason())
	assert.Equal(t, types.AdvancePaymentAppliedToRent, req.GetAdvancePaymentStatus())
	assert.Equal(t, types.SecurityDepositHeld, req.GetSecurityDepositStatus())
	assert.False(t, req.GetTerminationDate().IsZero())
}

func TestTerminateLeaseRequestUnknownInputsFallBack(t *testing.T) {
	req := &TerminateLeaseRequest{
		Reason:                "BECAUSE",
		AdvancePaymentStatus:  "GONE",
		SecurityDepositStatus: "SPENT",
	}
	require.NoError(t, req.Validate())

	assert.Equal(t, types.TerminationReasonOther, req.GetReason())
	assert.Equal(t, types.AdvancePaymentAppliedToRent, req.GetAdvancePaymentStatus())
	assert.Equal(t, types.SecurityDepositHeld, req.GetSecurityDepositStatus())
}

func TestTerminateLeaseRequestKeepsValidInputs(t *testing.T) {
	req := &TerminateLeaseRequest{
		TerminationDate:       "2024-06-30",
		Reason:                "NON_PAYMENT",
		AdvancePaymentStatus:  "FORFEITED",
		SecurityDepositStatus: "REFUNDED",
	}
	require.NoError(t, req.Validate())

	assert.Equal(t, types.TerminationReasonNonPayment, req.GetReason())
	assert.Equal(t, types.AdvancePaymentForfeited, req.GetAdvancePaymentStatus())
	assert.Equal(t, types.SecurityDepositRefunded, req.GetSecurityDepositStatus())
	assert.Equal(t, "2024-06-30", req.GetTerminationDate().Format(types.DateFormat))
}

func TestRenewLeaseRequestValidation(t *testing.T) {
	req := &RenewLeaseRequest{NewEndDate: "2025-12-31"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "2025-12-31", req.GetNewEndDate().Format(types.DateFormat))

	missing := &RenewLeaseRequest{}
	err := missing.Validate()
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	zeroRent := &RenewLeaseRequest{
		NewEndDate:     "2025-12-31",
		NewMonthlyRent: lo.ToPtr(decimal.Zero),
	}
	err = zeroRent.Validate()
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestUpdateLeaseRequestApply(t *testing.T) {
	req := validCreateRequest()
	require.NoError(t, req.Validate())
	l := req.ToLease(context.Background())

	update := &UpdateLeaseRequest{
		EndDate:         lo.ToPtr("2025-06-30"),
		MonthlyRent:     lo.ToPtr(decimal.NewFromInt(1250)),
		GracePeriodDays: lo.ToPtr(10),
	}
	require.NoError(t, update.Validate())
	update.Apply(l)

	assert.Equal(t, "2025-06-30", l.EndDate.Format(types.DateFormat))
	assert.True(t, l.MonthlyRent.Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, 10, l.GracePeriodDays)
	// Unset fields stay untouched
	assert.Equal(t, types.LeaseStatusPending, l.LeaseStatus)
}
