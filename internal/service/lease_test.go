package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/leaseflow/leaseflow/internal/api/dto"
	"github.com/leaseflow/leaseflow/internal/domain/charge"
	"github.com/leaseflow/leaseflow/internal/domain/lease"
	"github.com/leaseflow/leaseflow/internal/domain/notification"
	"github.com/leaseflow/leaseflow/internal/domain/user"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/testutil"
	"github.com/leaseflow/leaseflow/internal/types"
)

type LeaseServiceTestSuite struct {
	testutil.BaseServiceTestSuite
	leaseService LeaseService
}

func TestLeaseService(t *testing.T) {
	suite.Run(t, new(LeaseServiceTestSuite))
}

func (s *LeaseServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	s.GetStores().UserRepo.AddUser(&user.User{
		ID:        "user_admin",
		Email:     "admin@example.com",
		Name:      "Admin",
		Role:      types.UserRoleAdmin,
		BaseModel: types.GetDefaultBaseModel("user_admin"),
	})

	s.leaseService = NewLeaseService(s.serviceParams())
}

func (s *LeaseServiceTestSuite) serviceParams() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		Cache:            s.GetCache(),
		Publisher:        stores.Publisher,
		LeaseRepo:        stores.LeaseRepo,
		ChargeRepo:       stores.ChargeRepo,
		TemplateRepo:     stores.TemplateRepo,
		NotificationRepo: stores.NotificationRepo,
		UserRepo:         stores.UserRepo,
		PropertySyncer:   stores.PropertySyncer,
	}
}

func (s *LeaseServiceTestSuite) createRequest() *dto.CreateLeaseRequest {
	return &dto.CreateLeaseRequest{
		TenantID:              "user_tenant",
		PropertyID:            "prop_1",
		StartDate:             "2024-01-01",
		EndDate:               "2024-12-31",
		MonthlyRent:           decimal.NewFromInt(1000),
		LeaseStatus:           types.LeaseStatusActive,
		AdvancePaymentMonths:  2,
		SecurityDepositMonths: 1,
	}
}

// seedLease writes a lease directly into the store, bypassing the service
func (s *LeaseServiceTestSuite) seedLease(status types.LeaseStatus, propertyID string, rent decimal.Decimal) *lease.Lease {
	l := &lease.Lease{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEASE),
		TenantID:         "user_tenant",
		PropertyID:       propertyID,
		StartDate:        time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent:      rent,
		LeaseStatus:      status,
		PaymentFrequency: types.BillingFrequencyMonthly,
		GracePeriodDays:  5,
		BaseModel:        types.GetDefaultBaseModel("user_test"),
	}
	s.Require().NoError(s.GetStores().LeaseRepo.Create(s.GetContext(), l))
	return l
}

func (s *LeaseServiceTestSuite) tenantNotifications(notificationType types.NotificationType) []*notification.Notification {
	all, err := s.GetStores().NotificationRepo.ListByUser(s.GetContext(), "user_tenant", 0)
	s.Require().NoError(err)
	return lo.Filter(all, func(n *notification.Notification, _ int) bool {
		return n.Type == notificationType
	})
}

func (s *LeaseServiceTestSuite) TestCreateLeaseGeneratesInitialCharges() {
	resp, err := s.leaseService.CreateLease(s.GetContext(), s.createRequest())
	s.Require().NoError(err)
	s.Equal(types.LeaseStatusActive, resp.LeaseStatus)

	charges, err := s.GetStores().ChargeRepo.List(s.GetContext(), &charge.Filter{
		LeaseIDs: []string{resp.ID},
	})
	s.Require().NoError(err)
	s.Len(charges, 3)

	startDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	advance, deposit := 0, 0
	for _, c := range charges {
		s.True(c.Amount.Equal(decimal.NewFromInt(1000)))
		s.Equal(startDate, c.DueDate)
		s.Equal(startDate, c.ChargeDate)
		s.Equal(types.ChargeStatusUnpaid, c.ChargeStatus)
		switch c.ChargeType {
		case types.ChargeTypeAdvancePayment:
			advance++
		case types.ChargeTypeSecurityDeposit:
			deposit++
		}
	}
	s.Equal(2, advance)
	s.Equal(1, deposit)

	status, ok := s.GetStores().PropertySyncer.StatusOf("prop_1")
	s.True(ok)
	s.Equal(types.PropertyStatusOccupied, status)

	s.Len(s.tenantNotifications(types.NotificationTypeLeaseCreated), 1)

	adminInbox, err := s.GetStores().NotificationRepo.ListByUser(s.GetContext(), "user_admin", 0)
	s.Require().NoError(err)
	s.Require().Len(adminInbox, 1)
	s.Equal(types.NotificationTypeChargesGenerated, adminInbox[0].Type)

	s.NotEmpty(s.GetStores().Publisher.Events())
}

func (s *LeaseServiceTestSuite) TestCreateLeaseDefaultsToPending() {
	req := s.createRequest()
	req.LeaseStatus = ""
	req.AdvancePaymentMonths = 0
	req.SecurityDepositMonths = 0

	resp, err := s.leaseService.CreateLease(s.GetContext(), req)
	s.Require().NoError(err)
	s.Equal(types.LeaseStatusPending, resp.LeaseStatus)

	status, ok := s.GetStores().PropertySyncer.StatusOf("prop_1")
	s.True(ok)
	s.Equal(types.PropertyStatusReserved, status)
}

func (s *LeaseServiceTestSuite) TestCreateLeaseConflictOnOccupiedProperty() {
	s.seedLease(types.LeaseStatusActive, "prop_1", decimal.NewFromInt(1000))

	_, err := s.leaseService.CreateLease(s.GetContext(), s.createRequest())
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *LeaseServiceTestSuite) TestCreateLeaseAllowedAfterTermination() {
	l := s.seedLease(types.LeaseStatusTerminated, "prop_1", decimal.NewFromInt(1000))
	s.NotEmpty(l.ID)

	_, err := s.leaseService.CreateLease(s.GetContext(), s.createRequest())
	s.NoError(err)
}

func (s *LeaseServiceTestSuite) TestCreateLeaseValidation() {
	s.Run("non positive rent", func() {
		req := s.createRequest()
		req.MonthlyRent = decimal.Zero
		_, err := s.leaseService.CreateLease(s.GetContext(), req)
		s.Require().Error(err)
		s.True(ierr.IsValidation(err))
	})

	s.Run("end before start", func() {
		req := s.createRequest()
		req.EndDate = "2023-12-31"
		_, err := s.leaseService.CreateLease(s.GetContext(), req)
		s.Require().Error(err)
		s.True(ierr.IsValidation(err))
	})

	s.Run("malformed date", func() {
		req := s.createRequest()
		req.StartDate = "01/01/2024"
		_, err := s.leaseService.CreateLease(s.GetContext(), req)
		s.Require().Error(err)
		s.True(ierr.IsValidation(err))
	})

	s.Run("terminal creation status", func() {
		req := s.createRequest()
		req.LeaseStatus = types.LeaseStatusTerminated
		_, err := s.leaseService.CreateLease(s.GetContext(), req)
		s.Require().Error(err)
		s.True(ierr.IsValidation(err))
	})
}

func (s *LeaseServiceTestSuite) TestCreateLeaseWithContract() {
	req := s.createRequest()
	req.Contract = &dto.ContractInput{
		DocumentURL: "https://docs.example.com/contract.pdf",
		SignedAt:    "2023-12-15",
	}

	resp, err := s.leaseService.CreateLease(s.GetContext(), req)
	s.Require().NoError(err)
	s.Require().NotNil(resp.ContractID)
	s.NotEmpty(*resp.ContractID)
}

func (s *LeaseServiceTestSuite) TestUpdateLeaseUnchangedStatusEmitsNoNotification() {
	l := s.seedLease(types.LeaseStatusActive, "prop_1", decimal.NewFromInt(1000))

	resp, err := s.leaseService.UpdateLease(s.GetContext(), l.ID, &dto.UpdateLeaseRequest{
		LeaseStatus: lo.ToPtr(types.LeaseStatusActive),
		Notes:       lo.ToPtr("inspection scheduled"),
	})
	s.Require().NoError(err)
	s.Equal("inspection scheduled", resp.Notes)

	s.Empty(s.tenantNotifications(types.NotificationTypeLeaseStatusUpdated))
	s.Equal(0, s.GetStores().PropertySyncer.Calls())
}

func (s *LeaseServiceTestSuite) TestUpdateLeaseStatusChangeNotifiesAndSyncs() {
	l := s.seedLease(types.LeaseStatusActive, "prop_1", decimal.NewFromInt(1000))

	resp, err := s.leaseService.UpdateLease(s.GetContext(), l.ID, &dto.UpdateLeaseRequest{
		LeaseStatus: lo.ToPtr(types.LeaseStatusExpired),
	})
	s.Require().NoError(err)
	s.Equal(types.LeaseStatusExpired, resp.LeaseStatus)

	s.Len(s.tenantNotifications(types.NotificationTypeLeaseStatusUpdated), 1)

	status, ok := s.GetStores().PropertySyncer.StatusOf("prop_1")
	s.True(ok)
	s.Equal(types.PropertyStatusAvailable, status)
}

func (s *LeaseServiceTestSuite) TestUpdateLeaseNotFound() {
	_, err := s.leaseService.UpdateLease(s.GetContext(), "lease_missing", &dto.UpdateLeaseRequest{
		Notes: lo.ToPtr("x"),
	})
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *LeaseServiceTestSuite) TestTerminatePendingLease() {
	l := s.seedLease(types.LeaseStatusPending, "prop_1", decimal.NewFromInt(1000))

	resp, err := s.leaseService.TerminateLease(s.GetContext(), l.ID, &dto.TerminateLeaseRequest{
		Reason: "CANCELLATION",
		Notes:  "tenant withdrew",
	})
	s.Require().NoError(err)
	s.Equal(types.LeaseStatusTerminated, resp.Lease.LeaseStatus)
	s.Equal(types.TerminationReasonCancellation, resp.Termination.Reason)

	status, ok := s.GetStores().PropertySyncer.StatusOf("prop_1")
	s.True(ok)
	s.Equal(types.PropertyStatusAvailable, status)

	s.Len(s.tenantNotifications(types.NotificationTypeLeaseTerminated), 1)

	stored, err := s.GetStores().LeaseRepo.GetTermination(s.GetContext(), l.ID)
	s.Require().NoError(err)
	s.Equal("tenant withdrew", stored.Notes)
}

func (s *LeaseServiceTestSuite) TestTerminateTwiceConflicts() {
	l := s.seedLease(types.LeaseStatusPending, "prop_1", decimal.NewFromInt(1000))

	_, err := s.leaseService.TerminateLease(s.GetContext(), l.ID, &dto.TerminateLeaseRequest{})
	s.Require().NoError(err)

	_, err = s.leaseService.TerminateLease(s.GetContext(), l.ID, &dto.TerminateLeaseRequest{})
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *LeaseServiceTestSuite) TestTerminateDefaultsInvalidDispositions() {
	l := s.seedLease(types.LeaseStatusActive, "prop_1", decimal.NewFromInt(1000))

	resp, err := s.leaseService.TerminateLease(s.GetContext(), l.ID, &dto.TerminateLeaseRequest{
		Reason:                "BECAUSE",
		AdvancePaymentStatus:  "VANISHED",
		SecurityDepositStatus: "",
	})
	s.Require().NoError(err)
	s.Equal(types.TerminationReasonOther, resp.Termination.Reason)
	s.Equal(types.AdvancePaymentAppliedToRent, resp.Termination.AdvancePaymentStatus)
	s.Equal(types.SecurityDepositHeld, resp.Termination.SecurityDepositStatus)
}

func (s *LeaseServiceTestSuite) TestRenewLeaseComputesIncrease() {
	l := s.seedLease(types.LeaseStatusActive, "prop_1", decimal.NewFromInt(1000))

	resp, err := s.leaseService.RenewLease(s.GetContext(), l.ID, &dto.RenewLeaseRequest{
		NewEndDate:     "2025-12-31",
		NewMonthlyRent: lo.ToPtr(decimal.NewFromInt(1100)),
	})
	s.Require().NoError(err)

	s.Equal(types.LeaseStatusActive, resp.Lease.LeaseStatus)
	s.Equal(1, resp.Lease.RenewalCount)
	s.True(resp.Lease.MonthlyRent.Equal(decimal.NewFromInt(1100)))
	s.Equal(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), resp.Lease.EndDate)

	s.True(resp.Renewal.RentIncreasePct.Equal(decimal.NewFromInt(10)))
	s.True(resp.Renewal.PreviousRent.Equal(decimal.NewFromInt(1000)))
	s.True(resp.Renewal.NewRent.Equal(decimal.NewFromInt(1100)))

	renewals, err := s.GetStores().LeaseRepo.ListRenewals(s.GetContext(), l.ID)
	s.Require().NoError(err)
	s.Len(renewals, 1)

	s.Len(s.tenantNotifications(types.NotificationTypeLeaseRenewed), 1)
}

func (s *LeaseServiceTestSuite) TestRenewExpiredLeaseReactivates() {
	l := s.seedLease(types.LeaseStatusExpired, "prop_1", decimal.NewFromInt(1000))

	resp, err := s.leaseService.RenewLease(s.GetContext(), l.ID, &dto.RenewLeaseRequest{
		NewEndDate: "2025-06-30",
	})
	s.Require().NoError(err)
	s.Equal(types.LeaseStatusActive, resp.Lease.LeaseStatus)

	// Rent defaults to the current rent, so no increase
	s.True(resp.Lease.MonthlyRent.Equal(decimal.NewFromInt(1000)))
	s.True(resp.Renewal.RentIncreasePct.IsZero())
}

func (s *LeaseServiceTestSuite) TestRenewRejectsInvalidStates() {
	s.Run("pending lease", func() {
		l := s.seedLease(types.LeaseStatusPending, "prop_pending", decimal.NewFromInt(1000))
		_, err := s.leaseService.RenewLease(s.GetContext(), l.ID, &dto.RenewLeaseRequest{
			NewEndDate: "2025-12-31",
		})
		s.Require().Error(err)
		s.True(ierr.IsInvalidOperation(err))
	})

	s.Run("end date not extended", func() {
		l := s.seedLease(types.LeaseStatusActive, "prop_active", decimal.NewFromInt(1000))
		_, err := s.leaseService.RenewLease(s.GetContext(), l.ID, &dto.RenewLeaseRequest{
			NewEndDate: "2024-12-31",
		})
		s.Require().Error(err)
		s.True(ierr.IsValidation(err))
	})

	s.Run("non positive rent", func() {
		l := s.seedLease(types.LeaseStatusActive, "prop_rent", decimal.NewFromInt(1000))
		_, err := s.leaseService.RenewLease(s.GetContext(), l.ID, &dto.RenewLeaseRequest{
			NewEndDate:     "2025-12-31",
			NewMonthlyRent: lo.ToPtr(decimal.Zero),
		})
		s.Require().Error(err)
		s.True(ierr.IsValidation(err))
	})
}

func (s *LeaseServiceTestSuite) TestPropertySyncFailureDoesNotFailOperation() {
	s.GetStores().PropertySyncer.Err = ierr.NewError("sync unavailable").Mark(ierr.ErrInternal)

	req := s.createRequest()
	req.AdvancePaymentMonths = 0
	req.SecurityDepositMonths = 0

	resp, err := s.leaseService.CreateLease(s.GetContext(), req)
	s.Require().NoError(err)

	stored, err := s.GetStores().LeaseRepo.Get(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal(types.LeaseStatusActive, stored.LeaseStatus)
}

func (s *LeaseServiceTestSuite) TestGetAndListLeases() {
	l := s.seedLease(types.LeaseStatusActive, "prop_1", decimal.NewFromInt(1000))
	s.seedLease(types.LeaseStatusTerminated, "prop_2", decimal.NewFromInt(800))

	got, err := s.leaseService.GetLease(s.GetContext(), l.ID)
	s.Require().NoError(err)
	s.Equal(l.ID, got.ID)

	_, err = s.leaseService.GetLease(s.GetContext(), "lease_missing")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))

	listed, err := s.leaseService.ListLeases(s.GetContext(), &lease.Filter{
		Statuses: []types.LeaseStatus{types.LeaseStatusActive},
	})
	s.Require().NoError(err)
	s.Equal(1, listed.Total)
	s.Equal(l.ID, listed.Items[0].ID)
}
