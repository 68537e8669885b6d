package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/leaseflow/leaseflow/internal/domain/charge"
	"github.com/leaseflow/leaseflow/internal/domain/lease"
	"github.com/leaseflow/leaseflow/internal/testutil"
	"github.com/leaseflow/leaseflow/internal/types"
)

type ReminderServiceTestSuite struct {
	testutil.BaseServiceTestSuite
	reminderService ReminderService
	today           time.Time
	lease           *lease.Lease
}

func TestReminderService(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}

func (s *ReminderServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.today = types.ToDate(time.Now())

	stores := s.GetStores()
	s.reminderService = NewReminderService(ServiceParams{
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
	})

	s.lease = &lease.Lease{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEASE),
		TenantID:         "user_tenant",
		PropertyID:       "prop_1",
		StartDate:        s.today.AddDate(0, -6, 0),
		EndDate:          s.today.AddDate(0, 6, 0),
		MonthlyRent:      decimal.NewFromInt(1200),
		LeaseStatus:      types.LeaseStatusActive,
		PaymentFrequency: types.BillingFrequencyMonthly,
		GracePeriodDays:  5,
		BaseModel:        types.GetDefaultBaseModel("user_test"),
	}
	s.Require().NoError(s.GetStores().LeaseRepo.Create(s.GetContext(), s.lease))
}

func (s *ReminderServiceTestSuite) seedCharge(dueDate time.Time, status types.ChargeStatus) *charge.Charge {
	c := &charge.Charge{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHARGE),
		LeaseID:      s.lease.ID,
		ChargeType:   types.ChargeTypeRent,
		Description:  "Monthly Rent",
		Amount:       decimal.NewFromInt(1200),
		ChargeDate:   dueDate,
		DueDate:      dueDate,
		ChargeStatus: status,
		BaseModel:    types.GetDefaultBaseModel("user_test"),
	}
	s.Require().NoError(s.GetStores().ChargeRepo.Create(s.GetContext(), c))
	return c
}

func (s *ReminderServiceTestSuite) reminders() []map[string]string {
	inbox, err := s.GetStores().NotificationRepo.ListByUser(s.GetContext(), "user_tenant", 0)
	s.Require().NoError(err)

	out := make([]map[string]string, 0, len(inbox))
	for _, n := range inbox {
		if n.Type == types.NotificationTypePaymentReminder {
			out = append(out, n.Meta)
		}
	}
	return out
}

func (s *ReminderServiceTestSuite) TestUpcomingReminder() {
	c := s.seedCharge(s.today.AddDate(0, 0, 7), types.ChargeStatusUnpaid)

	resp, err := s.reminderService.ScanAndNotify(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, resp.Scanned)
	s.Equal(1, resp.Created)

	reminders := s.reminders()
	s.Require().Len(reminders, 1)
	s.Equal(c.ID, reminders[0][types.MetaKeyChargeID])
	s.Equal(string(types.ReminderKindUpcoming), reminders[0][types.MetaKeyReminderKind])
}

func (s *ReminderServiceTestSuite) TestSameDayDeduplication() {
	s.seedCharge(s.today.AddDate(0, 0, 7), types.ChargeStatusUnpaid)

	resp, err := s.reminderService.ScanAndNotify(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, resp.Created)

	resp, err = s.reminderService.ScanAndNotify(s.GetContext())
	s.Require().NoError(err)
	s.Equal(0, resp.Created)
	s.Equal(1, resp.Skipped)

	s.Len(s.reminders(), 1)
}

func (s *ReminderServiceTestSuite) TestDueTodayReminder() {
	s.seedCharge(s.today, types.ChargeStatusPartiallyPaid)

	resp, err := s.reminderService.ScanAndNotify(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, resp.Created)

	reminders := s.reminders()
	s.Require().Len(reminders, 1)
	s.Equal(string(types.ReminderKindDueToday), reminders[0][types.MetaKeyReminderKind])
}

func (s *ReminderServiceTestSuite) TestAfterGraceReminder() {
	s.seedCharge(s.today.AddDate(0, 0, -5), types.ChargeStatusUnpaid)

	resp, err := s.reminderService.ScanAndNotify(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, resp.Created)

	reminders := s.reminders()
	s.Require().Len(reminders, 1)
	s.Equal(string(types.ReminderKindAfterGrace), reminders[0][types.MetaKeyReminderKind])
}

func (s *ReminderServiceTestSuite) TestNonMatchingChargesAreIgnored() {
	s.seedCharge(s.today.AddDate(0, 0, 3), types.ChargeStatusUnpaid)  // between kinds
	s.seedCharge(s.today.AddDate(0, 0, -2), types.ChargeStatusUnpaid) // inside grace
	s.seedCharge(s.today, types.ChargeStatusPaid)                     // settled

	resp, err := s.reminderService.ScanAndNotify(s.GetContext())
	s.Require().NoError(err)
	s.Equal(2, resp.Scanned)
	s.Equal(0, resp.Created)
	s.Empty(s.reminders())
}

func (s *ReminderServiceTestSuite) TestMissingLeaseDoesNotAbortScan() {
	orphan := &charge.Charge{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHARGE),
		LeaseID:      "lease_missing",
		ChargeType:   types.ChargeTypeRent,
		Amount:       decimal.NewFromInt(900),
		ChargeDate:   s.today,
		DueDate:      s.today,
		ChargeStatus: types.ChargeStatusUnpaid,
		BaseModel:    types.GetDefaultBaseModel("user_test"),
	}
	s.Require().NoError(s.GetStores().ChargeRepo.Create(s.GetContext(), orphan))
	s.seedCharge(s.today, types.ChargeStatusUnpaid)

	resp, err := s.reminderService.ScanAndNotify(s.GetContext())
	s.Require().NoError(err)
	s.Equal(2, resp.Scanned)
	s.Equal(1, resp.Created)
}

func TestEvaluateReminderKind(t *testing.T) {
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dueDate  time.Time
		grace    int
		wantKind types.ReminderKind
		wantOK   bool
	}{
		{
			name:     "due in exactly seven days",
			dueDate:  today.AddDate(0, 0, 7),
			grace:    5,
			wantKind: types.ReminderKindUpcoming,
			wantOK:   true,
		},
		{
			name:     "due today",
			dueDate:  today,
			grace:    5,
			wantKind: types.ReminderKindDueToday,
			wantOK:   true,
		},
		{
			name:     "grace period elapsed exactly",
			dueDate:  today.AddDate(0, 0, -5),
			grace:    5,
			wantKind: types.ReminderKindAfterGrace,
			wantOK:   true,
		},
		{
			name:    "one day past grace is silent",
			dueDate: today.AddDate(0, 0, -6),
			grace:   5,
			wantOK:  false,
		},
		{
			name:    "due in six days is silent",
			dueDate: today.AddDate(0, 0, 6),
			grace:   5,
			wantOK:  false,
		},
		{
			name:     "zero grace falls to due today",
			dueDate:  today,
			grace:    0,
			wantKind: types.ReminderKindDueToday,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := evaluateReminderKind(today, tt.dueDate, tt.grace)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}
