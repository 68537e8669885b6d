package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/leaseflow/leaseflow/internal/api/dto"
	"github.com/leaseflow/leaseflow/internal/domain/billingtemplate"
	"github.com/leaseflow/leaseflow/internal/domain/charge"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/testutil"
	"github.com/leaseflow/leaseflow/internal/types"
)

type RecurringChargeServiceTestSuite struct {
	testutil.BaseServiceTestSuite
	recurringService RecurringChargeService
	today            time.Time
}

func TestRecurringChargeService(t *testing.T) {
	suite.Run(t, new(RecurringChargeServiceTestSuite))
}

func (s *RecurringChargeServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.today = types.ToDate(time.Now())

	stores := s.GetStores()
	s.recurringService = NewRecurringChargeService(ServiceParams{
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
}

func (s *RecurringChargeServiceTestSuite) seedTemplate(nextDue time.Time, until *time.Time) *billingtemplate.Template {
	tmpl := &billingtemplate.Template{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RECURRING_TEMPLATE),
		LeaseID:           "lease_1",
		Frequency:         types.BillingFrequencyMonthly,
		NextDue:           nextDue,
		AutoGenerateUntil: until,
		IsActive:          true,
		ChargeType:        types.ChargeTypeRent,
		Description:       "Monthly Rent",
		Amount:            decimal.NewFromInt(1500),
		BaseModel:         types.GetDefaultBaseModel("user_test"),
	}
	s.Require().NoError(s.GetStores().TemplateRepo.Create(s.GetContext(), tmpl))
	return tmpl
}

func (s *RecurringChargeServiceTestSuite) templateCharges(templateID string) []*charge.Charge {
	charges, err := s.GetStores().ChargeRepo.List(s.GetContext(), &charge.Filter{
		TemplateIDs: []string{templateID},
	})
	s.Require().NoError(err)
	return charges
}

func (s *RecurringChargeServiceTestSuite) TestGenerateCreatesChargeAndAdvances() {
	tmpl := s.seedTemplate(s.today, nil)

	resp, err := s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{})
	s.Require().NoError(err)
	s.Equal(1, resp.Created)
	s.Equal(0, resp.Skipped)
	s.Equal(0, resp.Deactivated)

	charges := s.templateCharges(tmpl.ID)
	s.Require().Len(charges, 1)
	c := charges[0]
	s.Equal("lease_1", c.LeaseID)
	s.Equal(types.ChargeTypeRent, c.ChargeType)
	s.True(c.Amount.Equal(decimal.NewFromInt(1500)))
	s.Equal(s.today, types.ToDate(c.DueDate))
	s.True(c.IsRecurring)
	s.Equal(types.ChargeStatusUnpaid, c.ChargeStatus)

	stored, err := s.GetStores().TemplateRepo.Get(s.GetContext(), tmpl.ID)
	s.Require().NoError(err)
	s.Equal(types.AddMonthsClamped(s.today, 1), types.ToDate(stored.NextDue))
	s.True(stored.IsActive)
}

func (s *RecurringChargeServiceTestSuite) TestGenerateIsIdempotentAcrossRuns() {
	tmpl := s.seedTemplate(s.today, nil)

	resp, err := s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{})
	s.Require().NoError(err)
	s.Equal(1, resp.Created)

	// Rewind next_due as a second overlapping runner would observe it
	stored, err := s.GetStores().TemplateRepo.Get(s.GetContext(), tmpl.ID)
	s.Require().NoError(err)
	stored.NextDue = s.today
	s.Require().NoError(s.GetStores().TemplateRepo.Update(s.GetContext(), stored))

	resp, err = s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{})
	s.Require().NoError(err)
	s.Equal(0, resp.Created)
	s.Equal(1, resp.Skipped)

	s.Len(s.templateCharges(tmpl.ID), 1)
}

func (s *RecurringChargeServiceTestSuite) TestExhaustedWindowDeactivatesWithoutCharge() {
	yesterday := s.today.AddDate(0, 0, -1)
	tmpl := s.seedTemplate(s.today, &yesterday)

	resp, err := s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{})
	s.Require().NoError(err)
	s.Equal(0, resp.Created)
	s.Equal(1, resp.Deactivated)

	s.Empty(s.templateCharges(tmpl.ID))

	stored, err := s.GetStores().TemplateRepo.Get(s.GetContext(), tmpl.ID)
	s.Require().NoError(err)
	s.False(stored.IsActive)
}

func (s *RecurringChargeServiceTestSuite) TestAdvancePastWindowDeactivatesInSameUpdate() {
	// Window closes today: today's charge is emitted, the advanced next_due
	// overshoots and the template is switched off in the same update
	until := s.today
	tmpl := s.seedTemplate(s.today, &until)

	resp, err := s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{})
	s.Require().NoError(err)
	s.Equal(1, resp.Created)
	s.Equal(1, resp.Deactivated)

	s.Len(s.templateCharges(tmpl.ID), 1)

	stored, err := s.GetStores().TemplateRepo.Get(s.GetContext(), tmpl.ID)
	s.Require().NoError(err)
	s.False(stored.IsActive)

	// No further charge is emitted once the template is inactive
	resp, err = s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{})
	s.Require().NoError(err)
	s.Equal(0, resp.Created)
	s.Len(s.templateCharges(tmpl.ID), 1)
}

func (s *RecurringChargeServiceTestSuite) TestDryRunWritesNothing() {
	tmpl := s.seedTemplate(s.today, nil)

	resp, err := s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{DryRun: true})
	s.Require().NoError(err)
	s.True(resp.DryRun)
	s.Equal(0, resp.Created)
	s.Require().Len(resp.WouldCreate, 1)
	s.Equal(tmpl.ID, resp.WouldCreate[0].TemplateID)
	s.True(resp.WouldCreate[0].Amount.Equal(decimal.NewFromInt(1500)))

	s.Empty(s.templateCharges(tmpl.ID))

	stored, err := s.GetStores().TemplateRepo.Get(s.GetContext(), tmpl.ID)
	s.Require().NoError(err)
	s.Equal(s.today, types.ToDate(stored.NextDue))
	s.True(stored.IsActive)
}

func (s *RecurringChargeServiceTestSuite) TestLookaheadWindowBoundsSelection() {
	within := s.seedTemplate(s.today.AddDate(0, 0, 2), nil)
	beyond := s.seedTemplate(s.today.AddDate(0, 0, 10), nil)

	resp, err := s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{LookaheadDays: 3})
	s.Require().NoError(err)
	s.Equal(1, resp.Created)

	s.Len(s.templateCharges(within.ID), 1)
	s.Empty(s.templateCharges(beyond.ID))
}

func (s *RecurringChargeServiceTestSuite) TestNegativeLookaheadRejected() {
	_, err := s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{LookaheadDays: -1})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *RecurringChargeServiceTestSuite) TestQuarterlyAdvance() {
	tmpl := s.seedTemplate(s.today, nil)
	tmpl.Frequency = types.BillingFrequencyQuarterly
	s.Require().NoError(s.GetStores().TemplateRepo.Update(s.GetContext(), tmpl))

	_, err := s.recurringService.GenerateDueCharges(s.GetContext(), &dto.GenerateChargesRequest{})
	s.Require().NoError(err)

	stored, err := s.GetStores().TemplateRepo.Get(s.GetContext(), tmpl.ID)
	s.Require().NoError(err)
	s.Equal(types.AddMonthsClamped(s.today, 3), types.ToDate(stored.NextDue))
}
