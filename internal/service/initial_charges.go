package service

import (
	"context"
	"fmt"

	"github.com/leaseflow/leaseflow/internal/api/dto"
	"github.com/leaseflow/leaseflow/internal/cache"
	"github.com/leaseflow/leaseflow/internal/domain/charge"
	"github.com/leaseflow/leaseflow/internal/domain/lease"
	"github.com/leaseflow/leaseflow/internal/domain/notification"
	"github.com/leaseflow/leaseflow/internal/domain/user"
	"github.com/leaseflow/leaseflow/internal/types"
)

const adminRecipientsCacheKey = "users:admin_recipients"

// InitialChargeService generates the upfront charges a new lease owes:
// advance payment and security deposit installments, each one month of rent
// due on the lease start date.
type InitialChargeService interface {
	// GenerateForLease attempts every installment independently; a failed
	// unit is logged and counted, the rest are still attempted. Admins
	// receive one summary notification per run.
	GenerateForLease(ctx context.Context, l *lease.Lease) (*dto.InitialChargesResult, error)
}

type initialChargeService struct {
	ServiceParams
	notifier NotificationService
}

// NewInitialChargeService creates a new initial charge service
func NewInitialChargeService(params ServiceParams) InitialChargeService {
	return &initialChargeService{
		ServiceParams: params,
		notifier:      NewNotificationService(params),
	}
}

func (s *initialChargeService) GenerateForLease(ctx context.Context, l *lease.Lease) (*dto.InitialChargesResult, error) {
	result := &dto.InitialChargesResult{LeaseID: l.ID}
	userID := types.GetUserID(ctx)
	chargeDate := types.ToDate(l.StartDate)

	for i := 1; i <= l.AdvancePaymentMonths; i++ {
		c := &charge.Charge{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHARGE),
			LeaseID:      l.ID,
			ChargeType:   types.ChargeTypeAdvancePayment,
			Description:  fmt.Sprintf("Advance Payment %d of %d", i, l.AdvancePaymentMonths),
			Amount:       l.MonthlyRent,
			ChargeDate:   chargeDate,
			DueDate:      chargeDate,
			ChargeStatus: types.ChargeStatusUnpaid,
			BaseModel:    types.GetDefaultBaseModel(userID),
		}
		if err := s.ChargeRepo.Create(ctx, c); err != nil {
			s.Logger.Errorw("failed to create advance payment charge",
				"lease_id", l.ID, "installment", i, "error", err)
			result.Failed++
			continue
		}
		result.AdvanceCreated++
		result.TotalAmount = result.TotalAmount.Add(c.Amount)
	}

	for i := 1; i <= l.SecurityDepositMonths; i++ {
		c := &charge.Charge{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHARGE),
			LeaseID:      l.ID,
			ChargeType:   types.ChargeTypeSecurityDeposit,
			Description:  fmt.Sprintf("Security Deposit %d of %d", i, l.SecurityDepositMonths),
			Amount:       l.MonthlyRent,
			ChargeDate:   chargeDate,
			DueDate:      chargeDate,
			ChargeStatus: types.ChargeStatusUnpaid,
			BaseModel:    types.GetDefaultBaseModel(userID),
		}
		if err := s.ChargeRepo.Create(ctx, c); err != nil {
			s.Logger.Errorw("failed to create security deposit charge",
				"lease_id", l.ID, "installment", i, "error", err)
			result.Failed++
			continue
		}
		result.DepositCreated++
		result.TotalAmount = result.TotalAmount.Add(c.Amount)
	}

	s.Logger.Infow("initial charge generation complete",
		"lease_id", l.ID,
		"advance_created", result.AdvanceCreated,
		"deposit_created", result.DepositCreated,
		"failed", result.Failed,
		"total_amount", result.TotalAmount.String(),
	)

	s.notifyAdmins(ctx, l, result)
	return result, nil
}

func (s *initialChargeService) notifyAdmins(ctx context.Context, l *lease.Lease, result *dto.InitialChargesResult) {
	admins, err := s.adminRecipients(ctx)
	if err != nil {
		s.Logger.Errorw("failed to load admin recipients for charge summary",
			"lease_id", l.ID, "error", err)
		return
	}

	body := fmt.Sprintf(
		"%d advance payment and %d security deposit charges were generated for lease %s, totalling %s.",
		result.AdvanceCreated, result.DepositCreated, l.ID, result.TotalAmount.String(),
	)
	if result.Failed > 0 {
		body += fmt.Sprintf(" %d charge(s) could not be created.", result.Failed)
	}

	for _, admin := range admins {
		n := &notification.Notification{
			UserID: admin.ID,
			Type:   types.NotificationTypeChargesGenerated,
			Title:  "Initial charges generated",
			Body:   body,
			Meta:   map[string]string{types.MetaKeyLeaseID: l.ID},
		}
		if err := s.notifier.Send(ctx, n); err != nil {
			s.Logger.Errorw("failed to send charge summary notification",
				"lease_id", l.ID, "admin_id", admin.ID, "error", err)
		}
	}
}

func (s *initialChargeService) adminRecipients(ctx context.Context) ([]*user.User, error) {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, adminRecipientsCacheKey); ok {
			if admins, ok := cached.([]*user.User); ok {
				return admins, nil
			}
		}
	}

	admins, err := s.UserRepo.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(ctx, adminRecipientsCacheKey, admins, cache.ExpiryAdminRecipients)
	}
	return admins, nil
}
