package service

import (
	"context"
	"fmt"
	"time"

	"github.com/leaseflow/leaseflow/internal/api/dto"
	"github.com/leaseflow/leaseflow/internal/domain/charge"
	"github.com/leaseflow/leaseflow/internal/domain/lease"
	"github.com/leaseflow/leaseflow/internal/domain/notification"
	"github.com/leaseflow/leaseflow/internal/types"
)

// upcomingReminderDays is how many days before the due date the UPCOMING
// reminder fires
const upcomingReminderDays = 7

// ReminderService scans outstanding charges and emits deduplicated payment
// reminders at three lifecycle points: a week before the due date, on the
// due date, and the day the lease's grace period elapses.
type ReminderService interface {
	// ScanAndNotify runs one reminder scan. A failure on one charge is
	// logged and does not stop the rest of the scan.
	ScanAndNotify(ctx context.Context) (*dto.ReminderScanResponse, error)
}

type reminderService struct {
	ServiceParams
	notifier NotificationService
}

// NewReminderService creates a new reminder service
func NewReminderService(params ServiceParams) ReminderService {
	return &reminderService{
		ServiceParams: params,
		notifier:      NewNotificationService(params),
	}
}

func (s *reminderService) ScanAndNotify(ctx context.Context) (*dto.ReminderScanResponse, error) {
	charges, err := s.ChargeRepo.ListOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	today := types.ToDate(time.Now())
	resp := &dto.ReminderScanResponse{Scanned: len(charges)}

	// Charges cluster per lease; avoid refetching the same lease
	leases := make(map[string]*lease.Lease)

	for _, c := range charges {
		l, ok := leases[c.LeaseID]
		if !ok {
			l, err = s.LeaseRepo.Get(ctx, c.LeaseID)
			if err != nil {
				s.Logger.Errorw("failed to load lease for reminder scan",
					"charge_id", c.ID, "lease_id", c.LeaseID, "error", err)
				continue
			}
			leases[c.LeaseID] = l
		}

		kind, ok := evaluateReminderKind(today, types.ToDate(c.DueDate), l.GracePeriodDays)
		if !ok {
			continue
		}

		created, err := s.remind(ctx, c, l, kind, today)
		if err != nil {
			s.Logger.Errorw("failed to create payment reminder",
				"charge_id", c.ID, "reminder_kind", kind, "error", err)
			continue
		}
		if created {
			resp.Created++
		} else {
			resp.Skipped++
		}
	}

	s.Logger.Infow("reminder scan complete",
		"scanned", resp.Scanned,
		"created", resp.Created,
		"skipped", resp.Skipped,
	)
	return resp, nil
}

// evaluateReminderKind returns the reminder kind due today for a charge, if
// any. The three kinds are mutually exclusive for a given (today, due date,
// grace) triple.
func evaluateReminderKind(today, dueDate time.Time, gracePeriodDays int) (types.ReminderKind, bool) {
	daysUntilDue := types.DaysBetween(today, dueDate)

	switch {
	case daysUntilDue == upcomingReminderDays:
		return types.ReminderKindUpcoming, true
	case daysUntilDue == 0:
		return types.ReminderKindDueToday, true
	case gracePeriodDays > 0 && daysUntilDue == -gracePeriodDays:
		return types.ReminderKindAfterGrace, true
	default:
		return "", false
	}
}

// remind emits the reminder unless an identical one was already created
// today for the same charge and recipient.
func (s *reminderService) remind(ctx context.Context, c *charge.Charge, l *lease.Lease, kind types.ReminderKind, today time.Time) (bool, error) {
	meta := map[string]string{
		types.MetaKeyChargeID:     c.ID,
		types.MetaKeyReminderKind: string(kind),
	}

	exists, err := s.NotificationRepo.ExistsWithMeta(ctx, l.TenantID, meta, today)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	title, body := reminderContent(kind, c, l)
	meta[types.MetaKeyLeaseID] = l.ID

	n := &notification.Notification{
		UserID: l.TenantID,
		Type:   types.NotificationTypePaymentReminder,
		Title:  title,
		Body:   body,
		Meta:   meta,
	}
	if err := s.notifier.Send(ctx, n); err != nil {
		return false, err
	}
	return true, nil
}

func reminderContent(kind types.ReminderKind, c *charge.Charge, l *lease.Lease) (string, string) {
	amount := c.Amount.String()
	dueDate := c.DueDate.Format(types.DateFormat)

	switch kind {
	case types.ReminderKindUpcoming:
		return "Payment due soon",
			fmt.Sprintf("Your %s payment of %s is due on %s.",
				chargeTypeLabel(c.ChargeType), amount, dueDate)
	case types.ReminderKindDueToday:
		return "Payment due today",
			fmt.Sprintf("Your %s payment of %s is due today.",
				chargeTypeLabel(c.ChargeType), amount)
	default:
		return "Payment overdue",
			fmt.Sprintf("Your %s payment of %s was due on %s and the %d-day grace period has elapsed.",
				chargeTypeLabel(c.ChargeType), amount, dueDate, l.GracePeriodDays)
	}
}

func chargeTypeLabel(t types.ChargeType) string {
	switch t {
	case types.ChargeTypeRent:
		return "rent"
	case types.ChargeTypeAdvancePayment:
		return "advance payment"
	case types.ChargeTypeSecurityDeposit:
		return "security deposit"
	case types.ChargeTypeLateFee:
		return "late fee"
	case types.ChargeTypeUtility:
		return "utility"
	default:
		return "charge"
	}
}
