package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sourcegraph/conc"

	"github.com/leaseflow/leaseflow/internal/api/dto"
	"github.com/leaseflow/leaseflow/internal/domain/lease"
	"github.com/leaseflow/leaseflow/internal/domain/notification"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// advisoryLocker is implemented by the postgres client; other IClient
// implementations (tests, sqlite) fall back to the transactional existence
// check alone.
type advisoryLocker interface {
	LockKey(ctx context.Context, req types.LockRequest) error
}

// LeaseService owns the lease lifecycle: creation, partial update,
// termination and renewal, with their transactional invariants. Side effects
// (property sync, initial charges, notifications) run after commit and never
// fail the operation.
type LeaseService interface {
	CreateLease(ctx context.Context, req *dto.CreateLeaseRequest) (*dto.LeaseResponse, error)
	GetLease(ctx context.Context, id string) (*dto.LeaseResponse, error)
	ListLeases(ctx context.Context, filter *lease.Filter) (*dto.ListLeasesResponse, error)
	UpdateLease(ctx context.Context, id string, req *dto.UpdateLeaseRequest) (*dto.LeaseResponse, error)
	TerminateLease(ctx context.Context, id string, req *dto.TerminateLeaseRequest) (*dto.TerminateLeaseResponse, error)
	RenewLease(ctx context.Context, id string, req *dto.RenewLeaseRequest) (*dto.RenewLeaseResponse, error)
}

type leaseService struct {
	ServiceParams
	notifier       NotificationService
	initialCharges InitialChargeService
}

// NewLeaseService creates a new lease service
func NewLeaseService(params ServiceParams) LeaseService {
	return &leaseService{
		ServiceParams:  params,
		notifier:       NewNotificationService(params),
		initialCharges: NewInitialChargeService(params),
	}
}

func (s *leaseService) CreateLease(ctx context.Context, req *dto.CreateLeaseRequest) (*dto.LeaseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l := req.ToLease(ctx)
	if err := l.Validate(); err != nil {
		return nil, err
	}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		// Serialize concurrent creates against the same property; on stores
		// without advisory locks the locked existence check below plus the
		// partial unique index carry the invariant.
		if locker, ok := s.DB.(advisoryLocker); ok {
			key := types.GenerateLockKey(types.LockScopeLeaseProperty,
				map[string]interface{}{"property_id": l.PropertyID})
			if err := locker.LockKey(ctx, types.LockRequest{Key: key}); err != nil {
				return ierr.WithError(err).
					WithHint("Could not serialize lease creation for this property").
					WithReportableDetails(map[string]interface{}{"property_id": l.PropertyID}).
					Mark(ierr.ErrDatabase)
			}
		}

		exists, err := s.LeaseRepo.ExistsActiveOrPendingForProperty(ctx, l.PropertyID, "")
		if err != nil {
			return err
		}
		if exists {
			return ierr.NewError("property already has an active or pending lease").
				WithHint("The property is already reserved or occupied by another lease").
				WithReportableDetails(map[string]interface{}{"property_id": l.PropertyID}).
				Mark(ierr.ErrAlreadyExists)
		}

		if err := s.LeaseRepo.Create(ctx, l); err != nil {
			return err
		}

		if contract := req.ToContract(ctx, l.ID); contract != nil {
			if err := s.LeaseRepo.CreateContract(ctx, contract); err != nil {
				return err
			}
			l.ContractID = &contract.ID
			if err := s.LeaseRepo.Update(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("lease created",
		"lease_id", l.ID,
		"property_id", l.PropertyID,
		"tenant_id", l.TenantID,
		"lease_status", l.LeaseStatus,
	)

	s.runPostCommitEffects(ctx, l.ID,
		func(ctx context.Context) { s.syncPropertyStatus(ctx, l) },
		func(ctx context.Context) {
			if _, err := s.initialCharges.GenerateForLease(ctx, l); err != nil {
				s.Logger.Errorw("initial charge generation failed", "lease_id", l.ID, "error", err)
			}
		},
		func(ctx context.Context) {
			s.notifyTenant(ctx, l, types.NotificationTypeLeaseCreated,
				"Lease created",
				fmt.Sprintf("Your lease starting %s has been created with monthly rent %s.",
					l.StartDate.Format(types.DateFormat), l.MonthlyRent.String()),
			)
		},
	)

	return dto.NewLeaseResponse(l), nil
}

func (s *leaseService) GetLease(ctx context.Context, id string) (*dto.LeaseResponse, error) {
	l, err := s.LeaseRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewLeaseResponse(l), nil
}

func (s *leaseService) ListLeases(ctx context.Context, filter *lease.Filter) (*dto.ListLeasesResponse, error) {
	if filter == nil {
		filter = lease.NewFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	leases, err := s.LeaseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.LeaseResponse, 0, len(leases))
	for _, l := range leases {
		items = append(items, dto.NewLeaseResponse(l))
	}
	return &dto.ListLeasesResponse{Items: items, Total: len(items)}, nil
}

func (s *leaseService) UpdateLease(ctx context.Context, id string, req *dto.UpdateLeaseRequest) (*dto.LeaseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *lease.Lease
	var statusChanged bool

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		l, err := s.LeaseRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		previousStatus := l.LeaseStatus
		req.Apply(l)
		if err := l.Validate(); err != nil {
			return err
		}

		l.UpdatedAt = time.Now().UTC()
		l.UpdatedBy = types.GetUserID(ctx)
		if err := s.LeaseRepo.Update(ctx, l); err != nil {
			return err
		}

		statusChanged = l.LeaseStatus != previousStatus
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	if statusChanged {
		s.runPostCommitEffects(ctx, updated.ID,
			func(ctx context.Context) { s.syncPropertyStatus(ctx, updated) },
			func(ctx context.Context) {
				s.notifyTenant(ctx, updated, types.NotificationTypeLeaseStatusUpdated,
					"Lease status updated",
					fmt.Sprintf("Your lease is now %s.", updated.LeaseStatus),
				)
			},
		)
	}

	return dto.NewLeaseResponse(updated), nil
}

func (s *leaseService) TerminateLease(ctx context.Context, id string, req *dto.TerminateLeaseRequest) (*dto.TerminateLeaseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var terminated *lease.Lease
	var termination *lease.Termination

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		l, err := s.LeaseRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if l.LeaseStatus.IsTerminal() {
			return ierr.NewErrorf("lease %s is already %s", l.ID, l.LeaseStatus).
				WithHint("This lease has already been terminated or cancelled").
				WithReportableDetails(map[string]interface{}{
					"lease_id":     l.ID,
					"lease_status": l.LeaseStatus,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		if !l.CanTerminate() {
			return ierr.NewErrorf("lease %s cannot be terminated from status %s", l.ID, l.LeaseStatus).
				WithHint("Only pending, active or expired leases can be terminated").
				WithReportableDetails(map[string]interface{}{
					"lease_id":     l.ID,
					"lease_status": l.LeaseStatus,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		userID := types.GetUserID(ctx)
		termination = &lease.Termination{
			ID:                    types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEASE_TERMINATION),
			LeaseID:               l.ID,
			TerminationDate:       req.GetTerminationDate(),
			Reason:                req.GetReason(),
			AdvancePaymentStatus:  req.GetAdvancePaymentStatus(),
			SecurityDepositStatus: req.GetSecurityDepositStatus(),
			Notes:                 req.Notes,
			BaseModel:             types.GetDefaultBaseModel(userID),
		}
		if err := s.LeaseRepo.CreateTermination(ctx, termination); err != nil {
			return err
		}

		l.LeaseStatus = types.LeaseStatusTerminated
		l.UpdatedAt = time.Now().UTC()
		l.UpdatedBy = userID
		if err := s.LeaseRepo.Update(ctx, l); err != nil {
			return err
		}

		terminated = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("lease terminated",
		"lease_id", terminated.ID,
		"reason", termination.Reason,
		"termination_date", termination.TerminationDate.Format(types.DateFormat),
	)

	s.runPostCommitEffects(ctx, terminated.ID,
		func(ctx context.Context) { s.syncPropertyStatus(ctx, terminated) },
		func(ctx context.Context) {
			s.notifyTenant(ctx, terminated, types.NotificationTypeLeaseTerminated,
				"Lease terminated",
				fmt.Sprintf("Your lease has been terminated effective %s.",
					termination.TerminationDate.Format(types.DateFormat)),
			)
		},
	)

	return &dto.TerminateLeaseResponse{
		Lease:       dto.NewLeaseResponse(terminated),
		Termination: termination,
	}, nil
}

func (s *leaseService) RenewLease(ctx context.Context, id string, req *dto.RenewLeaseRequest) (*dto.RenewLeaseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var renewed *lease.Lease
	var renewal *lease.Renewal

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		l, err := s.LeaseRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if !l.CanRenew() {
			return ierr.NewErrorf("lease %s cannot be renewed from status %s", l.ID, l.LeaseStatus).
				WithHint("Only active or expired leases can be renewed").
				WithReportableDetails(map[string]interface{}{
					"lease_id":     l.ID,
					"lease_status": l.LeaseStatus,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		newEndDate := req.GetNewEndDate()
		if !newEndDate.After(types.ToDate(l.EndDate)) {
			return ierr.NewError("new end date must be after the current end date").
				WithHint("The renewal must extend the lease term").
				WithReportableDetails(map[string]interface{}{
					"current_end_date": l.EndDate.Format(types.DateFormat),
					"new_end_date":     newEndDate.Format(types.DateFormat),
				}).
				Mark(ierr.ErrValidation)
		}

		newRent := l.MonthlyRent
		if req.NewMonthlyRent != nil {
			newRent = *req.NewMonthlyRent
		}

		userID := types.GetUserID(ctx)
		renewal = &lease.Renewal{
			ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEASE_RENEWAL),
			LeaseID:         l.ID,
			PreviousEndDate: l.EndDate,
			NewEndDate:      newEndDate,
			PreviousRent:    l.MonthlyRent,
			NewRent:         newRent,
			RentIncreasePct: lease.RentIncreasePercentage(l.MonthlyRent, newRent),
			Notes:           req.Notes,
			BaseModel:       types.GetDefaultBaseModel(userID),
		}
		if err := s.LeaseRepo.CreateRenewal(ctx, renewal); err != nil {
			return err
		}

		l.EndDate = newEndDate
		l.MonthlyRent = newRent
		l.LeaseStatus = types.LeaseStatusActive
		l.RenewalCount++
		l.UpdatedAt = time.Now().UTC()
		l.UpdatedBy = userID
		if err := s.LeaseRepo.Update(ctx, l); err != nil {
			return err
		}

		renewed = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("lease renewed",
		"lease_id", renewed.ID,
		"new_end_date", renewed.EndDate.Format(types.DateFormat),
		"rent_increase_pct", renewal.RentIncreasePct.String(),
		"renewal_count", renewed.RenewalCount,
	)

	s.runPostCommitEffects(ctx, renewed.ID,
		func(ctx context.Context) { s.syncPropertyStatus(ctx, renewed) },
		func(ctx context.Context) {
			s.notifyTenant(ctx, renewed, types.NotificationTypeLeaseRenewed,
				"Lease renewed",
				fmt.Sprintf("Your lease has been renewed until %s.",
					renewed.EndDate.Format(types.DateFormat)),
			)
		},
	)

	return &dto.RenewLeaseResponse{
		Lease:   dto.NewLeaseResponse(renewed),
		Renewal: renewal,
	}, nil
}

// runPostCommitEffects executes side effects after a committed transaction.
// Each unit is recovered and logged independently; nothing here can fail the
// already-committed operation.
func (s *leaseService) runPostCommitEffects(ctx context.Context, leaseID string, effects ...func(ctx context.Context)) {
	var wg conc.WaitGroup
	for _, effect := range effects {
		effect := effect
		wg.Go(func() {
			defer func() {
				if r := recover(); r != nil {
					s.Logger.Errorw("post-commit side effect panicked",
						"lease_id", leaseID, "panic", r)
				}
			}()
			effect(ctx)
		})
	}
	wg.Wait()
}

// syncPropertyStatus derives the property occupancy value from the lease
// status and pushes it to the synchronizer with capped retries.
func (s *leaseService) syncPropertyStatus(ctx context.Context, l *lease.Lease) {
	status, ok := types.PropertyStatusForLease(l.LeaseStatus)
	if !ok {
		return
	}

	operation := func() error {
		return s.PropertySyncer.SetPropertyStatus(ctx, l.PropertyID, status)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		s.Logger.Errorw("property status sync failed",
			"lease_id", l.ID,
			"property_id", l.PropertyID,
			"property_status", status,
			"error", err,
		)
		return
	}

	s.Logger.Debugw("property status synced",
		"property_id", l.PropertyID, "property_status", status)
}

func (s *leaseService) notifyTenant(ctx context.Context, l *lease.Lease, notificationType types.NotificationType, title, body string) {
	n := &notification.Notification{
		UserID: l.TenantID,
		Type:   notificationType,
		Title:  title,
		Body:   body,
		Meta:   map[string]string{types.MetaKeyLeaseID: l.ID},
	}
	if err := s.notifier.Send(ctx, n); err != nil {
		s.Logger.Errorw("failed to send lease notification",
			"lease_id", l.ID,
			"tenant_id", l.TenantID,
			"type", notificationType,
			"error", err,
		)
	}
}
