package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/leaseflow/leaseflow/internal/api/dto"
	"github.com/leaseflow/leaseflow/internal/config"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/service"
)

// RecurringChargeScheduler owns the periodic recurring charge generation
// loop: an immediate run on start, then one run per configured interval.
type RecurringChargeScheduler struct {
	service service.RecurringChargeService
	config  *config.Configuration
	logger  *logger.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewRecurringChargeScheduler creates the recurring charge scheduler
func NewRecurringChargeScheduler(svc service.RecurringChargeService, cfg *config.Configuration, log *logger.Logger) *RecurringChargeScheduler {
	return &RecurringChargeScheduler{
		service: svc,
		config:  cfg,
		logger:  log,
	}
}

// Start installs the interval job, cancelling any previous runner first so a
// double start never leaves two loops ticking.
func (s *RecurringChargeScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	c := cron.New()
	schedule := fmt.Sprintf("@every %dm", s.config.Schedulers.RecurringIntervalMinutes)
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to schedule recurring charge generation").
			WithReportableDetails(map[string]interface{}{"schedule": schedule}).
			Mark(ierr.ErrInternal)
	}
	s.cron = c
	c.Start()

	go s.run()

	s.logger.Infow("recurring charge scheduler started",
		"interval_minutes", s.config.Schedulers.RecurringIntervalMinutes,
		"lookahead_days", s.config.Schedulers.RecurringLookaheadDays,
	)
	return nil
}

// Stop cancels the runner; safe to call repeatedly
func (s *RecurringChargeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.logger.Infow("recurring charge scheduler stopped")
	}
	s.stopLocked()
}

func (s *RecurringChargeScheduler) stopLocked() {
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

func (s *RecurringChargeScheduler) run() {
	req := &dto.GenerateChargesRequest{
		LookaheadDays: s.config.Schedulers.RecurringLookaheadDays,
	}
	resp, err := s.service.GenerateDueCharges(context.Background(), req)
	if err != nil {
		s.logger.Errorw("recurring charge generation run failed", "error", err)
		return
	}
	s.logger.Infow("recurring charge generation run finished",
		"created", resp.Created,
		"skipped", resp.Skipped,
		"deactivated", resp.Deactivated,
	)
}
