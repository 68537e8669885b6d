package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/leaseflow/leaseflow/internal/config"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/service"
)

// ReminderScheduler owns the periodic payment reminder scan: a short delay
// after start (so boot-time load settles), then one scan per configured
// interval.
type ReminderScheduler struct {
	service service.ReminderService
	config  *config.Configuration
	logger  *logger.Logger

	mu           sync.Mutex
	cron         *cron.Cron
	initialTimer *time.Timer
}

// NewReminderScheduler creates the reminder scheduler
func NewReminderScheduler(svc service.ReminderService, cfg *config.Configuration, log *logger.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		service: svc,
		config:  cfg,
		logger:  log,
	}
}

// Start installs the interval job, cancelling any previous runner first so a
// double start never leaves two loops ticking.
func (s *ReminderScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	c := cron.New()
	schedule := fmt.Sprintf("@every %dh", s.config.Schedulers.ReminderIntervalHours)
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to schedule reminder scan").
			WithReportableDetails(map[string]interface{}{"schedule": schedule}).
			Mark(ierr.ErrInternal)
	}
	s.cron = c
	c.Start()

	s.initialTimer = time.AfterFunc(s.config.Schedulers.ReminderInitialDelay, s.run)

	s.logger.Infow("reminder scheduler started",
		"interval_hours", s.config.Schedulers.ReminderIntervalHours,
		"initial_delay", s.config.Schedulers.ReminderInitialDelay,
	)
	return nil
}

// Stop cancels the runner; safe to call repeatedly
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.logger.Infow("reminder scheduler stopped")
	}
	s.stopLocked()
}

func (s *ReminderScheduler) stopLocked() {
	if s.initialTimer != nil {
		s.initialTimer.Stop()
		s.initialTimer = nil
	}
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

func (s *ReminderScheduler) run() {
	resp, err := s.service.ScanAndNotify(context.Background())
	if err != nil {
		s.logger.Errorw("reminder scan run failed", "error", err)
		return
	}
	s.logger.Infow("reminder scan run finished",
		"scanned", resp.Scanned,
		"created", resp.Created,
		"skipped", resp.Skipped,
	)
}
