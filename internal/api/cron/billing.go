package cron

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leaseflow/leaseflow/internal/api/dto"
	"github.com/leaseflow/leaseflow/internal/config"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/service"
)

// BillingCronHandler exposes the manual trigger variants of the two
// background jobs: recurring charge generation and the reminder scan.
type BillingCronHandler struct {
	recurringService service.RecurringChargeService
	reminderService  service.ReminderService
	config           *config.Configuration
	logger           *logger.Logger
}

// NewBillingCronHandler creates a new billing cron handler
func NewBillingCronHandler(
	recurringService service.RecurringChargeService,
	reminderService service.ReminderService,
	cfg *config.Configuration,
	logger *logger.Logger,
) *BillingCronHandler {
	return &BillingCronHandler{
		recurringService: recurringService,
		reminderService:  reminderService,
		config:           cfg,
		logger:           logger,
	}
}

// GenerateRecurringCharges triggers one recurring charge generation run.
// The body is optional; lookahead defaults to the configured window and
// dry_run reports the plan without writing.
func (h *BillingCronHandler) GenerateRecurringCharges(c *gin.Context) {
	var req dto.GenerateChargesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Errorw("failed to parse generate charges request", "error", err)
		apiErr := ierr.WithError(err).
			WithHint("Request body must be valid JSON").
			Mark(ierr.ErrValidation)
		c.JSON(ierr.HTTPStatusFromError(apiErr), ierr.NewErrorResponse(apiErr))
		return
	}

	resp, err := h.recurringService.GenerateDueCharges(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("recurring charge generation trigger failed", "error", err)
		c.JSON(ierr.HTTPStatusFromError(err), ierr.NewErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": resp})
}

// ScanReminders triggers one payment reminder scan
func (h *BillingCronHandler) ScanReminders(c *gin.Context) {
	resp, err := h.reminderService.ScanAndNotify(c.Request.Context())
	if err != nil {
		h.logger.Errorw("reminder scan trigger failed", "error", err)
		c.JSON(ierr.HTTPStatusFromError(err), ierr.NewErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": resp})
}
