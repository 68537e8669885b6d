package service

import (
	"context"
	"time"

	"github.com/leaseflow/leaseflow/internal/api/dto"
	"github.com/leaseflow/leaseflow/internal/domain/billingtemplate"
	"github.com/leaseflow/leaseflow/internal/domain/charge"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// RecurringChargeService advances recurring templates and idempotently emits
// the charges they are due to spawn.
type RecurringChargeService interface {
	// GenerateDueCharges runs one generation cycle over every active
	// template due within the lookahead window. Per-template errors are
	// logged and do not abort the run.
	GenerateDueCharges(ctx context.Context, req *dto.GenerateChargesRequest) (*dto.GenerateChargesResponse, error)
}

type recurringChargeService struct {
	ServiceParams
}

// NewRecurringChargeService creates a new recurring charge service
func NewRecurringChargeService(params ServiceParams) RecurringChargeService {
	return &recurringChargeService{ServiceParams: params}
}

func (s *recurringChargeService) GenerateDueCharges(ctx context.Context, req *dto.GenerateChargesRequest) (*dto.GenerateChargesResponse, error) {
	if req == nil {
		req = &dto.GenerateChargesRequest{}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lookahead := req.LookaheadDays
	if lookahead == 0 {
		lookahead = s.Config.Schedulers.RecurringLookaheadDays
	}

	today := types.ToDate(time.Now())
	until := today.AddDate(0, 0, lookahead)

	templates, err := s.TemplateRepo.ListDueWithin(ctx, today, until)
	if err != nil {
		return nil, err
	}

	resp := &dto.GenerateChargesResponse{DryRun: req.DryRun}
	for _, tmpl := range templates {
		if err := s.processTemplate(ctx, tmpl, req.DryRun, resp); err != nil {
			s.Logger.Errorw("recurring template processing failed",
				"template_id", tmpl.ID, "lease_id", tmpl.LeaseID, "error", err)
		}
	}

	s.Logger.Infow("recurring charge generation cycle complete",
		"templates", len(templates),
		"created", resp.Created,
		"skipped", resp.Skipped,
		"deactivated", resp.Deactivated,
		"dry_run", req.DryRun,
	)
	return resp, nil
}

func (s *recurringChargeService) processTemplate(ctx context.Context, tmpl *billingtemplate.Template, dryRun bool, resp *dto.GenerateChargesResponse) error {
	due := types.ToDate(tmpl.NextDue)

	if tmpl.WindowExhausted(due) {
		if !dryRun {
			tmpl.IsActive = false
			tmpl.UpdatedAt = time.Now().UTC()
			if err := s.TemplateRepo.Update(ctx, tmpl); err != nil {
				return err
			}
		}
		resp.Deactivated++
		return nil
	}

	exists, err := s.ChargeRepo.ExistsForTemplateAndDueDate(ctx, tmpl.ID, due)
	if err != nil {
		return err
	}
	if exists {
		resp.Skipped++
		return nil
	}

	if dryRun {
		resp.WouldCreate = append(resp.WouldCreate, dto.PlannedCharge{
			TemplateID: tmpl.ID,
			LeaseID:    tmpl.LeaseID,
			Amount:     tmpl.Amount,
			DueDate:    due,
		})
		return nil
	}

	// Charge emission and next_due advancement commit together so a crash
	// between the two cannot leave a template stuck re-emitting
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		templateID := tmpl.ID
		c := &charge.Charge{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHARGE),
			LeaseID:      tmpl.LeaseID,
			ChargeType:   tmpl.ChargeType,
			Description:  tmpl.Description,
			Amount:       tmpl.Amount,
			ChargeDate:   types.ToDate(time.Now()),
			DueDate:      due,
			IsRecurring:  true,
			TemplateID:   &templateID,
			ChargeStatus: types.ChargeStatusUnpaid,
			BaseModel:    types.GetDefaultBaseModel(types.GetUserID(ctx)),
		}
		if err := s.ChargeRepo.Create(ctx, c); err != nil {
			return err
		}

		tmpl.NextDue = tmpl.AdvanceNextDue()
		if tmpl.WindowExhausted(tmpl.NextDue) {
			tmpl.IsActive = false
			resp.Deactivated++
		}
		tmpl.UpdatedAt = time.Now().UTC()
		return s.TemplateRepo.Update(ctx, tmpl)
	})
	if err != nil {
		// A second replica emitting the same (template, due date) hits the
		// unique index; absorb it as a skip
		if ierr.IsAlreadyExists(err) {
			s.Logger.Warnw("duplicate recurring charge absorbed",
				"template_id", tmpl.ID, "due_date", due.Format(types.DateFormat))
			resp.Skipped++
			return nil
		}
		return err
	}

	resp.Created++
	return nil
}
