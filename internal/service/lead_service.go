package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

const entityLead = "lead"

type LeadService interface {
	Create(ctx context.Context, a *Access, in *transfer.LeadInput) (*models.Lead, error)
	Get(ctx context.Context, a *Access, id int64) (*models.Lead, error)
	List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Lead, error)
	Update(ctx context.Context, a *Access, id int64, in *transfer.LeadInput) (*models.Lead, error)
	Remove(ctx context.Context, a *Access, id int64) error
}

type leadService struct {
	lr  repository.LeadRepository
	pr  repository.PropertyRepository
	act ActivityService
}

func NewLeadService(lr repository.LeadRepository, pr repository.PropertyRepository, act ActivityService) LeadService {
	return &leadService{
		lr:  lr,
		pr:  pr,
		act: act,
	}
}

func (s *leadService) Create(ctx context.Context, a *Access, in *transfer.LeadInput) (*models.Lead, error) {
	if err := s.check(ctx, a, in); err != nil {
		return nil, err
	}

	count, err := s.lr.CountByWorkspace(ctx, a.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	if limit := plans.LeadLimit(a.EffectiveTier()); !plans.WithinLimit(count, limit) {
		return nil, fmt.Errorf("%d leads allowed on this plan: %w", limit, ErrLimitReached)
	}

	lead := &models.Lead{
		WorkspaceID: a.WorkspaceID,
		OwnerID:     a.UserID,
		Status:      models.LeadStatusNew,
	}
	applyLeadInput(lead, in)

	id, err := s.lr.Create(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	lead.ID = id

	s.act.Record(ctx, a, models.ActionCreate, entityLead, id)
	return lead, nil
}

func (s *leadService) Get(ctx context.Context, a *Access, id int64) (*models.Lead, error) {
	lead, isExist, err := s.lr.GetByID(ctx, a.WorkspaceID, id)
	if err != nil {
		return nil, fmt.Errorf("load lead: %w", err)
	}
	if !isExist {
		return nil, fmt.Errorf("lead %d: %w", id, ErrNotFound)
	}
	return lead, nil
}

// List shows the whole workspace pipeline only when the plan shares it;
// otherwise callers see the leads they own.
func (s *leadService) List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Lead, error) {
	filter.OwnerID = 0
	if !a.Can(plans.FeatureSharedPipeline) {
		filter.OwnerID = a.UserID
	}
	return s.lr.List(ctx, a.WorkspaceID, filter)
}

func (s *leadService) Update(ctx context.Context, a *Access, id int64, in *transfer.LeadInput) (*models.Lead, error) {
	if err := s.check(ctx, a, in); err != nil {
		return nil, err
	}

	lead, err := s.Get(ctx, a, id)
	if err != nil {
		return nil, err
	}
	applyLeadInput(lead, in)

	ok, err := s.lr.Update(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("lead %d: %w", id, ErrNotFound)
	}

	s.act.Record(ctx, a, models.ActionUpdate, entityLead, id)
	return lead, nil
}

func (s *leadService) Remove(ctx context.Context, a *Access, id int64) error {
	ok, err := s.lr.Remove(ctx, a.WorkspaceID, id)
	if err != nil {
		return fmt.Errorf("remove lead: %w", err)
	}
	if !ok {
		return fmt.Errorf("lead %d: %w", id, ErrNotFound)
	}

	s.act.Record(ctx, a, models.ActionDelete, entityLead, id)
	return nil
}

func (s *leadService) check(ctx context.Context, a *Access, in *transfer.LeadInput) error {
	if in.Budget.IsNegative() {
		return fmt.Errorf("budget must not be negative: %w", ErrValidation)
	}
	if in.PropertyID == nil {
		return nil
	}

	_, isExist, err := s.pr.GetByID(ctx, a.WorkspaceID, *in.PropertyID)
	if err != nil {
		return fmt.Errorf("load property: %w", err)
	}
	if !isExist {
		return fmt.Errorf("property %d: %w", *in.PropertyID, ErrValidation)
	}
	return nil
}

func applyLeadInput(lead *models.Lead, in *transfer.LeadInput) {
	lead.Name = in.Name
	lead.Email = in.Email
	lead.Phone = in.Phone
	lead.Source = in.Source
	lead.Budget = in.Budget
	lead.Notes = in.Notes
	lead.PropertyID = in.PropertyID
	if in.Status != "" {
		lead.Status = in.Status
	}
}
