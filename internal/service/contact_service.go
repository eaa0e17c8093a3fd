package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

const entityContact = "contact"

type ContactService interface {
	Create(ctx context.Context, a *Access, in *transfer.ContactInput) (*models.Contact, error)
	Get(ctx context.Context, a *Access, id int64) (*models.Contact, error)
	List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Contact, error)
	Update(ctx context.Context, a *Access, id int64, in *transfer.ContactInput) (*models.Contact, error)
	Remove(ctx context.Context, a *Access, id int64) error
}

type contactService struct {
	cr  repository.ContactRepository
	act ActivityService
}

func NewContactService(cr repository.ContactRepository, act ActivityService) ContactService {
	return &contactService{
		cr:  cr,
		act: act,
	}
}

func (s *contactService) Create(ctx context.Context, a *Access, in *transfer.ContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		WorkspaceID: a.WorkspaceID,
		OwnerID:     a.UserID,
		Kind:        models.ContactKindOther,
	}
	applyContactInput(contact, in)

	id, err := s.cr.Create(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	contact.ID = id

	s.act.Record(ctx, a, models.ActionCreate, entityContact, id)
	return contact, nil
}

func (s *contactService) Get(ctx context.Context, a *Access, id int64) (*models.Contact, error) {
	contact, isExist, err := s.cr.GetByID(ctx, a.WorkspaceID, id)
	if err != nil {
		return nil, fmt.Errorf("load contact: %w", err)
	}
	if !isExist {
		return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
	}
	return contact, nil
}

func (s *contactService) List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Contact, error) {
	return s.cr.List(ctx, a.WorkspaceID, filter)
}

func (s *contactService) Update(ctx context.Context, a *Access, id int64, in *transfer.ContactInput) (*models.Contact, error) {
	contact, err := s.Get(ctx, a, id)
	if err != nil {
		return nil, err
	}
	applyContactInput(contact, in)

	ok, err := s.cr.Update(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
	}

	s.act.Record(ctx, a, models.ActionUpdate, entityContact, id)
	return contact, nil
}

func (s *contactService) Remove(ctx context.Context, a *Access, id int64) error {
	ok, err := s.cr.Remove(ctx, a.WorkspaceID, id)
	if err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}
	if !ok {
		return fmt.Errorf("contact %d: %w", id, ErrNotFound)
	}

	s.act.Record(ctx, a, models.ActionDelete, entityContact, id)
	return nil
}

func applyContactInput(c *models.Contact, in *transfer.ContactInput) {
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Email = in.Email
	c.Phone = in.Phone
	c.Company = in.Company
	c.Notes = in.Notes
	if in.Kind != "" {
		c.Kind = in.Kind
	}
}
