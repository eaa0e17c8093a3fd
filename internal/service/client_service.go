package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

const entityClient = "client"

type ClientService interface {
	Create(ctx context.Context, a *Access, in *transfer.ClientInput) (*models.Client, error)
	Get(ctx context.Context, a *Access, id int64) (*models.Client, error)
	List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Client, error)
	Update(ctx context.Context, a *Access, id int64, in *transfer.ClientInput) (*models.Client, error)
	Remove(ctx context.Context, a *Access, id int64) error
}

type clientService struct {
	cr  repository.ClientRepository
	act ActivityService
}

func NewClientService(cr repository.ClientRepository, act ActivityService) ClientService {
	return &clientService{
		cr:  cr,
		act: act,
	}
}

func (s *clientService) Create(ctx context.Context, a *Access, in *transfer.ClientInput) (*models.Client, error) {
	client := &models.Client{
		WorkspaceID: a.WorkspaceID,
		Status:      models.ClientStatusActive,
	}
	applyClientInput(client, in)

	id, err := s.cr.Create(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	client.ID = id

	s.act.Record(ctx, a, models.ActionCreate, entityClient, id)
	return client, nil
}

func (s *clientService) Get(ctx context.Context, a *Access, id int64) (*models.Client, error) {
	client, isExist, err := s.cr.GetByID(ctx, a.WorkspaceID, id)
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	if !isExist {
		return nil, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Client, error) {
	return s.cr.List(ctx, a.WorkspaceID, filter)
}

func (s *clientService) Update(ctx context.Context, a *Access, id int64, in *transfer.ClientInput) (*models.Client, error) {
	client, err := s.Get(ctx, a, id)
	if err != nil {
		return nil, err
	}
	applyClientInput(client, in)

	ok, err := s.cr.Update(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}

	s.act.Record(ctx, a, models.ActionUpdate, entityClient, id)
	return client, nil
}

func (s *clientService) Remove(ctx context.Context, a *Access, id int64) error {
	ok, err := s.cr.Remove(ctx, a.WorkspaceID, id)
	if err != nil {
		return fmt.Errorf("remove client: %w", err)
	}
	if !ok {
		return fmt.Errorf("client %d: %w", id, ErrNotFound)
	}

	s.act.Record(ctx, a, models.ActionDelete, entityClient, id)
	return nil
}

func applyClientInput(c *models.Client, in *transfer.ClientInput) {
	c.Name = in.Name
	c.Email = in.Email
	c.Company = in.Company
	c.Phone = in.Phone
	if in.Status != "" {
		c.Status = in.Status
	}
}
