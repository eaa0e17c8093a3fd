package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/pkg/utils"
)

const MaxApiKeys = 5

type ApiKeyService interface {
	Create(ctx context.Context, userID int64) (*models.ApiKey, error)
	List(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, apiKey string) (int64, error)
	RemoveAPIKey(ctx context.Context, userID, keyID int64) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{
		k: k,
	}
}

func (s *apiKeyService) Create(ctx context.Context, userID int64) (*models.ApiKey, error) {
	key, err := utils.GenerateApiKey()
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("generate API key: %w", err)
	}

	apiKey := &models.ApiKey{
		UserID: userID,
		ApiKey: key,
	}

	id, created, err := s.k.CreateWithin(ctx, apiKey, MaxApiKeys)
	if err != nil {
		return nil, fmt.Errorf("save API key: %w", err)
	}
	if !created {
		return nil, fmt.Errorf("only %d API keys can be created: %w", MaxApiKeys, ErrLimitReached)
	}
	apiKey.ID = id

	return apiKey, nil
}

func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (int64, error) {
	userID, isExist, err := s.k.UserIDByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}
	if !isExist {
		return 0, fmt.Errorf("api key: %w", ErrUnauthorized)
	}
	return userID, nil
}

func (s *apiKeyService) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	apiKeys, err := s.k.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list API keys: %w", err)
	}
	return apiKeys, nil
}

func (s *apiKeyService) RemoveAPIKey(ctx context.Context, userID, keyID int64) error {
	if keyID <= 0 {
		return fmt.Errorf("key id: %w", ErrValidation)
	}

	removed, err := s.k.Remove(ctx, userID, keyID)
	if err != nil {
		return fmt.Errorf("remove API key: %w", err)
	}
	if !removed {
		return fmt.Errorf("api key %d: %w", keyID, ErrNotFound)
	}
	return nil
}
