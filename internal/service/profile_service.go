package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type ProfileService interface {
	GetAccess(ctx context.Context, userID int64) (*Access, error)
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, pu *transfer.ProfileUpdate) (*models.Profile, error)
}

type profileService struct {
	pr repository.ProfileRepository
}

func NewProfileService(pr repository.ProfileRepository) ProfileService {
	return &profileService{
		pr: pr,
	}
}

func (s *profileService) GetAccess(ctx context.Context, userID int64) (*Access, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	access := &Access{
		UserID:      userID,
		WorkspaceID: profile.WorkspaceID,
		Role:        profile.Role,
		Tier:        profile.Tier,
		Status:      profile.SubscriptionStatus,
	}

	if profile.Role == models.RoleOwner {
		return access, nil
	}

	owner, isExist, err := s.pr.GetWorkspaceOwner(ctx, profile.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("load workspace owner: %w", err)
	}
	if !isExist {
		slog.Info("workspace owner profile missing", "workspace_id", profile.WorkspaceID)
		return access, nil
	}

	access.Tier = owner.Tier
	access.Status = owner.SubscriptionStatus
	return access, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, isExist, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !isExist {
		return nil, fmt.Errorf("profile for user %d: %w", userID, ErrNotFound)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID int64, pu *transfer.ProfileUpdate) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.FullName = pu.FullName
	profile.Company = pu.Company
	profile.Phone = pu.Phone

	if err := s.pr.UpdateDetails(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}
