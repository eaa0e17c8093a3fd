package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	RemoveUser(ctx context.Context, a *Access) error
}

type userService struct {
	u repository.UserRepository
	p repository.ProfileRepository
}

func NewUserService(u repository.UserRepository, p repository.ProfileRepository) UserService {
	return &userService{
		u: u,
		p: p,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !isExist {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	return user, nil
}

// RemoveUser deletes the account. Owners must cancel billing and remove
// their members first since the workspace goes with them.
func (s *userService) RemoveUser(ctx context.Context, a *Access) error {
	if a.Role == models.RoleOwner {
		if a.Active() {
			return fmt.Errorf("cancel the active subscription first: %w", ErrForbidden)
		}
		members, err := s.p.CountMembers(ctx, a.WorkspaceID)
		if err != nil {
			return err
		}
		if members > 1 {
			return fmt.Errorf("workspace still has members: %w", ErrConflict)
		}
	}
	return s.u.Remove(ctx, a.UserID)
}
