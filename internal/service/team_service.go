package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

const entityMember = "member"

type TeamService interface {
	ListMembers(ctx context.Context, a *Access) ([]*models.TeamMember, error)
	AddMember(ctx context.Context, a *Access, req *transfer.AddMemberRequest) (*models.TeamMember, error)
	RemoveMember(ctx context.Context, a *Access, userID int64) error
}

type teamService struct {
	u   repository.UserRepository
	w   repository.WorkspaceRepository
	p   repository.ProfileRepository
	act ActivityService
}

func NewTeamService(
	u repository.UserRepository,
	w repository.WorkspaceRepository,
	p repository.ProfileRepository,
	act ActivityService) TeamService {
	return &teamService{
		u:   u,
		w:   w,
		p:   p,
		act: act,
	}
}

func (s *teamService) ListMembers(ctx context.Context, a *Access) ([]*models.TeamMember, error) {
	return s.p.ListMembers(ctx, a.WorkspaceID)
}

// AddMember moves an existing user into the caller's workspace.
func (s *teamService) AddMember(ctx context.Context, a *Access, req *transfer.AddMemberRequest) (*models.TeamMember, error) {
	if !a.CanManageTeam() {
		return nil, fmt.Errorf("only owners and admins manage the team: %w", ErrForbidden)
	}

	user, isExist, err := s.u.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !isExist {
		return nil, fmt.Errorf("no account for %s: %w", req.Email, ErrNotFound)
	}

	profile, isExist, err := s.p.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !isExist {
		return nil, fmt.Errorf("profile for %s: %w", req.Email, ErrNotFound)
	}
	if profile.WorkspaceID == a.WorkspaceID {
		return nil, fmt.Errorf("%s is already a member: %w", req.Email, ErrConflict)
	}
	if profile.Role == models.RoleOwner && profile.HasActiveSubscription() {
		return nil, fmt.Errorf("%s has a paid workspace of their own: %w", req.Email, ErrConflict)
	}
	if profile.Role != models.RoleOwner {
		return nil, fmt.Errorf("%s belongs to another team: %w", req.Email, ErrConflict)
	}

	count, err := s.p.CountMembers(ctx, a.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	if limit := plans.SeatLimit(a.EffectiveTier()); !plans.WithinLimit(count, limit) {
		return nil, fmt.Errorf("%d seats allowed on this plan: %w", limit, ErrLimitReached)
	}

	if err := s.p.SetWorkspace(ctx, user.ID, a.WorkspaceID, req.Role); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	s.act.Record(ctx, a, models.ActionCreate, entityMember, user.ID)
	return &models.TeamMember{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: profile.FullName,
		Role:     req.Role,
	}, nil
}

// RemoveMember sends the member back to a personal workspace of their own.
func (s *teamService) RemoveMember(ctx context.Context, a *Access, userID int64) error {
	if !a.CanManageTeam() {
		return fmt.Errorf("only owners and admins manage the team: %w", ErrForbidden)
	}

	profile, isExist, err := s.p.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if !isExist || profile.WorkspaceID != a.WorkspaceID {
		return fmt.Errorf("member %d: %w", userID, ErrNotFound)
	}
	if profile.Role == models.RoleOwner {
		return fmt.Errorf("the workspace owner cannot be removed: %w", ErrForbidden)
	}

	var workspaceID int64
	ws, isExist, err := s.w.GetByOwnerID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load personal workspace: %w", err)
	}
	if isExist {
		workspaceID = ws.ID
	} else {
		workspaceID, err = s.w.Create(ctx, nil, &models.Workspace{
			OwnerID: userID,
			Name:    workspaceName(profile.FullName, ""),
		})
		if err != nil {
			return fmt.Errorf("create personal workspace: %w", err)
		}
	}

	if err := s.p.SetWorkspace(ctx, userID, workspaceID, models.RoleOwner); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}

	s.act.Record(ctx, a, models.ActionDelete, entityMember, userID)
	return nil
}
