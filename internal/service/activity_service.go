package service

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/repository"
)

const RecentActivityLimit = 20

type ActivityService interface {
	Record(ctx context.Context, a *Access, action, entity string, entityID int64)
	List(ctx context.Context, a *Access, limit, offset int) ([]*models.ActivityLog, error)
}

type activityService struct {
	ar repository.ActivityRepository
}

func NewActivityService(ar repository.ActivityRepository) ActivityService {
	return &activityService{
		ar: ar,
	}
}

// Record writes an audit entry. Failures are logged and never surface to the
// caller.
func (s *activityService) Record(ctx context.Context, a *Access, action, entity string, entityID int64) {
	entry := &models.ActivityLog{
		WorkspaceID: a.WorkspaceID,
		UserID:      a.UserID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
	}
	if err := s.ar.Create(ctx, entry); err != nil {
		slog.Warn("activity log write failed", "entity", entity, "entity_id", entityID, "error", err)
	}
}

func (s *activityService) List(ctx context.Context, a *Access, limit, offset int) ([]*models.ActivityLog, error) {
	filter := repository.ListFilter{Limit: limit, Offset: offset}.Normalize()
	return s.ar.ListRecent(ctx, a.WorkspaceID, filter.Limit, filter.Offset)
}
