package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	ListRecent(ctx context.Context, workspaceID int64, limit, offset int) ([]*models.ActivityLog, error)
}

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (workspace_id, user_id, action, entity, entity_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, entry.WorkspaceID, entry.UserID, entry.Action, entry.Entity, entry.EntityID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *activityRepository) ListRecent(ctx context.Context, workspaceID int64, limit, offset int) ([]*models.ActivityLog, error) {
	query := `
		SELECT id, workspace_id, user_id, action, entity, entity_id, created_at
		FROM activity_logs
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, limit, offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	entries := []*models.ActivityLog{}
	for rows.Next() {
		var e models.ActivityLog
		if err := rows.Scan(&e.ID, &e.WorkspaceID, &e.UserID, &e.Action, &e.Entity, &e.EntityID, &e.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
