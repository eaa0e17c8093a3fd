package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, tx *sql.Tx, ws *models.Workspace) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Workspace, bool, error)
	GetByOwnerID(ctx context.Context, ownerID int64) (*models.Workspace, bool, error)
}

type workspaceRepository struct {
	db *sql.DB
}

func NewWorkspaceRepository(db *sql.DB) WorkspaceRepository {
	return &workspaceRepository{db: db}
}

func (r *workspaceRepository) Create(ctx context.Context, tx *sql.Tx, ws *models.Workspace) (int64, error) {
	query := "INSERT INTO workspaces (owner_id, name) VALUES ($1, $2) RETURNING id"

	var err error
	var id int64
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, ws.OwnerID, ws.Name).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, ws.OwnerID, ws.Name).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *workspaceRepository) GetByID(ctx context.Context, id int64) (*models.Workspace, bool, error) {
	return r.getOne(ctx, "SELECT id, owner_id, name, created_at FROM workspaces WHERE id = $1", id)
}

// GetByOwnerID returns the oldest workspace the user owns.
func (r *workspaceRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*models.Workspace, bool, error) {
	return r.getOne(ctx, "SELECT id, owner_id, name, created_at FROM workspaces WHERE owner_id = $1 ORDER BY id LIMIT 1", ownerID)
}

func (r *workspaceRepository) getOne(ctx context.Context, query string, arg int64) (*models.Workspace, bool, error) {
	var ws models.Workspace
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&ws.ID, &ws.OwnerID, &ws.Name, &ws.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &ws, true, nil
}
