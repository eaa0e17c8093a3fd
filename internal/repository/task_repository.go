package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) (int64, error)
	GetByID(ctx context.Context, workspaceID, id int64) (*models.Task, bool, error)
	Find(ctx context.Context, id int64) (*models.Task, bool, error)
	List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Task, error)
	ListOpenDueBefore(ctx context.Context, workspaceID int64, before time.Time) ([]*models.Task, error)
	Update(ctx context.Context, t *models.Task) (bool, error)
	Remove(ctx context.Context, workspaceID, id int64) (bool, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, workspace_id, creator_id, assignee_id, lead_id, title, description, due_at, priority, status, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.WorkspaceID, &t.CreatorID, &t.AssigneeID, &t.LeadID, &t.Title, &t.Description,
		&t.DueAt, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Task, bool, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return t, true, nil
}

func (r *taskRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, t *models.Task) (int64, error) {
	query := `
		INSERT INTO tasks (workspace_id, creator_id, assignee_id, lead_id, title, description, due_at, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, t.WorkspaceID, t.CreatorID, t.AssigneeID, t.LeadID, t.Title,
		t.Description, t.DueAt, t.Priority, t.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *taskRepository) GetByID(ctx context.Context, workspaceID, id int64) (*models.Task, bool, error) {
	return r.queryOne(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND workspace_id = $2", id, workspaceID)
}

// Find loads a task without workspace scoping. Only background workers use it.
func (r *taskRepository) Find(ctx context.Context, id int64) (*models.Task, bool, error) {
	return r.queryOne(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
}

func (r *taskRepository) List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Task, error) {
	filter = filter.Normalize()
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE workspace_id = $1 AND ($2::text = '' OR status = $2)
		ORDER BY due_at NULLS LAST, created_at DESC
		LIMIT $3 OFFSET $4`
	return r.queryMany(ctx, query, workspaceID, filter.Status, filter.Limit, filter.Offset)
}

func (r *taskRepository) ListOpenDueBefore(ctx context.Context, workspaceID int64, before time.Time) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE workspace_id = $1 AND status <> 'done' AND due_at IS NOT NULL AND due_at <= $2
		ORDER BY due_at`
	return r.queryMany(ctx, query, workspaceID, before)
}

func (r *taskRepository) Update(ctx context.Context, t *models.Task) (bool, error) {
	query := `
		UPDATE tasks
		SET assignee_id = $1,
			lead_id = $2,
			title = $3,
			description = $4,
			due_at = $5,
			priority = $6,
			status = $7,
			updated_at = $8
		WHERE id = $9 AND workspace_id = $10
	`
	res, err := r.db.ExecContext(ctx, query, t.AssigneeID, t.LeadID, t.Title, t.Description, t.DueAt, t.Priority,
		t.Status, time.Now(), t.ID, t.WorkspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *taskRepository) Remove(ctx context.Context, workspaceID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1 AND workspace_id = $2", id, workspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}
