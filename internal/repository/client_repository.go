package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type ClientRepository interface {
	Create(ctx context.Context, c *models.Client) (int64, error)
	GetByID(ctx context.Context, workspaceID, id int64) (*models.Client, bool, error)
	List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Client, error)
	Update(ctx context.Context, c *models.Client) (bool, error)
	Remove(ctx context.Context, workspaceID, id int64) (bool, error)
	CountByWorkspace(ctx context.Context, workspaceID int64) (int, error)
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, workspace_id, name, email, company, phone, status, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.Email, &c.Company, &c.Phone, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) Create(ctx context.Context, c *models.Client) (int64, error) {
	query := `
		INSERT INTO clients (workspace_id, name, email, company, phone, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, c.WorkspaceID, c.Name, c.Email, c.Company, c.Phone, c.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *clientRepository) GetByID(ctx context.Context, workspaceID, id int64) (*models.Client, bool, error) {
	query := "SELECT " + clientColumns + " FROM clients WHERE id = $1 AND workspace_id = $2"
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id, workspaceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return c, true, nil
}

func (r *clientRepository) List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Client, error) {
	filter = filter.Normalize()
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE workspace_id = $1 AND ($2::text = '' OR status = $2)
		ORDER BY name
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	clients := []*models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Update(ctx context.Context, c *models.Client) (bool, error) {
	query := `
		UPDATE clients
		SET name = $1,
			email = $2,
			company = $3,
			phone = $4,
			status = $5,
			updated_at = $6
		WHERE id = $7 AND workspace_id = $8
	`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Company, c.Phone, c.Status, time.Now(), c.ID, c.WorkspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *clientRepository) Remove(ctx context.Context, workspaceID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = $1 AND workspace_id = $2", id, workspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *clientRepository) CountByWorkspace(ctx context.Context, workspaceID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients WHERE workspace_id = $1", workspaceID).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}
