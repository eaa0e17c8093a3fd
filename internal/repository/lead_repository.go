package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) (int64, error)
	GetByID(ctx context.Context, workspaceID, id int64) (*models.Lead, bool, error)
	List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Lead, error)
	Update(ctx context.Context, lead *models.Lead) (bool, error)
	Remove(ctx context.Context, workspaceID, id int64) (bool, error)
	CountByWorkspace(ctx context.Context, workspaceID int64) (int, error)
	StatusSummary(ctx context.Context, workspaceID int64) ([]models.StatusCount, error)
	CountByMember(ctx context.Context, workspaceID int64) ([]models.MemberLeadCount, error)
}

type leadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `id, workspace_id, owner_id, name, email, phone, source, status, budget, notes, property_id, created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (*models.Lead, error) {
	var l models.Lead
	err := row.Scan(&l.ID, &l.WorkspaceID, &l.OwnerID, &l.Name, &l.Email, &l.Phone, &l.Source, &l.Status,
		&l.Budget, &l.Notes, &l.PropertyID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) (int64, error) {
	query := `
		INSERT INTO leads (workspace_id, owner_id, name, email, phone, source, status, budget, notes, property_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, lead.WorkspaceID, lead.OwnerID, lead.Name, lead.Email, lead.Phone,
		lead.Source, lead.Status, lead.Budget, lead.Notes, lead.PropertyID).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *leadRepository) GetByID(ctx context.Context, workspaceID, id int64) (*models.Lead, bool, error) {
	query := "SELECT " + leadColumns + " FROM leads WHERE id = $1 AND workspace_id = $2"
	lead, err := scanLead(r.db.QueryRowContext(ctx, query, id, workspaceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return lead, true, nil
}

func (r *leadRepository) List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Lead, error) {
	filter = filter.Normalize()
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE workspace_id = $1 AND ($2::text = '' OR status = $2) AND ($3::bigint = 0 OR owner_id = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, filter.Status, filter.OwnerID, filter.Limit, filter.Offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	leads := []*models.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *leadRepository) Update(ctx context.Context, lead *models.Lead) (bool, error) {
	query := `
		UPDATE leads
		SET name = $1,
			email = $2,
			phone = $3,
			source = $4,
			status = $5,
			budget = $6,
			notes = $7,
			property_id = $8,
			updated_at = $9
		WHERE id = $10 AND workspace_id = $11
	`
	res, err := r.db.ExecContext(ctx, query, lead.Name, lead.Email, lead.Phone, lead.Source, lead.Status,
		lead.Budget, lead.Notes, lead.PropertyID, time.Now(), lead.ID, lead.WorkspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *leadRepository) Remove(ctx context.Context, workspaceID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM leads WHERE id = $1 AND workspace_id = $2", id, workspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *leadRepository) CountByWorkspace(ctx context.Context, workspaceID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM leads WHERE workspace_id = $1", workspaceID).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

// StatusSummary returns lead counts and budget totals grouped by status.
func (r *leadRepository) StatusSummary(ctx context.Context, workspaceID int64) ([]models.StatusCount, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(budget), 0)
		FROM leads
		WHERE workspace_id = $1
		GROUP BY status
		ORDER BY status
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var summary []models.StatusCount
	for rows.Next() {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count, &sc.Total); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		summary = append(summary, sc)
	}
	return summary, rows.Err()
}

func (r *leadRepository) CountByMember(ctx context.Context, workspaceID int64) ([]models.MemberLeadCount, error) {
	query := `
		SELECT p.user_id, p.full_name, COUNT(l.id)
		FROM profiles p
		LEFT JOIN leads l ON l.owner_id = p.user_id AND l.workspace_id = p.workspace_id
		WHERE p.workspace_id = $1
		GROUP BY p.user_id, p.full_name
		ORDER BY p.user_id
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var counts []models.MemberLeadCount
	for rows.Next() {
		var mc models.MemberLeadCount
		if err := rows.Scan(&mc.UserID, &mc.FullName, &mc.Leads); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		counts = append(counts, mc)
	}
	return counts, rows.Err()
}
