package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) (int64, error)
	GetByID(ctx context.Context, workspaceID, id int64) (*models.Property, bool, error)
	List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Property, error)
	Update(ctx context.Context, p *models.Property) (bool, error)
	Remove(ctx context.Context, workspaceID, id int64) (bool, error)
	StatusSummary(ctx context.Context, workspaceID int64) ([]models.StatusCount, error)
}

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, workspace_id, owner_id, title, address, city, state, zip, property_type, status, price,
	bedrooms, bathrooms, area_sqft, description, created_at, updated_at`

func scanProperty(row interface{ Scan(...any) error }) (*models.Property, error) {
	var p models.Property
	err := row.Scan(&p.ID, &p.WorkspaceID, &p.OwnerID, &p.Title, &p.Address, &p.City, &p.State, &p.Zip,
		&p.PropertyType, &p.Status, &p.Price, &p.Bedrooms, &p.Bathrooms, &p.AreaSqft, &p.Description,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) Create(ctx context.Context, p *models.Property) (int64, error) {
	query := `
		INSERT INTO properties (workspace_id, owner_id, title, address, city, state, zip, property_type, status,
			price, bedrooms, bathrooms, area_sqft, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, p.WorkspaceID, p.OwnerID, p.Title, p.Address, p.City, p.State, p.Zip,
		p.PropertyType, p.Status, p.Price, p.Bedrooms, p.Bathrooms, p.AreaSqft, p.Description).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, workspaceID, id int64) (*models.Property, bool, error) {
	query := "SELECT " + propertyColumns + " FROM properties WHERE id = $1 AND workspace_id = $2"
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id, workspaceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return p, true, nil
}

func (r *propertyRepository) List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Property, error) {
	filter = filter.Normalize()
	query := `SELECT ` + propertyColumns + ` FROM properties
		WHERE workspace_id = $1 AND ($2::text = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	properties := []*models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *propertyRepository) Update(ctx context.Context, p *models.Property) (bool, error) {
	query := `
		UPDATE properties
		SET title = $1,
			address = $2,
			city = $3,
			state = $4,
			zip = $5,
			property_type = $6,
			status = $7,
			price = $8,
			bedrooms = $9,
			bathrooms = $10,
			area_sqft = $11,
			description = $12,
			updated_at = $13
		WHERE id = $14 AND workspace_id = $15
	`
	res, err := r.db.ExecContext(ctx, query, p.Title, p.Address, p.City, p.State, p.Zip, p.PropertyType, p.Status,
		p.Price, p.Bedrooms, p.Bathrooms, p.AreaSqft, p.Description, time.Now(), p.ID, p.WorkspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *propertyRepository) Remove(ctx context.Context, workspaceID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM properties WHERE id = $1 AND workspace_id = $2", id, workspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *propertyRepository) StatusSummary(ctx context.Context, workspaceID int64) ([]models.StatusCount, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(price), 0)
		FROM properties
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
