package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type ContactRepository interface {
	Create(ctx context.Context, c *models.Contact) (int64, error)
	GetByID(ctx context.Context, workspaceID, id int64) (*models.Contact, bool, error)
	List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Contact, error)
	Update(ctx context.Context, c *models.Contact) (bool, error)
	Remove(ctx context.Context, workspaceID, id int64) (bool, error)
}

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

const contactColumns = `id, workspace_id, owner_id, first_name, last_name, email, phone, company, kind, notes, created_at, updated_at`

func scanContact(row interface{ Scan(...any) error }) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.WorkspaceID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Company,
		&c.Kind, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepository) Create(ctx context.Context, c *models.Contact) (int64, error) {
	query := `
		INSERT INTO contacts (workspace_id, owner_id, first_name, last_name, email, phone, company, kind, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, c.WorkspaceID, c.OwnerID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.Company, c.Kind, c.Notes).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *contactRepository) GetByID(ctx context.Context, workspaceID, id int64) (*models.Contact, bool, error) {
	query := "SELECT " + contactColumns + " FROM contacts WHERE id = $1 AND workspace_id = $2"
	c, err := scanContact(r.db.QueryRowContext(ctx, query, id, workspaceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return c, true, nil
}

// List filters on contact kind through ListFilter.Status.
func (r *contactRepository) List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*models.Contact, error) {
	filter = filter.Normalize()
	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE workspace_id = $1 AND ($2::text = '' OR kind = $2)
		ORDER BY last_name, first_name
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, workspaceID, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	contacts := []*models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *contactRepository) Update(ctx context.Context, c *models.Contact) (bool, error) {
	query := `
		UPDATE contacts
		SET first_name = $1,
			last_name = $2,
			email = $3,
			phone = $4,
			company = $5,
			kind = $6,
			notes = $7,
			updated_at = $8
		WHERE id = $9 AND workspace_id = $10
	`
	res, err := r.db.ExecContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.Company, c.Kind, c.Notes,
		time.Now(), c.ID, c.WorkspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *contactRepository) Remove(ctx context.Context, workspaceID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = $1 AND workspace_id = $2", id, workspaceID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}
