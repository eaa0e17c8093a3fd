package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type PropertyPhotoRepository interface {
	Create(ctx context.Context, tx *sql.Tx, photo *models.PropertyPhoto) (int64, error)
	ListByPropertyID(ctx context.Context, propertyID int64) ([]models.PropertyPhoto, error)
	NextDisplayOrder(ctx context.Context, propertyID int64) (int, error)
	Remove(ctx context.Context, propertyID, id int64) (bool, error)
}

type propertyPhotoRepository struct {
	db *sql.DB
}

func NewPropertyPhotoRepository(db *sql.DB) PropertyPhotoRepository {
	return &propertyPhotoRepository{db: db}
}

func (r *propertyPhotoRepository) Create(ctx context.Context, tx *sql.Tx, photo *models.PropertyPhoto) (int64, error) {
	var id int64
	var err error

	query := `
		INSERT INTO property_photos (property_id, file_name, file_type, file_url, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, photo.PropertyID, photo.FileName, photo.FileType, photo.FileURL, photo.DisplayOrder).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, photo.PropertyID, photo.FileName, photo.FileType, photo.FileURL, photo.DisplayOrder).Scan(&id)
	}

	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *propertyPhotoRepository) ListByPropertyID(ctx context.Context, propertyID int64) ([]models.PropertyPhoto, error) {
	query := `
		SELECT id, property_id, file_name, file_type, file_url, display_order, created_at
		FROM property_photos
		WHERE property_id = $1
		ORDER BY display_order
	`

	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var photos []models.PropertyPhoto
	for rows.Next() {
		var p models.PropertyPhoto
		if err := rows.Scan(&p.ID, &p.PropertyID, &p.FileName, &p.FileType, &p.FileURL, &p.DisplayOrder, &p.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		photos = append(photos, p)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return photos, nil
}

func (r *propertyPhotoRepository) NextDisplayOrder(ctx context.Context, propertyID int64) (int, error) {
	var next int
	query := "SELECT COALESCE(MAX(display_order) + 1, 0) FROM property_photos WHERE property_id = $1"
	if err := r.db.QueryRowContext(ctx, query, propertyID).Scan(&next); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return next, nil
}

func (r *propertyPhotoRepository) Remove(ctx context.Context, propertyID, id int64) (bool, error) {
	query := `
		DELETE FROM property_photos
		WHERE id = $1 AND property_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, propertyID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}
