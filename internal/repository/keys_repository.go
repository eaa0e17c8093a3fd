package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/realty-crm/internal/models"
)

// ApiKeyRepository stores per-user API keys. Every mutation is scoped by the
// owning user in SQL.
type ApiKeyRepository interface {
	UserIDByKey(ctx context.Context, key string) (int64, bool, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	CreateWithin(ctx context.Context, key *models.ApiKey, limit int) (int64, bool, error)
	Remove(ctx context.Context, userID, id int64) (bool, error)
}

type apiKeyRepository struct {
	db *sql.DB
}

func NewApiKeyRepository(db *sql.DB) ApiKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) UserIDByKey(ctx context.Context, key string) (int64, bool, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM api_keys WHERE api_key = $1`, key).Scan(&userID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, false, err
	}
	return userID, true, nil
}

func (r *apiKeyRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, api_key, created_at
		FROM api_keys
		WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	keys := []*models.ApiKey{}
	for rows.Next() {
		var k models.ApiKey
		if err := rows.Scan(&k.ID, &k.UserID, &k.ApiKey, &k.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

// CreateWithin inserts the key only while the user holds fewer than limit keys.
// The bool is false when the limit was already reached.
func (r *apiKeyRepository) CreateWithin(ctx context.Context, key *models.ApiKey, limit int) (int64, bool, error) {
	query := `
		INSERT INTO api_keys (user_id, api_key)
		SELECT $1, $2
		WHERE (SELECT COUNT(*) FROM api_keys WHERE user_id = $1) < $3
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, key.UserID, key.ApiKey, limit).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, false, err
	}
	return id, true, nil
}

func (r *apiKeyRepository) Remove(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM api_keys WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
