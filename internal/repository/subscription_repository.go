package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type SubscriptionRepository interface {
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.Subscription, bool, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Subscription, error)
	Upsert(ctx context.Context, subscription *models.Subscription) (int64, error)
}

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.Subscription, bool, error) {
	var s models.Subscription
	query := `SELECT id, user_id, subscription_id, plan_id, subscription_end_date, status, created_at, updated_at
		FROM subscriptions WHERE subscription_id = $1`
	err := r.db.QueryRowContext(ctx, query, subscriptionID).Scan(&s.ID, &s.UserID, &s.SubscriptionID, &s.PlanID,
		&s.SubscriptionEndDate, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &s, true, nil
}

func (r *subscriptionRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	query := `SELECT id, user_id, subscription_id, plan_id, subscription_end_date, status, created_at, updated_at
		FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var subscriptions []*models.Subscription
	for rows.Next() {
		var s models.Subscription
		err := rows.Scan(&s.ID, &s.UserID, &s.SubscriptionID, &s.PlanID, &s.SubscriptionEndDate, &s.Status, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		subscriptions = append(subscriptions, &s)
	}
	return subscriptions, rows.Err()
}

func (r *subscriptionRepository) Upsert(ctx context.Context, subscription *models.Subscription) (int64, error) {
	query := `
		INSERT INTO subscriptions (user_id, subscription_id, plan_id, subscription_end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (subscription_id) DO UPDATE
		SET plan_id = COALESCE(NULLIF(EXCLUDED.plan_id, ''), subscriptions.plan_id),
			subscription_end_date = EXCLUDED.subscription_end_date,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, subscription.UserID, subscription.SubscriptionID, subscription.PlanID,
		subscription.SubscriptionEndDate, subscription.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}
