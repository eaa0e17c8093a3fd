package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*models.Profile, bool, error)
	GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*models.Profile, bool, error)
	GetWorkspaceOwner(ctx context.Context, workspaceID int64) (*models.Profile, bool, error)
	Upsert(ctx context.Context, profile *models.Profile) (int64, error)
	UpdateDetails(ctx context.Context, profile *models.Profile) error
	UpdateBilling(ctx context.Context, profile *models.Profile) error
	SetWorkspace(ctx context.Context, userID, workspaceID int64, role string) error
	ListMembers(ctx context.Context, workspaceID int64) ([]*models.TeamMember, error)
	CountMembers(ctx context.Context, workspaceID int64) (int, error)
	DeactivateLapsed(ctx context.Context, before time.Time) (int64, error)
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, user_id, workspace_id, full_name, company, phone, role, tier, subscription_status,
	stripe_customer_id, stripe_subscription_id, current_period_end, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.WorkspaceID, &p.FullName, &p.Company, &p.Phone, &p.Role, &p.Tier,
		&p.SubscriptionStatus, &p.StripeCustomerID, &p.StripeSubscriptionID, &p.CurrentPeriodEnd, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) getOne(ctx context.Context, query string, arg any) (*models.Profile, bool, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return p, true, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error) {
	return r.getOne(ctx, "SELECT "+profileColumns+" FROM profiles WHERE user_id = $1", userID)
}

func (r *profileRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.Profile, bool, error) {
	return r.getOne(ctx, "SELECT "+profileColumns+" FROM profiles WHERE stripe_customer_id = $1 LIMIT 1", customerID)
}

func (r *profileRepository) GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*models.Profile, bool, error) {
	return r.getOne(ctx, "SELECT "+profileColumns+" FROM profiles WHERE stripe_subscription_id = $1 LIMIT 1", subscriptionID)
}

func (r *profileRepository) GetWorkspaceOwner(ctx context.Context, workspaceID int64) (*models.Profile, bool, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles
		WHERE user_id = (SELECT owner_id FROM workspaces WHERE id = $1)`
	return r.getOne(ctx, query, workspaceID)
}

// Upsert inserts the profile or, when the user already has one, refreshes its
// contact details. Billing columns are never touched here.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) (int64, error) {
	query := `
		INSERT INTO profiles (user_id, workspace_id, full_name, company, phone, role, tier, subscription_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
			company = EXCLUDED.company,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, profile.UserID, profile.WorkspaceID, profile.FullName, profile.Company,
		profile.Phone, profile.Role, profile.Tier, profile.SubscriptionStatus).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *profileRepository) UpdateDetails(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1,
			company = $2,
			phone = $3,
			updated_at = $4
		WHERE user_id = $5
	`
	_, err := r.db.ExecContext(ctx, query, profile.FullName, profile.Company, profile.Phone, time.Now(), profile.UserID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *profileRepository) UpdateBilling(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET tier = $1,
			subscription_status = $2,
			stripe_customer_id = $3,
			stripe_subscription_id = $4,
			current_period_end = $5,
			updated_at = $6
		WHERE user_id = $7
	`
	_, err := r.db.ExecContext(ctx, query, profile.Tier, profile.SubscriptionStatus, profile.StripeCustomerID,
		profile.StripeSubscriptionID, profile.CurrentPeriodEnd, time.Now(), profile.UserID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *profileRepository) SetWorkspace(ctx context.Context, userID, workspaceID int64, role string) error {
	query := `UPDATE profiles SET workspace_id = $1, role = $2, updated_at = $3 WHERE user_id = $4`
	_, err := r.db.ExecContext(ctx, query, workspaceID, role, time.Now(), userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *profileRepository) ListMembers(ctx context.Context, workspaceID int64) ([]*models.TeamMember, error) {
	query := `
		SELECT p.user_id, u.email, p.full_name, p.role, p.created_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.workspace_id = $1
		ORDER BY p.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	members := []*models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.UserID, &m.Email, &m.FullName, &m.Role, &m.JoinedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *profileRepository) CountMembers(ctx context.Context, workspaceID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles WHERE workspace_id = $1", workspaceID).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

// DeactivateLapsed marks canceled or past-due profiles whose paid period ended
// before the cutoff as inactive.
func (r *profileRepository) DeactivateLapsed(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE profiles
		SET subscription_status = 'inactive',
			updated_at = NOW()
		WHERE subscription_status IN ('canceled', 'past_due')
			AND current_period_end IS NOT NULL
			AND current_period_end < $1
	`
	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return res.RowsAffected()
}
