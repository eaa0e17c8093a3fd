package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	"github.com/maheshrc27/realty-crm/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// profileUpsertAttempts bounds the profile write that follows account creation.
const profileUpsertAttempts = 3

type AuthService interface {
	Signup(ctx context.Context, req *transfer.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *transfer.LoginRequest) (*models.User, error)
	GoogleLoginURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*models.User, error)
	SessionToken(userID int64) (string, error)
}

type authService struct {
	cfg   config.Config
	db    *sql.DB
	u     repository.UserRepository
	w     repository.WorkspaceRepository
	p     repository.ProfileRepository
	idp   IdentityProvider
	sched TaskScheduler
}

func NewAuthService(
	cfg config.Config,
	db *sql.DB,
	u repository.UserRepository,
	w repository.WorkspaceRepository,
	p repository.ProfileRepository,
	idp IdentityProvider,
	sched TaskScheduler) AuthService {
	return &authService{
		cfg:   cfg,
		db:    db,
		u:     u,
		w:     w,
		p:     p,
		idp:   idp,
		sched: sched,
	}
}

func (s *authService) Signup(ctx context.Context, req *transfer.SignupRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	_, isExist, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if isExist {
		return nil, fmt.Errorf("email %s: %w", email, ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.FullName),
	}
	if err := s.createAccount(ctx, user, strings.TrimSpace(req.Company)); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *transfer.LoginRequest) (*models.User, error) {
	user, isExist, err := s.u.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !isExist || user.PasswordHash == "" {
		return nil, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}

	return user, nil
}

func (s *authService) GoogleLoginURL(state string) string {
	return s.idp.AuthCodeURL(state)
}

func (s *authService) GoogleCallback(ctx context.Context, code string) (*models.User, error) {
	if code == "" {
		return nil, fmt.Errorf("missing authorization code: %w", ErrValidation)
	}

	gu, err := s.idp.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	email := normalizeEmail(gu.Email)
	user, isExist, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !isExist {
		user = &models.User{
			GoogleID: gu.ID,
			Email:    email,
			Name:     gu.Name,
		}
		if err := s.createAccount(ctx, user, ""); err != nil {
			return nil, err
		}
		return user, nil
	}

	if user.GoogleID == "" {
		user.GoogleID = gu.ID
		if user.Name == "" {
			user.Name = gu.Name
		}
		if err := s.u.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("link google account: %w", err)
		}
	}

	return user, nil
}

func (s *authService) SessionToken(userID int64) (string, error) {
	return utils.GenerateToken(s.cfg.SecretKey, strconv.FormatInt(userID, 10), s.cfg.SessionDuration)
}

// createAccount inserts the user and a personal workspace in one transaction,
// then writes the owner profile.
func (s *authService) createAccount(ctx context.Context, user *models.User, company string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	userID, err := s.u.Create(ctx, tx, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = userID

	workspaceID, err := s.w.Create(ctx, tx, &models.Workspace{
		OwnerID: userID,
		Name:    workspaceName(user.Name, company),
	})
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("commit account: %w", err)
	}

	profile := &models.Profile{
		UserID:             userID,
		WorkspaceID:        workspaceID,
		FullName:           user.Name,
		Company:            company,
		Role:               models.RoleOwner,
		Tier:               plans.TierSingleUser,
		SubscriptionStatus: models.SubscriptionStatusInactive,
	}
	if err := s.upsertProfile(ctx, profile); err != nil {
		return err
	}

	if err := s.sched.ScheduleWelcomeEmail(ctx, userID); err != nil {
		slog.Warn("welcome email not scheduled", "user_id", userID, "error", err)
	}

	return nil
}

// upsertProfile retries the write with a linearly growing pause between
// attempts.
func (s *authService) upsertProfile(ctx context.Context, profile *models.Profile) error {
	var err error
	for attempt := 1; attempt <= profileUpsertAttempts; attempt++ {
		if _, err = s.p.Upsert(ctx, profile); err == nil {
			return nil
		}

		slog.Warn("profile upsert failed", "user_id", profile.UserID, "attempt", attempt, "error", err)
		if attempt == profileUpsertAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.cfg.SignupRetryBackoff):
		}
	}
	return fmt.Errorf("upsert profile after %d attempts: %w", profileUpsertAttempts, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func workspaceName(name, company string) string {
	if company != "" {
		return company
	}
	if name == "" {
		return "My workspace"
	}
	return name + "'s workspace"
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
