package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/courtside/api/internal/auth"
	"github.com/courtside/api/internal/domain"
	"github.com/courtside/api/internal/repository"
)

const minPasswordLength = 8

// AuthService handles registration, login, and demo-account seeding.
type AuthService struct {
	pool   *pgxpool.Pool
	users  repository.AuthUserRepository
	outbox repository.OutboxRepository
	tokens *auth.JWTManager
	logger *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	pool *pgxpool.Pool,
	users repository.AuthUserRepository,
	outbox repository.OutboxRepository,
	tokens *auth.JWTManager,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		pool:   pool,
		users:  users,
		outbox: outbox,
		tokens: tokens,
		logger: logger,
	}
}

// AuthResult is a successful register/login response.
type AuthResult struct {
	AccessToken string           `json:"accessToken"`
	User        *domain.AuthUser `json:"user"`
}

// RegisterInput is the register request body.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a user-realm account and returns a signed token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	user := &domain.AuthUser{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.users.Create(ctx, tx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict("email is already registered")
		}
		return nil, domain.ErrInternal("create user", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewUserCreatedEvent(user)); err != nil {
		return nil, domain.ErrInternal("stage event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	token, err := s.tokens.GenerateToken(auth.RealmUser, user.ID, user.Email)
	if err != nil {
		return nil, domain.ErrInternal("sign token", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return &AuthResult{AccessToken: token, User: user}, nil
}

// Login verifies credentials and returns a token in the realm matching the
// account's role. The error is deliberately identical for unknown email and
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, s.pool, email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized("Invalid credentials")
	}

	realm := auth.RealmUser
	if user.Role == domain.RoleAdmin {
		realm = auth.RealmAdmin
	}
	token, err := s.tokens.GenerateToken(realm, user.ID, user.Email)
	if err != nil {
		return nil, domain.ErrInternal("sign token", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "realm", realm)
	return &AuthResult{AccessToken: token, User: user}, nil
}

// EnsureDemoUsers creates the two well-known demo accounts when missing.
// Intended for startup in demo environments.
func (s *AuthService) EnsureDemoUsers(ctx context.Context) error {
	demo := []struct {
		email    string
		password string
		name     string
		role     domain.Role
	}{
		{"user@example.com", "password", "Demo User", domain.RoleUser},
		{"admin@example.com", "admin", "Admin User", domain.RoleAdmin},
	}

	for _, account := range demo {
		existing, err := s.users.FindByEmail(ctx, s.pool, account.email)
		if err != nil {
			return domain.ErrInternal("find demo user", err)
		}
		if existing != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return domain.ErrInternal("hash password", err)
		}
		user := &domain.AuthUser{
			ID:           uuid.New(),
			Email:        account.email,
			Name:         account.name,
			PasswordHash: string(hash),
			Role:         account.role,
		}
		if err := s.users.Create(ctx, s.pool, user); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				continue
			}
			return domain.ErrInternal("create demo user", err)
		}
		s.logger.Info("demo user seeded", "email", account.email, "role", account.role)
	}
	return nil
}

// PointsService exposes the read side of the points ledger.
type PointsService struct {
	pool   *pgxpool.Pool
	points repository.PointsRepository
}

// NewPointsService creates a PointsService.
func NewPointsService(pool *pgxpool.Pool, points repository.PointsRepository) *PointsService {
	return &PointsService{pool: pool, points: points}
}

// TotalPoints returns the user's running total, 0 when no ledger entry exists.
func (s *PointsService) TotalPoints(ctx context.Context, userID string) (int64, error) {
	total, err := s.points.GetPoints(ctx, s.pool, userID)
	if err != nil {
		return 0, domain.ErrInternal("get points", err)
	}
	return total, nil
}
