// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"codeberg.org/oliverandrich/scentbook/internal/config"
	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidUsername    = errors.New("username must be 1 to 50 characters")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrUnsupportedAlg     = errors.New("unsupported jwt algorithm")
	ErrInvalidRole        = errors.New("invalid role")
	ErrLastAdmin          = errors.New("cannot demote the last admin")
)

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

type Service struct {
	repo              *repository.Repository
	passwordValidator *PasswordValidator
	method            jwt.SigningMethod
	clock             func() time.Time
	secret            []byte
	tokenTTL          time.Duration
	hashCost          int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for token timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithHashCost sets the bcrypt cost for new password hashes.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// NewService creates the auth service. An empty JWT secret is replaced by a
// random one, which invalidates all tokens on restart.
func NewService(repo *repository.Repository, cfg *config.AuthConfig, opts ...Option) (*Service, error) {
	alg := cfg.JWTAlgorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlg, alg)
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		slog.Warn("jwt secret not configured, using a random one")
	}

	ttl := cfg.AccessTokenTTL()
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	s := &Service{
		repo:              repo,
		passwordValidator: DefaultPasswordValidator(),
		method:            method,
		secret:            secret,
		tokenTTL:          ttl,
		hashCost:          bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RegisterParams holds the parameters for user registration
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user account with the user role.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" || len(username) > 50 {
		return nil, ErrInvalidUsername
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}

	if err := s.passwordValidator.Validate(params.Password, username, email); err != nil {
		return nil, err
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	exists, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: string(passwordHash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// A concurrent registration can pass the checks above.
		if repository.IsConflictOn(err, "users.username") {
			return nil, ErrUsernameTaken
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("register_success", "user_id", user.ID, "username", username)
	return user, nil
}

// Authenticate checks the credentials and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "username", username, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "username", username, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID, "username", username)
	return user, nil
}

// UserFromToken resolves the user named by a valid access token.
func (s *Service) UserFromToken(ctx context.Context, tokenStr string) (*models.User, error) {
	claims, err := s.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UserByID loads a user for an established session.
func (s *Service) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// SetRole changes the role of the named user. The last admin cannot be
// demoted.
func (s *Service) SetRole(ctx context.Context, username string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	if user.IsAdmin() {
		admins, err := s.repo.CountAdmins(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return nil, ErrLastAdmin
		}
	}

	if err := s.repo.SetUserRole(ctx, user.ID, role); err != nil {
		return nil, fmt.Errorf("failed to set role: %w", err)
	}
	user.Role = role

	slog.Info("role_changed", "user_id", user.ID, "username", user.Username, "role", role)
	return user, nil
}
