// Package auth implements username/password login and access token
// validation for the HTTP layer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/auth"
	"github.com/fileshare/fileshare-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the auth service.
type userRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// jwtManager defines the JWT token management interface needed by the auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// AuthResult is the outcome of a successful login.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}

// Service implements auth operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	jwt   jwtManager
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, users userRepo, jwt jwtManager) *Service {
	return &Service{
		log:   logger.With("service", "auth"),
		users: users,
		jwt:   jwt,
	}
}

// Login verifies the credentials and issues an access token. Unknown users,
// deactivated accounts, and wrong passwords all map to ErrUnauthorized so
// the response does not reveal which check failed.
func (s *Service) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.NewValidationError("username", "username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	if !user.IsActive {
		s.log.WarnContext(ctx, "login attempt for inactive user", slog.String("user_id", user.ID.String()))
		return nil, domain.ErrUnauthorized
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrUnauthorized
	}

	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("auth.Login: generate access token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))
	return &AuthResult{AccessToken: accessToken, User: user}, nil
}

// ValidateToken checks an access token and returns the user ID and role.
// Used by the HTTP auth middleware.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	userID, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, "", domain.ErrUnauthorized
	}
	return userID, role, nil
}
