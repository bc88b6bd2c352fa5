package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/c-gorringe/moxie-app/internal/domain/identity"
	"github.com/c-gorringe/moxie-app/internal/domain/shared"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/auth"
)

// UserSummary is the public shape of a user returned with tokens.
type UserSummary struct {
	ID     uuid.UUID     `json:"id"`
	Email  string        `json:"email"`
	Name   string        `json:"name"`
	Team   string        `json:"team"`
	Region string        `json:"region"`
	Role   identity.Role `json:"role"`
}

// LoginResponse carries the token pair and the authenticated user.
type LoginResponse struct {
	User   UserSummary     `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// AuthService authenticates users and issues session tokens.
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwt: jwt, logger: logger, now: time.Now}
}

// Login verifies credentials and returns a token pair. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if email == "" || password == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	tokens, err := s.jwt.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, err
	}

	user.TouchActivity(s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Last-active is best effort; the login itself succeeded
		s.logger.Warn("failed to record last activity", zap.Error(err))
	}

	return &LoginResponse{
		User: UserSummary{
			ID:     user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Team:   user.Team,
			Region: user.Region,
			Role:   user.Role,
		},
		Tokens: tokens,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}

	return s.jwt.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
