package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anmolv/kittysplit/internal/auth"
	"github.com/anmolv/kittysplit/internal/models"
)

// AuthService handles registration and login, issuing JWTs for
// authenticated sessions.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a new user account and returns the user with a session
// token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	if email == "" || displayName == "" {
		return nil, "", fmt.Errorf("%w: email and display name required", auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		slog.Warn("Registration failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}
