package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/onenotebe/onenotebe/internal/events"
	"github.com/onenotebe/onenotebe/internal/hash"
	"github.com/onenotebe/onenotebe/internal/logging"
	"github.com/onenotebe/onenotebe/internal/models"
	"github.com/onenotebe/onenotebe/internal/ratelimit"
	"github.com/onenotebe/onenotebe/internal/repo"
	"github.com/onenotebe/onenotebe/internal/tokens"
)

type AuthService struct {
	Repo    *repo.GormRepo
	Tokens  *tokens.Service
	Limiter *ratelimit.Limiter
	Events  *events.Producer
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

type RegisterResult struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register admits the caller through the registration rate limiter, validates
// and normalizes the candidate account, enforces uniqueness (username before
// email) and persists the account with role USER. The password never appears
// in the result or the logs.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, sourceKey string) (*RegisterResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if s.Limiter != nil && !s.Limiter.Allow(sourceKey) {
		l.Warn("register_rejected", "reason", "rate limit exceeded")
		return nil, ErrRateLimitExceeded
	}

	if err := validateRegister(in); err != nil {
		l.Warn("register_rejected", "reason", err.Error())
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if taken, err := s.Repo.ExistsUserByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		return nil, ErrDuplicateUsername
	}
	if taken, err := s.Repo.ExistsUserByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, ErrDuplicateEmail
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.Events.Publish(ctx, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Error("event_publish_failed", "error", err)
	}

	l.Info("user_registered", "user_id", user.ID, "username", user.Username)
	return &RegisterResult{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Login verifies the credentials and issues a session token carrying the
// account's role. Every failure surfaces as ErrInvalidCredentials so callers
// cannot probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown username")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "username", username, "reason", "password mismatch")
		return "", ErrInvalidCredentials
	}

	role := user.Role
	if role == "" {
		role = models.RoleUser
	}

	token, err := s.Tokens.Issue(user.Username, role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	if err := s.Events.Publish(ctx, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Error("event_publish_failed", "error", err)
	}

	l.Info("login_successful", "username", user.Username)
	return token, nil
}
