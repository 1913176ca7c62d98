package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/onenotebe/onenotebe/internal/hash"
	"github.com/onenotebe/onenotebe/internal/logging"
	"github.com/onenotebe/onenotebe/internal/models"
	"github.com/onenotebe/onenotebe/internal/repo"
)

// EnsureAdmin creates the first-boot ADMIN account unless its username or
// email is already taken. Audit fields are set to the system actor (0).
func EnsureAdmin(ctx context.Context, r *repo.GormRepo, username, password, email string) error {
	l := logging.FromContext(ctx).With("svc", "bootstrap.admin")

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	byName, err := r.ExistsUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check admin username: %w", err)
	}
	byEmail, err := r.ExistsUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check admin email: %w", err)
	}
	if byName || byEmail {
		l.Info("admin_exists", "username", username)
		return nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	system := uint(0)
	admin := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
	}
	admin.CreatedBy = &system
	admin.UpdatedBy = &system

	if err := r.CreateUser(ctx, &admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	l.Info("admin_created", "username", username)
	return nil
}
