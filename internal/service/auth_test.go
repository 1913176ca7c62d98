package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onenotebe/onenotebe/internal/hash"
	"github.com/onenotebe/onenotebe/internal/models"
	"github.com/onenotebe/onenotebe/internal/ratelimit"
	"github.com/onenotebe/onenotebe/internal/tokens"
)

func newAuthService(t *testing.T, limiter *ratelimit.Limiter) *AuthService {
	t.Helper()

	return &AuthService{
		Repo:    newTestRepo(t),
		Tokens:  tokens.New([]byte("test-jwt-secret"), 15*time.Minute),
		Limiter: limiter,
	}
}

func validRegisterInput() RegisterInput {
	name := uniqueName("user")
	return RegisterInput{
		Username:    name,
		Email:       name + "@example.com",
		Password:    "Str0ngPass!",
		DisplayName: "Test User",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, nil)
	ctx := context.Background()

	in := validRegisterInput()
	res, err := svc.Register(ctx, in, "10.0.0.1")
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.Equal(t, in.Username, res.Username)
	assert.Equal(t, in.Email, res.Email)

	stored, err := svc.Repo.FindUserByUsername(ctx, in.Username)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.NotEqual(t, in.Password, stored.PasswordHash)
	assert.True(t, hash.CheckPassword(stored.PasswordHash, in.Password))
}

func TestAuthService_Register_NormalizesInput(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, nil)

	name := uniqueName("user")
	in := RegisterInput{
		Username: "  " + name + "  ",
		Email:    "  " + strings.ToUpper(name) + "@Example.COM  ",
		Password: "Str0ngPass!",
	}
	res, err := svc.Register(context.Background(), in, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, name, res.Username)
	assert.Equal(t, strings.ToLower(name)+"@example.com", res.Email)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, nil)
	ctx := context.Background()

	in := validRegisterInput()
	_, err := svc.Register(ctx, in, "10.0.0.1")
	require.NoError(t, err)

	in.Email = uniqueName("other") + "@example.com"
	_, err = svc.Register(ctx, in, "10.0.0.1")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, nil)
	ctx := context.Background()

	in := validRegisterInput()
	_, err := svc.Register(ctx, in, "10.0.0.1")
	require.NoError(t, err)

	in.Username = uniqueName("other")
	_, err = svc.Register(ctx, in, "10.0.0.1")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_UsernameCheckedFirst(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, nil)
	ctx := context.Background()

	in := validRegisterInput()
	_, err := svc.Register(ctx, in, "10.0.0.1")
	require.NoError(t, err)

	// Both username and email collide; the username conflict wins.
	_, err = svc.Register(ctx, in, "10.0.0.1")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *RegisterInput)
	}{
		{name: "username too short", mutate: func(in *RegisterInput) { in.Username = "ab" }},
		{name: "username with spaces", mutate: func(in *RegisterInput) { in.Username = "bad name" }},
		{name: "invalid email", mutate: func(in *RegisterInput) { in.Email = "not-an-email" }},
		{name: "password too short", mutate: func(in *RegisterInput) { in.Password = "short1" }},
		{name: "password without digit", mutate: func(in *RegisterInput) { in.Password = "password" }},
		{name: "password without letter", mutate: func(in *RegisterInput) { in.Password = "12345678" }},
		{name: "display name too long", mutate: func(in *RegisterInput) { in.DisplayName = strings.Repeat("x", 65) }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validRegisterInput()
			tt.mutate(&in)
			_, err := svc.Register(ctx, in, "10.0.0.1")
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_RateLimited(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, ratelimit.New(1, time.Minute))
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput(), "10.0.0.1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegisterInput(), "10.0.0.1")
	assert.ErrorIs(t, err, ErrRateLimitExceeded)

	// Another source is unaffected.
	_, err = svc.Register(ctx, validRegisterInput(), "10.0.0.2")
	assert.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, nil)
	ctx := context.Background()

	in := validRegisterInput()
	_, err := svc.Register(ctx, in, "10.0.0.1")
	require.NoError(t, err)

	token, err := svc.Login(ctx, in.Username, in.Password)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, svc.Tokens.Verify(token, in.Username))
	assert.False(t, svc.Tokens.Verify(token, "someone-else"))
	assert.Equal(t, models.RoleUser, svc.Tokens.ExtractRole(token))
}

func TestAuthService_Login_AdminRole(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, nil)
	ctx := context.Background()

	pwHash, err := hash.HashPassword("Adm1nPass!")
	require.NoError(t, err)
	name := uniqueName("admin")
	require.NoError(t, svc.Repo.CreateUser(ctx, &models.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
	}))

	token, err := svc.Login(ctx, name, "Adm1nPass!")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, svc.Tokens.ExtractRole(token))
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, nil)
	ctx := context.Background()

	in := validRegisterInput()
	_, err := svc.Register(ctx, in, "10.0.0.1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, in.Username, "Wr0ngPass!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "no-such-user", in.Password)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
