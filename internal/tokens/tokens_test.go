package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onenotebe/onenotebe/internal/models"
)

func newTestService() *Service {
	return New([]byte("test-jwt-secret"), 15*time.Minute)
}

func TestService_IssueVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	token, err := svc.Issue("alice", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, svc.Verify(token, "alice"))
}

func TestService_Verify_WrongSubject(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	token, err := svc.Issue("alice", models.RoleUser)
	require.NoError(t, err)

	assert.False(t, svc.Verify(token, "carol"))
}

func TestService_Verify_Expired(t *testing.T) {
	t.Parallel()

	svc := New([]byte("test-jwt-secret"), -time.Minute)

	token, err := svc.Issue("alice", models.RoleUser)
	require.NoError(t, err)

	assert.False(t, svc.Verify(token, "alice"))
}

func TestService_Verify_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	// A token whose expiry equals the current instant is already invalid;
	// validity holds strictly before the expiry time.
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(now.Add(-15 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.Secret)
	require.NoError(t, err)

	assert.False(t, svc.Verify(token, "alice"))
}

func TestService_Verify_FailsClosed(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	other := New([]byte("another-secret"), 15*time.Minute)

	valid, err := svc.Issue("alice", models.RoleUser)
	require.NoError(t, err)
	foreign, err := other.Issue("alice", models.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "tampered", token: valid + "x"},
		{name: "wrong secret", token: foreign},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.False(t, svc.Verify(tt.token, "alice"))
		})
	}
}

func TestService_ExtractSubject(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	token, err := svc.Issue("alice", models.RoleUser)
	require.NoError(t, err)

	subject, err := svc.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	_, err = svc.ExtractSubject("not-a-token")
	require.Error(t, err)
}

func TestService_ExtractRole(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	token, err := svc.Issue("alice", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, svc.ExtractRole(token))

	assert.Equal(t, models.RoleUser, svc.ExtractRole("not-a-token"))
}

func TestService_ExtractRole_DefaultsWhenClaimAbsent(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	claims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.Secret)
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, svc.ExtractRole(token))
}
