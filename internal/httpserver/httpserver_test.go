package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/onenotebe/onenotebe/internal/hash"
	authmw "github.com/onenotebe/onenotebe/internal/middleware/auth"
	"github.com/onenotebe/onenotebe/internal/models"
	"github.com/onenotebe/onenotebe/internal/ratelimit"
	"github.com/onenotebe/onenotebe/internal/repo"
	"github.com/onenotebe/onenotebe/internal/service"
	"github.com/onenotebe/onenotebe/internal/tokens"
)

type env struct {
	e      *echo.Echo
	repo   *repo.GormRepo
	tokens *tokens.Service
}

func newEnv(t *testing.T) *env {
	// A generous limit keeps unrelated tests out of each other's windows.
	return newEnvWithLimiter(t, ratelimit.New(1000, time.Minute))
}

func newEnvWithLimiter(t *testing.T, limiter *ratelimit.Limiter) *env {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Post{}))

	r := &repo.GormRepo{DB: db}
	tokenSvc := tokens.New([]byte("test-jwt-secret"), 15*time.Minute)

	e := echo.New()
	Register(e, &Deps{
		Auth:       &AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: tokenSvc, Limiter: limiter}},
		Posts:      &PostHTTP{Svc: &service.PostService{Repo: r}},
		Categories: &CategoryHTTP{Svc: &service.CategoryService{Repo: r}},
		MW:         &authmw.Middleware{Tokens: tokenSvc, Repo: r},
	})

	return &env{e: e, repo: r, tokens: tokenSvc}
}

func (v *env) seedUser(t *testing.T, username, password, role string) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(t, v.repo.CreateUser(context.Background(), user))
	return user
}

func (v *env) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := v.tokens.Issue(user.Username, user.Role)
	require.NoError(t, err)
	return token
}

func (v *env) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	resp := decode(t, rec)
	require.True(t, resp.Success)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}
