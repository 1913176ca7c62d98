package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onenotebe/onenotebe/internal/policy"
	"github.com/onenotebe/onenotebe/internal/repo"
	"github.com/onenotebe/onenotebe/internal/tokens"
)

const (
	ContextUserIDKey  = "userID"
	ContextSubjectKey = "subject"
	ContextRoleKey    = "role"
)

type Middleware struct {
	Tokens *tokens.Service
	Repo   *repo.GormRepo
}

// Authenticate resolves an optional bearer token into a caller identity.
// Verification failures are silent: the request simply stays anonymous and
// the policy check decides what that means for the route. The token subject
// must still resolve to a stored account.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c)
		if raw == "" {
			return next(c)
		}

		subject, err := m.Tokens.ExtractSubject(raw)
		if err != nil || subject == "" {
			return next(c)
		}
		if !m.Tokens.Verify(raw, subject) {
			return next(c)
		}

		user, err := m.Repo.FindUserByUsername(c.Request().Context(), subject)
		if err != nil {
			return next(c)
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextSubjectKey, user.Username)
		c.Set(ContextRoleKey, m.Tokens.ExtractRole(raw))
		return next(c)
	}
}

// Require enforces the access policy for op against the caller resolved by
// Authenticate.
func Require(op policy.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := policy.Check(op, CallerFromContext(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func CallerFromContext(c echo.Context) policy.Caller {
	subject, _ := c.Get(ContextSubjectKey).(string)
	role, _ := c.Get(ContextRoleKey).(string)
	return policy.Caller{Authenticated: subject != "", Role: role}
}

func UserID(c echo.Context) uint {
	id, _ := c.Get(ContextUserIDKey).(uint)
	return id
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
