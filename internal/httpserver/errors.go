package httpserver

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onenotebe/onenotebe/internal/logging"
	"github.com/onenotebe/onenotebe/internal/service"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, apiResponse{Success: true, Data: data})
}

// errorHandler maps core error kinds to status codes. Unanticipated errors
// are logged server-side and reported generically, never with internal
// detail.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	msg := "an unexpected error occurred"

	switch {
	case errors.Is(err, service.ErrValidation):
		status, code, msg = http.StatusBadRequest, "BAD_REQUEST", err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, code, msg = http.StatusUnauthorized, "UNAUTHORIZED", service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrUnauthorized):
		status, code, msg = http.StatusUnauthorized, "UNAUTHORIZED", "authentication required or failed"
	case errors.Is(err, service.ErrForbidden):
		status, code, msg = http.StatusForbidden, "FORBIDDEN", "you do not have permission to perform this action"
	case errors.Is(err, service.ErrDuplicateUsername), errors.Is(err, service.ErrDuplicateEmail):
		status, code, msg = http.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, service.ErrRateLimitExceeded):
		status, code, msg = http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "too many registration attempts, please try again later"
	case errors.Is(err, service.ErrNotFound):
		status, code, msg = http.StatusNotFound, "NOT_FOUND", err.Error()
	default:
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			code = strings.ReplaceAll(strings.ToUpper(http.StatusText(status)), " ", "_")
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		} else {
			logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, apiResponse{Success: false, Error: &apiError{Code: code, Message: msg}})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// direct connection address.
func clientIP(c echo.Context) string {
	if fwd := c.Request().Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if host, _, err := net.SplitHostPort(c.Request().RemoteAddr); err == nil {
		return host
	}
	return c.Request().RemoteAddr
}
