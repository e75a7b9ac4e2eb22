package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// Context keys populated by Session.
const (
	ContextUserID    = "user_id"
	ContextSessionID = "session_id"
)

// Authenticator resolves a session id to the owning user id.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (string, error)
}

// SessionReader extracts the session id carried by the request.
type SessionReader interface {
	SessionID(c echo.Context) (string, bool)
}

// Session loads the caller's session, when there is one, and injects the user
// id into the request context. Requests without a usable session pass through
// anonymously; RequireUser gates the routes that need one.
func Session(auth Authenticator, cookies SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, ok := cookies.SessionID(c)
			if !ok {
				return next(c)
			}

			userID, err := auth.Authenticate(c.Request().Context(), sid)
			switch {
			case errors.Is(err, domain.ErrNotAuthenticated):
				return next(c)
			case err != nil:
				return err
			}

			c.Set(ContextSessionID, sid)
			c.Set(ContextUserID, userID)
			return next(c)
		}
	}
}

// RequireUser rejects requests that Session did not authenticate.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, _ := c.Get(ContextUserID).(string); id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			return next(c)
		}
	}
}
