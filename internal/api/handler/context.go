package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/linkboard/linkboard-api/internal/api/middleware"
	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// currentUser returns the user id injected by the Session middleware. It is a
// fast-fail check for handlers mounted without RequireUser.
func currentUser(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	if id == "" {
		return "", domain.ErrNotAuthenticated
	}
	return id, nil
}

func currentSession(c echo.Context) string {
	sid, _ := c.Get(middleware.ContextSessionID).(string)
	return sid
}
