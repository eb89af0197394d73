package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
)

// Context keys set by RequireSession
const (
	SessionKey = "session"
	UserIDKey  = "user_id"
)

// SessionSource exposes the signed-in session
type SessionSource interface {
	Current() entities.Session
}

// RequireSession rejects requests while nobody is signed in and puts the
// session and user id into the echo context.
func RequireSession(sessions SessionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Current()
			if !s.IsAuthenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not signed in")
			}

			c.Set(SessionKey, s)
			c.Set(UserIDKey, s.UserID())
			return next(c)
		}
	}
}

// RequireAdmin only lets administrators through. It expects RequireSession
// to run first.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := GetSession(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not signed in")
			}
			if !s.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Administrator role required")
			}
			return next(c)
		}
	}
}

// GetSession retrieves the session stored by RequireSession
func GetSession(c echo.Context) (entities.Session, bool) {
	s, ok := c.Get(SessionKey).(entities.Session)
	return s, ok
}

// GetUserID retrieves the signed-in user id, or "" when unknown
func GetUserID(c echo.Context) entities.ID {
	id, _ := c.Get(UserIDKey).(entities.ID)
	return id
}
