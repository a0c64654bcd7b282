package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-service/internal/repository"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

// contextUserID is the echo context key under which the resolved user
// id is stored for downstream handlers.
const contextUserID = "user_id"

// SessionAuth returns an Echo middleware that resolves the session
// cookie into a verified user id and stashes it in the request
// context. It is the single gate every identity-scoped route passes
// through: a missing or unknown token stops the request with 401
// before any handler runs. Handlers read the id back via UserID.
func SessionAuth(sessions *repository.SessionRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing cookie"})
			}
			userID, err := sessions.Resolve(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing cookie"})
			}
			c.Set(contextUserID, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id stored by SessionAuth.
// Routes behind the middleware always have it set.
func UserID(c echo.Context) uint64 {
	if v, ok := c.Get(contextUserID).(uint64); ok {
		return v
	}
	return 0
}
