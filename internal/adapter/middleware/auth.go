package middleware

import (
	"net/http"
	"strings"

	"nexus-backend/internal/session"

	"github.com/labstack/echo/v4"
)

const sessionContextKey = "nexus.session"

// RequireAuth resolves the Bearer token against the session store and places
// the session on the echo context for downstream handlers.
func RequireAuth(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			token := strings.TrimSpace(header[len("bearer "):])

			sess, err := store.Resolve(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// RequireRoles rejects sessions whose role is not in the allow list.
// Must run after RequireAuth.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "no session"})
			}
			if _, ok := allowed[sess.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "role not allowed for this resource"})
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session set by RequireAuth, or nil.
func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}
