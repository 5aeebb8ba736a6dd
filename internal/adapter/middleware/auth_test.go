package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nexus-backend/internal/domain/user"
	"nexus-backend/internal/session"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return session.NewStore(rdb, time.Minute)
}

func whoamiHandler(c echo.Context) error {
	sess := CurrentSession(c)
	return c.JSON(http.StatusOK, map[string]string{"username": sess.Username, "role": sess.Role})
}

func authReq(t *testing.T, e *echo.Echo, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	store := newSessionStore(t)
	e := echo.New()
	e.GET("/me", whoamiHandler, RequireAuth(store))

	t.Run("valid token passes and exposes the session", func(t *testing.T) {
		token, err := store.Issue(context.Background(), "boss", user.RoleAdmin)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		rec := authReq(t, e, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing header is 401", func(t *testing.T) {
		if rec := authReq(t, e, ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("code = %d", rec.Code)
		}
	})

	t.Run("unknown token is 401", func(t *testing.T) {
		if rec := authReq(t, e, "deadbeefdeadbeefdeadbeefdeadbeef"); rec.Code != http.StatusUnauthorized {
			t.Fatalf("code = %d", rec.Code)
		}
	})
}

func TestRequireRoles(t *testing.T) {
	store := newSessionStore(t)
	e := echo.New()
	e.GET("/me", whoamiHandler, RequireAuth(store), RequireRoles(user.RoleAdmin))

	adminToken, _ := store.Issue(context.Background(), "boss", user.RoleAdmin)
	officeToken, _ := store.Issue(context.Background(), "clerk", user.RoleOffice)

	if rec := authReq(t, e, adminToken); rec.Code != http.StatusOK {
		t.Fatalf("admin code = %d", rec.Code)
	}
	if rec := authReq(t, e, officeToken); rec.Code != http.StatusForbidden {
		t.Fatalf("office code = %d, want 403", rec.Code)
	}
}
