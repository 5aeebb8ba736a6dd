package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"nexus-backend/internal/adapter/middleware"
	"nexus-backend/internal/domain/user"
	"nexus-backend/internal/session"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	users    user.Repository
	sessions *session.Store
}

func NewAuthHandler(users user.Repository, sessions *session.Store) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	u, err := h.users.GetByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Same answer as a bad password so usernames cannot be probed.
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(req.Password)) != 1 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	}

	token, err := h.sessions.Issue(c.Request().Context(), u.Username, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
	}
	return c.JSON(http.StatusOK, loginResp{Token: token, Role: u.Role})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token != "" {
		_ = h.sessions.Revoke(c.Request().Context(), token)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}
	return c.JSON(http.StatusOK, map[string]string{"username": sess.Username, "role": sess.Role})
}
