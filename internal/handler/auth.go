package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-service/internal/middleware"
	"github.com/iliyamo/chat-service/internal/repository"
)

// AuthHandler bundles dependencies for login, logout and profile.
type AuthHandler struct {
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Messages *repository.MessageRepo
}

func NewAuthHandler(u *repository.UserRepo, s *repository.SessionRepo, m *repository.MessageRepo) *AuthHandler {
	return &AuthHandler{Users: u, Sessions: s, Messages: m}
}

// ----- DTOs -----

type loginReq struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type profileResp struct {
	UserID       uint64 `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"isAdmin"`
	MessageCount int    `json:"messageCount"`
}

// Login authenticates by username or email plus exact password and
// hands out a fresh session cookie. A client that still holds a live
// session must log out first.
func (h *AuthHandler) Login(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if _, err := h.Sessions.Resolve(cookie.Value); err == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user is already logged in"})
		}
	}

	var req loginReq
	if err := decodeStrict(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var username, email string
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		email = strings.TrimSpace(*req.Email)
	}
	if username == "" && email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing username or email"})
	}
	if req.Password == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing password"})
	}

	u, err := h.Users.FindByIdentity(username, email, *req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.Sessions.Create(u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	c.SetCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token, Path: "/"})
	return c.NoContent(http.StatusNoContent)
}

// Logout invalidates the presented session. Logging out with a token
// that is no longer valid yields 401, never a silent success.
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing cookie"})
	}
	if err := h.Sessions.Delete(cookie.Value); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing cookie"})
	}
	clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Profile returns the authenticated user's own record, including the
// number of messages they currently have.
func (h *AuthHandler) Profile(c echo.Context) error {
	userID := middleware.UserID(c)

	u, err := h.Users.Get(userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, profileResp{
		UserID:       u.ID,
		Username:     u.Username,
		Email:        u.Email,
		IsAdmin:      u.IsAdmin,
		MessageCount: h.Messages.CountForUser(u.ID),
	})
}
