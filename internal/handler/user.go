package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-service/internal/middleware"
	"github.com/iliyamo/chat-service/internal/repository"
)

// UserHandler bundles dependencies for the account endpoints.
// Deleting an account cascades into the message and session stores,
// so all three repos are wired in.
type UserHandler struct {
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Messages *repository.MessageRepo
}

func NewUserHandler(u *repository.UserRepo, s *repository.SessionRepo, m *repository.MessageRepo) *UserHandler {
	return &UserHandler{Users: u, Sessions: s, Messages: m}
}

// ----- DTOs -----

type createUserReq struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type updateUserReq struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type createdUserResp struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type userListItem struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username"`
}

// Create registers a new account. Username and email collisions are
// checked case-insensitively and answered with 409.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := decodeStrict(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing username"})
	}
	if req.Email == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing email"})
	}
	if req.Password == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing password"})
	}

	u, err := h.Users.Create(*req.Username, *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, createdUserResp{UserID: u.ID, Username: u.Username, Email: u.Email})
}

// GetOne returns the public projection of a single user.
func (h *UserHandler) GetOne(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	u, err := h.Users.Get(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, userListItem{UserID: u.ID, Username: u.Username})
}

// List returns all users, optionally narrowed by an exact
// case-insensitive ?username= match. Any other query key is rejected.
// An empty result answers 204 with no body.
func (h *UserHandler) List(c echo.Context) error {
	for key := range c.QueryParams() {
		if key != "username" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unexpected query parameter: " + key})
		}
	}

	users := h.Users.List(c.QueryParam("username"))
	if len(users) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	items := make([]userListItem, 0, len(users))
	for _, u := range users {
		items = append(items, userListItem{UserID: u.ID, Username: u.Username})
	}
	return c.JSON(http.StatusOK, items)
}

// Update changes the caller's own email and/or password. The response
// echoes only the fields that were supplied; the password comes back
// as a literal acknowledgement, never its value.
func (h *UserHandler) Update(c echo.Context) error {
	userID := middleware.UserID(c)

	pathUserID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if userID != pathUserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only update your own user"})
	}

	var req updateUserReq
	if err := decodeStrict(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == nil && req.Password == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request body is missing or empty"})
	}

	u, err := h.Users.Update(userID, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}

	resp := echo.Map{"userId": u.ID, "username": u.Username}
	if req.Email != nil {
		resp["email"] = u.Email
	}
	if req.Password != nil {
		resp["password"] = "password has been updated"
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete removes the caller's own account, cascading into message
// deletion and invalidating every session the user holds.
func (h *UserHandler) Delete(c echo.Context) error {
	userID := middleware.UserID(c)

	pathUserID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if _, err := h.Users.Get(pathUserID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if userID != pathUserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only delete your own user"})
	}

	h.Messages.DeleteAllForUser(pathUserID)
	h.Users.Delete(pathUserID)
	h.Sessions.DeleteForUser(pathUserID)

	clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}
