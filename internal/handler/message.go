package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-service/internal/middleware"
	"github.com/iliyamo/chat-service/internal/model"
	"github.com/iliyamo/chat-service/internal/queue"
	"github.com/iliyamo/chat-service/internal/repository"
	queuepublisher "github.com/iliyamo/chat-service/internal/service"
	"github.com/iliyamo/chat-service/internal/utils"
)

// MessageHandler bundles dependencies for the message endpoints.
// EmitEvents switches broker publishing on; it stays off in tests and
// when no broker is configured.
type MessageHandler struct {
	Messages   *repository.MessageRepo
	Users      *repository.UserRepo
	EmitEvents bool
}

func NewMessageHandler(m *repository.MessageRepo, u *repository.UserRepo, emitEvents bool) *MessageHandler {
	return &MessageHandler{Messages: m, Users: u, EmitEvents: emitEvents}
}

// ----- DTOs -----

type messageReq struct {
	Content *string `json:"content"`
}

type createdMessageResp struct {
	UserID  uint64 `json:"userId"`
	MsgID   uint64 `json:"msgId"`
	Content string `json:"content"`
}

type editedMessageResp struct {
	MsgID   uint64 `json:"msgId"`
	Content string `json:"content"`
}

type mineItem struct {
	MsgID     uint64     `json:"msgId"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt"`
	Content   string     `json:"content"`
}

type listItem struct {
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt"`
	Content   string     `json:"content"`
}

// Create posts a new message authored by the session user.
func (h *MessageHandler) Create(c echo.Context) error {
	userID := middleware.UserID(c)

	var req messageReq
	if err := decodeStrict(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Content == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing content"})
	}

	m, err := h.Messages.Create(userID, *req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyContent) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing content"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create message failed"})
	}

	h.emit(queue.KindCreated, m)
	return c.JSON(http.StatusCreated, createdMessageResp{UserID: m.UserID, MsgID: m.ID, Content: m.Content})
}

// Edit replaces the content of one of the caller's own messages.
func (h *MessageHandler) Edit(c echo.Context) error {
	userID := middleware.UserID(c)

	msgID, err := pathID(c, "msgId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}

	var req messageReq
	if err := decodeStrict(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Content == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing content"})
	}

	m, err := h.Messages.Edit(msgID, userID, *req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only update your own messages"})
		case errors.Is(err, repository.ErrEmptyContent):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing content"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update message failed"})
	}

	h.emit(queue.KindEdited, m)
	return c.JSON(http.StatusOK, editedMessageResp{MsgID: m.ID, Content: m.Content})
}

// Delete removes one of the caller's own messages. Ownership
// violations answer 403 just like Edit does.
func (h *MessageHandler) Delete(c echo.Context) error {
	userID := middleware.UserID(c)

	msgID, err := pathID(c, "msgId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}

	if err := h.Messages.Delete(msgID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only delete your own messages"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete message failed"})
	}

	h.emit(queue.KindDeleted, model.Message{ID: msgID, UserID: userID})
	return c.NoContent(http.StatusNoContent)
}

// Mine lists the caller's own messages with their timestamps.
func (h *MessageHandler) Mine(c echo.Context) error {
	userID := middleware.UserID(c)

	msgs := h.Messages.ListByUser(userID)
	items := make([]mineItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, mineItem{MsgID: m.ID, CreatedAt: m.CreatedAt, EditedAt: m.EditedAt, Content: m.Content})
	}
	return c.JSON(http.StatusOK, items)
}

// List serves the message listing. The two request shapes are
// mutually exclusive:
//
// With query parameters, only since (strict dd-mm-yyyy, taken as UTC
// midnight) and username (non-blank, matched case-insensitively
// against the author) are permitted; anything else is a 400. A
// message survives the since filter only if it was created on or
// after the instant and, when edited, last edited on or after it.
// This path never evaluates the conditional-cache header.
//
// Without query parameters, an If-Modified-Since header is honoured:
// when the freshness watermark is not strictly after it, the response
// is 304 with no body. A full listing always carries the watermark in
// Last-Modified.
func (h *MessageHandler) List(c echo.Context) error {
	params := c.QueryParams()

	var sinceAt *time.Time
	var username string

	if len(params) > 0 {
		for key := range params {
			if key != "username" && key != "since" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unexpected query parameter: " + key})
			}
		}

		if since := c.QueryParam("since"); since != "" {
			t, err := utils.ParseDayDate(since)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "since parameter must be in format dd-mm-yyyy"})
			}
			sinceAt = &t
		}

		username = c.QueryParam("username")
		if params.Has("username") && username == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username parameter cannot be blank"})
		}
	} else if header := c.Request().Header.Get("If-Modified-Since"); header != "" {
		ifModifiedSince, err := time.Parse(http.TimeFormat, header)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid If-Modified-Since header format"})
		}
		if !h.Messages.LastModified().After(ifModifiedSince) {
			return c.NoContent(http.StatusNotModified)
		}
	}

	items := make([]listItem, 0)
	for _, m := range h.Messages.List() {
		if sinceAt != nil && m.CreatedAt.Before(*sinceAt) {
			continue
		}
		if sinceAt != nil && m.EditedAt != nil && m.EditedAt.Before(*sinceAt) {
			continue
		}
		author, err := h.Users.Get(m.UserID)
		if err != nil {
			// author deleted between cascade steps; skip rather than fail
			continue
		}
		if username != "" && !strings.EqualFold(author.Username, username) {
			continue
		}
		items = append(items, listItem{Username: author.Username, CreatedAt: m.CreatedAt, EditedAt: m.EditedAt, Content: m.Content})
	}

	if len(params) == 0 {
		c.Response().Header().Set("Last-Modified", h.Messages.LastModified().UTC().Format(http.TimeFormat))
	}
	return c.JSON(http.StatusOK, items)
}

// emit publishes a best-effort activity event when enabled; failures
// are logged inside the publisher and ignored here.
func (h *MessageHandler) emit(kind string, m model.Message) {
	if !h.EmitEvents {
		return
	}
	username := ""
	if u, err := h.Users.Get(m.UserID); err == nil {
		username = u.Username
	}
	ev := queue.MessageActivityEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		MsgID:      m.ID,
		UserID:     m.UserID,
		Username:   username,
		Content:    m.Content,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queuepublisher.PublishMessageActivity(ctx, ev)
}
