package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eazymytrip/backend/internal/domain"
	"github.com/eazymytrip/backend/internal/service"
)

// Chat runs one conversational turn.
// POST /v1/chat
func (h *Handler) Chat(c echo.Context) error {
	var payload service.ChatPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if payload.SessionID == "" || payload.UserMessage == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "session_id and user_message are required"})
	}
	payload.UserID = currentUserID(c)

	reply, err := h.service.HandleChat(c.Request().Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, reply)
}

// ListChats returns the caller's chats.
// GET /v1/chats
func (h *Handler) ListChats(c echo.Context) error {
	chats, err := h.service.ListChats(c.Request().Context(), currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"chats": chats,
		"total": len(chats),
	})
}

// GetChat returns one chat with its full message history.
// GET /v1/chats/:chat_id
func (h *Handler) GetChat(c echo.Context) error {
	chat, messages, err := h.service.GetChat(c.Request().Context(), c.Param("chat_id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "chat not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"chat":     chat,
		"messages": messages,
	})
}

// ListMessages returns a page of messages for a chat, oldest first.
// GET /v1/chats/:chat_id/messages?before=&limit=
func (h *Handler) ListMessages(c echo.Context) error {
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}
	before := int64(0)
	if b := c.QueryParam("before"); b != "" {
		if val, err := strconv.ParseInt(b, 10, 64); err == nil {
			before = val
		}
	}

	messages, hasMore, err := h.service.ListMessages(c.Request().Context(), c.Param("chat_id"), currentUserID(c), before, limit)
	if err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "chat not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
		"has_more": hasMore,
	})
}

// CreateMessage appends a message to a chat without running the assistant.
// POST /v1/chats/:chat_id/messages
func (h *Handler) CreateMessage(c echo.Context) error {
	var msg domain.Message
	if err := c.Bind(&msg); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	msg.ChatID = c.Param("chat_id")

	if err := msg.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id, err := h.service.CreateMessage(c.Request().Context(), currentUserID(c), &msg)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"id":      id,
		"message": "Message created successfully",
	})
}
