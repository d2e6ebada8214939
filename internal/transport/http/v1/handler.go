// Package v1 provides the HTTP handlers for the trip-planning API.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eazymytrip/backend/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service   *service.Service
	jwtSecret []byte
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service, jwtSecret string) *Handler {
	return &Handler{
		service:   svc,
		jwtSecret: []byte(jwtSecret),
	}
}

// RegisterRoutes registers routes with the echo server. All chat routes
// require a bearer token.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/v1", h.JWTAuth)

	g.POST("/chat", h.Chat)
	g.GET("/chats", h.ListChats)
	g.GET("/chats/:chat_id", h.GetChat)
	g.GET("/chats/:chat_id/messages", h.ListMessages)
	g.POST("/chats/:chat_id/messages", h.CreateMessage)

	e.GET("/healthz", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
