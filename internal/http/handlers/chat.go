package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ChatHandler is the placeholder for the AI chat surface. Inference is not
// wired yet; the endpoint advertises itself so clients can probe for it.
type ChatHandler struct{}

// NewChatHandler creates a new chat handler
func NewChatHandler() *ChatHandler {
	return &ChatHandler{}
}

// Chat is the base endpoint for chat (empty)
func (h *ChatHandler) Chat(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Chat endpoint - coming soon",
		"status":  "not_implemented",
	})
}
