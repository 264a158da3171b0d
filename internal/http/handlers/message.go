package handlers

import (
	"net/http"
	"strconv"

	"cleverplus/internal/http/middleware"
	"cleverplus/internal/metrics"
	"cleverplus/internal/repo"
	"cleverplus/pkg/models"

	"github.com/labstack/echo/v4"
)

// MessageHandler exposes tenant-scoped message access. Messages are
// append-only; the only mutation is the one-shot feedback rating.
type MessageHandler struct {
	messageRepo *repo.MessageRepository
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageRepo *repo.MessageRepository) *MessageHandler {
	return &MessageHandler{messageRepo: messageRepo}
}

// CreateMessageRequest is the payload for appending a message
type CreateMessageRequest struct {
	UserID      *int64 `json:"user_id,omitempty"`
	Content     string `json:"content" validate:"required"`
	MessageType string `json:"message_type,omitempty" validate:"omitempty,oneof=user assistant system human_agent developer tester"`
	AIModel     string `json:"ai_model,omitempty"`
	TokensUsed  *int   `json:"tokens_used,omitempty"`
}

// FeedbackRequest is the payload for rating a message
type FeedbackRequest struct {
	Rating string `json:"rating" validate:"required,oneof=thumbs_up thumbs_down"`
}

// Create appends a message to a conversation within the request's tenant
func (h *MessageHandler) Create(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	conversationID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	msg := &models.Message{
		ConversationID: conversationID,
		UserID:         req.UserID,
		Content:        req.Content,
		MessageType:    models.MessageType(req.MessageType),
		AIModel:        req.AIModel,
		TokensUsed:     req.TokensUsed,
	}
	if err := h.messageRepo.Create(tenantID, msg); err != nil {
		return writeRepoError(c, err)
	}
	if metrics.MessagesAppendedTotal != nil {
		metrics.MessagesAppendedTotal.WithLabelValues(string(msg.MessageType)).Inc()
	}

	return c.JSON(http.StatusCreated, msg)
}

// ListByConversation returns a conversation's messages in chronological order
func (h *MessageHandler) ListByConversation(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	conversationID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)

	result, err := h.messageRepo.ListByConversation(tenantID, conversationID, limit, offset)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetByID returns a single message within the request's tenant
func (h *MessageHandler) GetByID(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	msg, err := h.messageRepo.GetByID(tenantID, id)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, msg)
}

// SetFeedback records the one-shot feedback rating on a message
func (h *MessageHandler) SetFeedback(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	msg, err := h.messageRepo.SetFeedback(tenantID, id, models.FeedbackRating(req.Rating))
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, msg)
}

// parseQueryID parses a numeric id from a query parameter value
func parseQueryID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err == nil && id <= 0 {
		err = strconv.ErrRange
	}
	return id, err
}
