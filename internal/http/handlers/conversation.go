package handlers

import (
	"net/http"

	"cleverplus/internal/http/middleware"
	"cleverplus/internal/metrics"
	"cleverplus/internal/repo"
	"cleverplus/pkg/models"

	"github.com/labstack/echo/v4"
)

// ConversationHandler exposes tenant-scoped conversation management
type ConversationHandler struct {
	conversationRepo *repo.ConversationRepository
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversationRepo *repo.ConversationRepository) *ConversationHandler {
	return &ConversationHandler{conversationRepo: conversationRepo}
}

// CreateConversationRequest is the payload for opening a conversation
type CreateConversationRequest struct {
	UserID           *int64 `json:"user_id,omitempty"`
	SessionID        string `json:"session_id,omitempty"`
	Title            string `json:"title,omitempty"`
	ConversationType string `json:"conversation_type,omitempty" validate:"omitempty,oneof=support sales general feedback billing technical"`
	Channel          string `json:"channel,omitempty" validate:"omitempty,oneof=web telegram email whatsapp mobile_app"`
}

// UpdateConversationRequest is the payload for conversation updates. Status
// changes go through the transition endpoint, never through here.
type UpdateConversationRequest struct {
	Title                 *string `json:"title,omitempty"`
	ResolutionTimeMinutes *int    `json:"resolution_time_minutes,omitempty"`
	SatisfactionScore     *int    `json:"satisfaction_score,omitempty"`
}

// TransitionRequest is the payload for a status transition
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=active closed escalated archived pending"`
}

// Create opens a new conversation within the request's tenant
func (h *ConversationHandler) Create(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)

	var req CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	conv := &models.Conversation{
		UserID:           req.UserID,
		SessionID:        req.SessionID,
		Title:            req.Title,
		ConversationType: models.ConversationType(req.ConversationType),
		Channel:          models.Channel(req.Channel),
	}
	if err := h.conversationRepo.Create(tenantID, conv); err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusCreated, conv)
}

// GetByID returns a conversation within the request's tenant
func (h *ConversationHandler) GetByID(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	conv, err := h.conversationRepo.GetByID(tenantID, id)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, conv)
}

// recordTransition increments the transition counter when metrics are wired
func recordTransition(status, outcome string) {
	if metrics.ConversationTransitionsTotal != nil {
		metrics.ConversationTransitionsTotal.WithLabelValues(status, outcome).Inc()
	}
}

// List returns a page of the tenant's conversations with optional filters
func (h *ConversationHandler) List(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	limit, offset := parsePagination(c)

	var filter repo.ConversationFilter
	if status := c.QueryParam("status"); status != "" {
		s := models.ConversationStatus(status)
		filter.Status = &s
	}
	if convType := c.QueryParam("conversation_type"); convType != "" {
		t := models.ConversationType(convType)
		filter.ConversationType = &t
	}
	if channel := c.QueryParam("channel"); channel != "" {
		ch := models.Channel(channel)
		filter.Channel = &ch
	}
	if userID := c.QueryParam("user_id"); userID != "" {
		id, err := parseQueryID(userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id")
		}
		filter.UserID = &id
	}

	result, err := h.conversationRepo.List(tenantID, filter, limit, offset)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Update applies changes to a conversation within the request's tenant
func (h *ConversationHandler) Update(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	conv, err := h.conversationRepo.Update(tenantID, id, repo.ConversationUpdate{
		Title:                 req.Title,
		ResolutionTimeMinutes: req.ResolutionTimeMinutes,
		SatisfactionScore:     req.SatisfactionScore,
	})
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, conv)
}

// Transition moves a conversation through the status machine
func (h *ConversationHandler) Transition(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	conv, err := h.conversationRepo.TransitionStatus(tenantID, id, models.ConversationStatus(req.Status))
	if err != nil {
		recordTransition(req.Status, "rejected")
		return writeRepoError(c, err)
	}
	recordTransition(req.Status, "applied")

	return c.JSON(http.StatusOK, conv)
}
