package handlers

import (
	"net/http"

	"cleverplus/pkg/models"

	"github.com/labstack/echo/v4"
)

// MetaHandler serves the closed vocabularies for UI dropdowns and API
// consumers. The lists here are the same ones the repositories validate
// against.
type MetaHandler struct{}

// NewMetaHandler creates a new meta handler
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Vocabularies returns every closed vocabulary and its permitted values
func (h *MetaHandler) Vocabularies(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"channel":             models.ChannelValues(),
		"conversation_type":   models.ConversationTypeValues(),
		"conversation_status": models.ConversationStatusValues(),
		"message_type":        models.MessageTypeValues(),
		"user_role":           models.UserRoleValues(),
		"feedback_rating":     models.FeedbackRatingValues(),
	})
}
