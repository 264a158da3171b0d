package repo

import (
	"errors"
	"strings"
	"time"

	"cleverplus/pkg/models"

	"gorm.io/gorm"
)

// MessageRepository handles message data access. Messages are append-only:
// there is no update path except SetFeedback, which writes user_feedback
// exactly once.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a message to a conversation under the given tenant.
//
// AI-tracking rule: ai_model is required for AI-generated message types and
// forbidden (together with tokens_used) for everything else.
func (r *MessageRepository) Create(tenantID int64, msg *models.Message) error {
	if strings.TrimSpace(msg.Content) == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if msg.MessageType == "" {
		msg.MessageType = models.MessageTypeUser
	}
	if !msg.MessageType.Valid() {
		return &ValidationError{Field: "message_type", Reason: "unrecognized value " + string(msg.MessageType)}
	}
	if msg.MessageType.AIGenerated() {
		if msg.AIModel == "" {
			return &ValidationError{Field: "ai_model", Reason: "required for " + string(msg.MessageType) + " messages"}
		}
		if msg.TokensUsed != nil && *msg.TokensUsed < 0 {
			return &ValidationError{Field: "tokens_used", Reason: "must not be negative"}
		}
	} else {
		if msg.AIModel != "" {
			return &ValidationError{Field: "ai_model", Reason: "only allowed on AI-generated messages"}
		}
		if msg.TokensUsed != nil {
			return &ValidationError{Field: "tokens_used", Reason: "only allowed on AI-generated messages"}
		}
	}
	if msg.UserFeedback != nil && !msg.UserFeedback.Valid() {
		return &ValidationError{Field: "user_feedback", Reason: "unrecognized value " + string(*msg.UserFeedback)}
	}

	msg.ID = 0
	msg.TenantID = tenantID
	msg.CreatedAt = time.Now().UTC()

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Conversation{}).
			Where("id = ? AND tenant_id = ?", msg.ConversationID, tenantID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &ReferentialError{Entity: "message", Field: "conversation_id", ID: msg.ConversationID}
		}

		if msg.UserID != nil {
			if err := tx.Model(&models.User{}).
				Where("id = ? AND tenant_id = ?", *msg.UserID, tenantID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return &ReferentialError{Entity: "message", Field: "user_id", ID: *msg.UserID}
			}
		}

		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		// An appended message bumps the conversation's activity clock
		return tx.Model(&models.Conversation{}).
			Where("id = ? AND tenant_id = ?", msg.ConversationID, tenantID).
			Update("updated_at", msg.CreatedAt).Error
	})
}

// GetByID gets a message by ID within the tenant
func (r *MessageRepository) GetByID(tenantID, id int64) (*models.Message, error) {
	var msg models.Message
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "message", ID: id}
		}
		return nil, err
	}
	return &msg, nil
}

// ListByConversation lists a conversation's messages in chronological order,
// ties broken by id so insertion order is stable.
func (r *MessageRepository) ListByConversation(tenantID, conversationID int64, limit, offset int) (models.PaginationResult[models.Message], error) {
	var messages []models.Message
	var total int64

	// Resolve the conversation under the tenant first so a foreign
	// conversation id reads as not found, not as an empty list.
	var count int64
	if err := r.db.Model(&models.Conversation{}).
		Where("id = ? AND tenant_id = ?", conversationID, tenantID).
		Count(&count).Error; err != nil {
		return models.PaginationResult[models.Message]{}, err
	}
	if count == 0 {
		return models.PaginationResult[models.Message]{}, &NotFoundError{Entity: "conversation", ID: conversationID}
	}

	query := r.db.Model(&models.Message{}).
		Where("tenant_id = ? AND conversation_id = ?", tenantID, conversationID)

	if err := query.Count(&total).Error; err != nil {
		return models.PaginationResult[models.Message]{}, err
	}

	err := query.Order("created_at ASC, id ASC").Limit(limit).Offset(offset).Find(&messages).Error
	if err != nil {
		return models.PaginationResult[models.Message]{}, err
	}

	return models.NewPaginationResult(messages, total, offset/limit+1, limit), nil
}

// SetFeedback records the user's rating of a message. The rating can be set
// exactly once; the conditional update makes concurrent raters race for a
// single NULL-to-value write.
func (r *MessageRepository) SetFeedback(tenantID, id int64, rating models.FeedbackRating) (*models.Message, error) {
	if !rating.Valid() {
		return nil, &ValidationError{Field: "user_feedback", Reason: "unrecognized value " + string(rating)}
	}

	var msg models.Message
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Message{}).
			Where("id = ? AND tenant_id = ? AND user_feedback IS NULL", id, tenantID).
			Update("user_feedback", rating)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&msg).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "message", ID: id}
				}
				return err
			}
			return &ImmutableFieldError{Entity: "message", Field: "user_feedback"}
		}
		return tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&msg).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
