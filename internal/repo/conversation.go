package repo

import (
	"errors"
	"time"

	"cleverplus/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationRepository handles conversation data access. Every operation is
// scoped to an explicit tenant id; the status machine is enforced here since
// the storage layer cannot express the transition graph.
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// ConversationFilter narrows List results
type ConversationFilter struct {
	Status           *models.ConversationStatus
	ConversationType *models.ConversationType
	Channel          *models.Channel
	UserID           *int64
}

// ConversationUpdate describes the mutable conversation fields. Status is
// deliberately absent: status only moves through TransitionStatus.
type ConversationUpdate struct {
	Title                 *string
	ResolutionTimeMinutes *int
	SatisfactionScore     *int
}

// Create opens a new conversation under the given tenant. Conversations
// always start active.
func (r *ConversationRepository) Create(tenantID int64, conv *models.Conversation) error {
	if conv.ConversationType == "" {
		conv.ConversationType = models.ConversationTypeSupport
	}
	if !conv.ConversationType.Valid() {
		return &ValidationError{Field: "conversation_type", Reason: "unrecognized value " + string(conv.ConversationType)}
	}
	if conv.Channel == "" {
		conv.Channel = models.ChannelWeb
	}
	if !conv.Channel.Valid() {
		return &ValidationError{Field: "channel", Reason: "unrecognized value " + string(conv.Channel)}
	}
	if conv.Status != "" && conv.Status != models.ConversationStatusActive {
		return &ValidationError{Field: "status", Reason: "new conversations start active"}
	}
	conv.Status = models.ConversationStatusActive
	if conv.SessionID == "" {
		conv.SessionID = uuid.New().String()
	}

	now := time.Now().UTC()
	conv.ID = 0
	conv.TenantID = tenantID
	conv.CreatedAt = now
	conv.UpdatedAt = now
	conv.ClosedAt = nil
	conv.ResolutionTimeMinutes = nil
	conv.SatisfactionScore = nil

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tenant{}).Where("id = ?", tenantID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &ReferentialError{Entity: "conversation", Field: "tenant_id", ID: tenantID}
		}

		// Owning user, when present, must live in the same tenant
		if conv.UserID != nil {
			if err := tx.Model(&models.User{}).
				Where("id = ? AND tenant_id = ?", *conv.UserID, tenantID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return &ReferentialError{Entity: "conversation", Field: "user_id", ID: *conv.UserID}
			}
		}

		return tx.Create(conv).Error
	})
}

// GetByID gets a conversation by ID within the tenant
func (r *ConversationRepository) GetByID(tenantID, id int64) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "conversation", ID: id}
		}
		return nil, err
	}
	return &conv, nil
}

// List lists conversations within the tenant with pagination, newest first
func (r *ConversationRepository) List(tenantID int64, filter ConversationFilter, limit, offset int) (models.PaginationResult[models.Conversation], error) {
	var conversations []models.Conversation
	var total int64

	query := r.db.Model(&models.Conversation{}).Where("tenant_id = ?", tenantID)
	if filter.Status != nil {
		if !filter.Status.Valid() {
			return models.PaginationResult[models.Conversation]{}, &ValidationError{Field: "status", Reason: "unrecognized value " + string(*filter.Status)}
		}
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ConversationType != nil {
		if !filter.ConversationType.Valid() {
			return models.PaginationResult[models.Conversation]{}, &ValidationError{Field: "conversation_type", Reason: "unrecognized value " + string(*filter.ConversationType)}
		}
		query = query.Where("conversation_type = ?", *filter.ConversationType)
	}
	if filter.Channel != nil {
		if !filter.Channel.Valid() {
			return models.PaginationResult[models.Conversation]{}, &ValidationError{Field: "channel", Reason: "unrecognized value " + string(*filter.Channel)}
		}
		query = query.Where("channel = ?", *filter.Channel)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return models.PaginationResult[models.Conversation]{}, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&conversations).Error
	if err != nil {
		return models.PaginationResult[models.Conversation]{}, err
	}

	return models.NewPaginationResult(conversations, total, offset/limit+1, limit), nil
}

// Update applies the given changes to a conversation within the tenant
func (r *ConversationRepository) Update(tenantID, id int64, changes ConversationUpdate) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&conv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "conversation", ID: id}
			}
			return err
		}
		if changes.Title != nil {
			conv.Title = *changes.Title
		}
		if changes.ResolutionTimeMinutes != nil {
			if *changes.ResolutionTimeMinutes < 0 {
				return &ValidationError{Field: "resolution_time_minutes", Reason: "must not be negative"}
			}
			conv.ResolutionTimeMinutes = changes.ResolutionTimeMinutes
		}
		if changes.SatisfactionScore != nil {
			conv.SatisfactionScore = changes.SatisfactionScore
		}
		conv.UpdatedAt = time.Now().UTC()
		return tx.Save(&conv).Error
	})
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// TransitionStatus moves a conversation through the status machine. The first
// entry into a terminal status stamps closed_at; terminal statuses admit no
// further transitions, so closed_at is written at most once. The update is
// conditional on the status the decision was made against, so a concurrent
// transition cannot slip through.
func (r *ConversationRepository) TransitionStatus(tenantID, id int64, next models.ConversationStatus) (*models.Conversation, error) {
	if !next.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unrecognized value " + string(next)}
	}

	var conv models.Conversation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&conv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "conversation", ID: id}
			}
			return err
		}

		current := conv.Status
		if !current.CanTransitionTo(next) {
			return &InvalidTransitionError{From: current, To: next}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":     next,
			"updated_at": now,
		}
		if next.Terminal() && conv.ClosedAt == nil {
			updates["closed_at"] = now
		}

		result := tx.Model(&models.Conversation{}).
			Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, current).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost a race with another writer; whatever it did, this
			// transition was not taken from the observed status.
			return &InvalidTransitionError{From: current, To: next}
		}

		return tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&conv).Error
	})
	if err != nil {
		return nil, err
	}
	return &conv, nil
}
