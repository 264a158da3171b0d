package models

import (
	"time"
)

// Tenant represents a customer/organization - the root of tenant isolation.
// Tenants are never physically deleted; deprovisioning flips IsActive.
type Tenant struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" validate:"required"`
	Slug      string    `gorm:"size:50;uniqueIndex:ix_tenants_slug;not null" json:"slug" validate:"required"` // immutable external identifier
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// User represents a principal within a tenant. A user belongs to exactly one
// tenant for its lifetime; (tenant_id, email) is unique.
type User struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	TenantID     int64      `gorm:"not null;uniqueIndex:ix_users_tenant_email,priority:1;index:ix_users_tenant_role,priority:1;index:ix_users_tenant_created,priority:1" json:"tenant_id"`
	Email        string     `gorm:"size:255;not null;uniqueIndex:ix_users_tenant_email,priority:2" json:"email" validate:"required,email"`
	Username     string     `gorm:"size:100;not null" json:"username" validate:"required"`
	FullName     string     `gorm:"size:255" json:"full_name,omitempty"`
	PasswordHash string     `gorm:"size:255;column:hashed_password" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	Role         UserRole   `gorm:"size:20;not null;default:'user';index:ix_users_tenant_role,priority:2" json:"role"`
	CreatedAt    time.Time  `gorm:"not null;index:ix_users_tenant_created,priority:2" json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	// Relations
	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Conversation represents a chat thread. Status follows the machine declared
// on ConversationStatus; ClosedAt is set exactly once, at the first entry
// into a terminal status.
type Conversation struct {
	ID               int64              `gorm:"primaryKey" json:"id"`
	TenantID         int64              `gorm:"not null;index:ix_conversations_tenant_status,priority:1;index:ix_conversations_tenant_user,priority:1;index:ix_conversations_tenant_created,priority:1" json:"tenant_id"`
	UserID           *int64             `gorm:"index:ix_conversations_tenant_user,priority:2" json:"user_id,omitempty"` // null for anonymous sessions
	SessionID        string             `gorm:"size:255;not null" json:"session_id"`
	Title            string             `gorm:"size:200" json:"title,omitempty"`
	ConversationType ConversationType   `gorm:"size:15;not null;default:'support';index:ix_conversations_type" json:"conversation_type"`
	Channel          Channel            `gorm:"size:15;not null;default:'web';index:ix_conversations_channel" json:"channel"`
	Status           ConversationStatus `gorm:"size:10;not null;default:'active';index:ix_conversations_tenant_status,priority:2" json:"status"`

	ResolutionTimeMinutes *int `json:"resolution_time_minutes,omitempty"`
	SatisfactionScore     *int `json:"satisfaction_score,omitempty"`

	CreatedAt time.Time  `gorm:"not null;index:ix_conversations_tenant_created,priority:2" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`

	// Relations
	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT" json:"-"`
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}

// TableName returns the table name for the Conversation model
func (Conversation) TableName() string {
	return "conversations"
}

// Message represents one utterance within a conversation. Messages are
// append-only; the single permitted mutation is setting UserFeedback once.
// AIModel and TokensUsed are populated only for AI-generated message types.
type Message struct {
	ID             int64       `gorm:"primaryKey" json:"id"`
	TenantID       int64       `gorm:"not null;index:ix_messages_tenant_conversation,priority:1;index:ix_messages_tenant_user,priority:1" json:"tenant_id"`
	ConversationID int64       `gorm:"not null;index:ix_messages_tenant_conversation,priority:2;index:ix_messages_conversation_created,priority:1" json:"conversation_id"`
	UserID         *int64      `gorm:"index:ix_messages_tenant_user,priority:2" json:"user_id,omitempty"` // null for assistant/system messages
	Content        string      `gorm:"type:text;not null" json:"content" validate:"required"`
	MessageType    MessageType `gorm:"size:15;not null;default:'user';index:ix_messages_type" json:"message_type"`

	AIModel    string `gorm:"size:50;index:ix_messages_ai_model" json:"ai_model,omitempty"`
	TokensUsed *int   `json:"tokens_used,omitempty"`

	UserFeedback *FeedbackRating `gorm:"size:15" json:"user_feedback,omitempty"` // null until rated, then frozen

	CreatedAt time.Time `gorm:"not null;index:ix_messages_conversation_created,priority:2" json:"created_at"`

	// Relations
	Tenant       *Tenant       `gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT" json:"-"`
	Conversation *Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:RESTRICT" json:"-"`
	User         *User         `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName returns the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
