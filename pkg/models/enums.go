package models

// Closed vocabularies for database field values. Each type carries the full
// set of permitted values; Valid() is checked at every write boundary in the
// repository layer, the HTTP layer mirrors the sets with oneof validation.

// Channel is the communication channel a conversation originated from
type Channel string

const (
	ChannelWeb       Channel = "web"
	ChannelTelegram  Channel = "telegram"
	ChannelEmail     Channel = "email"
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelMobileApp Channel = "mobile_app"
)

// ChannelValues returns all supported channels
func ChannelValues() []Channel {
	return []Channel{ChannelWeb, ChannelTelegram, ChannelEmail, ChannelWhatsApp, ChannelMobileApp}
}

// Valid reports whether c is a recognized channel
func (c Channel) Valid() bool {
	switch c {
	case ChannelWeb, ChannelTelegram, ChannelEmail, ChannelWhatsApp, ChannelMobileApp:
		return true
	}
	return false
}

// ConversationType is the business purpose of a conversation
type ConversationType string

const (
	ConversationTypeSupport   ConversationType = "support"
	ConversationTypeSales     ConversationType = "sales"
	ConversationTypeGeneral   ConversationType = "general"
	ConversationTypeFeedback  ConversationType = "feedback"
	ConversationTypeBilling   ConversationType = "billing"
	ConversationTypeTechnical ConversationType = "technical"
)

// ConversationTypeValues returns all conversation types
func ConversationTypeValues() []ConversationType {
	return []ConversationType{
		ConversationTypeSupport, ConversationTypeSales, ConversationTypeGeneral,
		ConversationTypeFeedback, ConversationTypeBilling, ConversationTypeTechnical,
	}
}

// Valid reports whether t is a recognized conversation type
func (t ConversationType) Valid() bool {
	switch t {
	case ConversationTypeSupport, ConversationTypeSales, ConversationTypeGeneral,
		ConversationTypeFeedback, ConversationTypeBilling, ConversationTypeTechnical:
		return true
	}
	return false
}

// ConversationStatus is the lifecycle state of a conversation.
//
// Transition graph (enforced by ConversationRepository.TransitionStatus):
//
//	active    -> closed, escalated, archived, pending
//	pending   -> active, closed, archived
//	escalated -> closed, active
//	closed    -> (terminal)
//	archived  -> (terminal)
type ConversationStatus string

const (
	ConversationStatusActive    ConversationStatus = "active"
	ConversationStatusClosed    ConversationStatus = "closed"
	ConversationStatusEscalated ConversationStatus = "escalated"
	ConversationStatusArchived  ConversationStatus = "archived"
	ConversationStatusPending   ConversationStatus = "pending"
)

// ConversationStatusValues returns all conversation statuses
func ConversationStatusValues() []ConversationStatus {
	return []ConversationStatus{
		ConversationStatusActive, ConversationStatusClosed, ConversationStatusEscalated,
		ConversationStatusArchived, ConversationStatusPending,
	}
}

// Valid reports whether s is a recognized status
func (s ConversationStatus) Valid() bool {
	switch s {
	case ConversationStatusActive, ConversationStatusClosed, ConversationStatusEscalated,
		ConversationStatusArchived, ConversationStatusPending:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions
func (s ConversationStatus) Terminal() bool {
	return s == ConversationStatusClosed || s == ConversationStatusArchived
}

var statusTransitions = map[ConversationStatus][]ConversationStatus{
	ConversationStatusActive:    {ConversationStatusClosed, ConversationStatusEscalated, ConversationStatusArchived, ConversationStatusPending},
	ConversationStatusPending:   {ConversationStatusActive, ConversationStatusClosed, ConversationStatusArchived},
	ConversationStatusEscalated: {ConversationStatusClosed, ConversationStatusActive},
	ConversationStatusClosed:    nil,
	ConversationStatusArchived:  nil,
}

// CanTransitionTo reports whether the status machine permits s -> next
func (s ConversationStatus) CanTransitionTo(next ConversationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MessageType identifies who or what produced a message
type MessageType string

const (
	MessageTypeUser       MessageType = "user"
	MessageTypeAssistant  MessageType = "assistant"
	MessageTypeSystem     MessageType = "system"
	MessageTypeHumanAgent MessageType = "human_agent"
	MessageTypeDeveloper  MessageType = "developer"
	MessageTypeTester     MessageType = "tester"
)

// MessageTypeValues returns all message types
func MessageTypeValues() []MessageType {
	return []MessageType{
		MessageTypeUser, MessageTypeAssistant, MessageTypeSystem,
		MessageTypeHumanAgent, MessageTypeDeveloper, MessageTypeTester,
	}
}

// Valid reports whether t is a recognized message type
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeUser, MessageTypeAssistant, MessageTypeSystem,
		MessageTypeHumanAgent, MessageTypeDeveloper, MessageTypeTester:
		return true
	}
	return false
}

// AIGenerated reports whether messages of this type are produced by the AI
// and therefore must carry an ai_model identifier
func (t MessageType) AIGenerated() bool {
	return t == MessageTypeAssistant
}

// UserRole is the permission level of a user within a tenant
type UserRole string

const (
	RoleUser           UserRole = "user"
	RoleSupportAgent   UserRole = "support_agent"
	RoleSupportManager UserRole = "support_manager"
	RoleSalesRep       UserRole = "sales_rep"
	RoleSalesManager   UserRole = "sales_manager"
	RoleSalesDirector  UserRole = "sales_director"
	RoleAdmin          UserRole = "admin"
	RoleSuperAdmin     UserRole = "super_admin"
	RoleDeveloper      UserRole = "developer"
	RoleTester         UserRole = "tester"
)

// UserRoleValues returns all user roles
func UserRoleValues() []UserRole {
	return []UserRole{
		RoleUser, RoleSupportAgent, RoleSupportManager,
		RoleSalesRep, RoleSalesManager, RoleSalesDirector,
		RoleAdmin, RoleSuperAdmin, RoleDeveloper, RoleTester,
	}
}

// Valid reports whether r is a recognized role
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleSupportAgent, RoleSupportManager,
		RoleSalesRep, RoleSalesManager, RoleSalesDirector,
		RoleAdmin, RoleSuperAdmin, RoleDeveloper, RoleTester:
		return true
	}
	return false
}

// FeedbackRating is a user rating of an AI response. Absence is modeled as a
// NULL column, not a vocabulary member.
type FeedbackRating string

const (
	FeedbackThumbsUp   FeedbackRating = "thumbs_up"
	FeedbackThumbsDown FeedbackRating = "thumbs_down"
)

// FeedbackRatingValues returns all feedback ratings
func FeedbackRatingValues() []FeedbackRating {
	return []FeedbackRating{FeedbackThumbsUp, FeedbackThumbsDown}
}

// Valid reports whether f is a recognized rating
func (f FeedbackRating) Valid() bool {
	return f == FeedbackThumbsUp || f == FeedbackThumbsDown
}
