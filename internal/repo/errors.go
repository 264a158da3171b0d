package repo

import (
	"fmt"

	"cleverplus/pkg/models"
)

// Error taxonomy for the tenant-scoped access layer. All of these are caller
// problems and are never retried here; infrastructure failures (connection
// loss, timeouts) pass through as plain wrapped errors.

// NotFoundError is returned when a row does not exist under the given tenant.
// A row owned by another tenant produces the same error as true absence so
// callers cannot probe for ids across tenants.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ValidationError is returned when a field holds a malformed value or a value
// outside its closed vocabulary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferentialError is returned when a referenced parent row does not exist or
// belongs to a different tenant.
type ReferentialError struct {
	Entity string
	Field  string
	ID     int64
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s: referenced %s %d does not exist in tenant", e.Entity, e.Field, e.ID)
}

// UniquenessError is returned when a uniqueness invariant is violated, e.g. a
// second user with the same email under one tenant.
type UniquenessError struct {
	Entity string
	Field  string
	Value  string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// InvalidTransitionError is returned when a conversation status change is not
// permitted by the status machine.
type InvalidTransitionError struct {
	From models.ConversationStatus
	To   models.ConversationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("conversation status cannot transition from %q to %q", e.From, e.To)
}

// ImmutableFieldError is returned on an attempt to change a field that may be
// written at most once, e.g. message feedback after it has been set.
type ImmutableFieldError struct {
	Entity string
	Field  string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("%s.%s is immutable once set", e.Entity, e.Field)
}
