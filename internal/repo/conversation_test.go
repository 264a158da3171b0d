package repo

import (
	"errors"
	"testing"

	"cleverplus/pkg/models"
)

func TestConversationCreateDefaults(t *testing.T) {
	db := openTestDB(t)
	r := NewConversationRepository(db)
	tenant := seedTenant(t, db, "acme")

	conv := &models.Conversation{}
	if err := r.Create(tenant.ID, conv); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if conv.Status != models.ConversationStatusActive {
		t.Errorf("expected active status, got %q", conv.Status)
	}
	if conv.ConversationType != models.ConversationTypeSupport {
		t.Errorf("expected support type, got %q", conv.ConversationType)
	}
	if conv.Channel != models.ChannelWeb {
		t.Errorf("expected web channel, got %q", conv.Channel)
	}
	if conv.SessionID == "" {
		t.Error("expected generated session id")
	}
	if conv.ClosedAt != nil {
		t.Error("new conversations must not carry closed_at")
	}
}

func TestConversationCreateRejectsBadVocabulary(t *testing.T) {
	db := openTestDB(t)
	r := NewConversationRepository(db)
	tenant := seedTenant(t, db, "acme")

	tests := []struct {
		name string
		conv models.Conversation
	}{
		{"bad type", models.Conversation{ConversationType: "gossip"}},
		{"bad channel", models.Conversation{Channel: "pigeon"}},
		{"non-active status", models.Conversation{Status: models.ConversationStatusClosed}},
	}
	for _, test := range tests {
		err := r.Create(tenant.ID, &test.conv)
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Errorf("%s: expected ValidationError, got %v", test.name, err)
		}
	}
}

func TestConversationCrossTenantUserIsReferentialError(t *testing.T) {
	db := openTestDB(t)
	r := NewConversationRepository(db)
	tenantA := seedTenant(t, db, "tenant-a")
	tenantB := seedTenant(t, db, "tenant-b")
	foreign := seedUser(t, db, tenantB.ID, "intruder@example.com")

	conv := &models.Conversation{UserID: &foreign.ID}
	err := r.Create(tenantA.ID, conv)
	var referential *ReferentialError
	if !errors.As(err, &referential) {
		t.Fatalf("expected ReferentialError, got %v", err)
	}
	if referential.Field != "user_id" {
		t.Errorf("expected user_id violation, got %q", referential.Field)
	}
}

func TestConversationCrossTenantGetIsNotFound(t *testing.T) {
	db := openTestDB(t)
	r := NewConversationRepository(db)
	tenantA := seedTenant(t, db, "tenant-a")
	tenantB := seedTenant(t, db, "tenant-b")
	conv := seedConversation(t, db, tenantA.ID)

	_, err := r.GetByID(tenantB.ID, conv.ID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestConversationTransitionSetsClosedAtOnce(t *testing.T) {
	db := openTestDB(t)
	r := NewConversationRepository(db)
	tenant := seedTenant(t, db, "acme")
	conv := seedConversation(t, db, tenant.ID)

	closed, err := r.TransitionStatus(tenant.ID, conv.ID, models.ConversationStatusClosed)
	if err != nil {
		t.Fatalf("active->closed failed: %v", err)
	}
	if closed.Status != models.ConversationStatusClosed {
		t.Errorf("expected closed, got %q", closed.Status)
	}
	if closed.ClosedAt == nil {
		t.Fatal("expected closed_at to be set")
	}
	closedAt := *closed.ClosedAt

	// Terminal means terminal
	var transition *InvalidTransitionError
	for _, next := range models.ConversationStatusValues() {
		_, err := r.TransitionStatus(tenant.ID, conv.ID, next)
		if !errors.As(err, &transition) {
			t.Errorf("closed->%s: expected InvalidTransitionError, got %v", next, err)
		}
	}

	got, err := r.GetByID(tenant.ID, conv.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ClosedAt == nil || !got.ClosedAt.Equal(closedAt) {
		t.Error("closed_at changed after rejected transitions")
	}
}

func TestConversationTransitionPaths(t *testing.T) {
	db := openTestDB(t)
	r := NewConversationRepository(db)
	tenant := seedTenant(t, db, "acme")

	// active -> escalated -> active -> pending -> active -> archived
	conv := seedConversation(t, db, tenant.ID)
	path := []models.ConversationStatus{
		models.ConversationStatusEscalated,
		models.ConversationStatusActive,
		models.ConversationStatusPending,
		models.ConversationStatusActive,
		models.ConversationStatusArchived,
	}
	for _, next := range path {
		if _, err := r.TransitionStatus(tenant.ID, conv.ID, next); err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
	}

	got, err := r.GetByID(tenant.ID, conv.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ClosedAt == nil {
		t.Error("archiving must stamp closed_at")
	}

	// archived -> active is illegal
	_, err = r.TransitionStatus(tenant.ID, conv.ID, models.ConversationStatusActive)
	var transition *InvalidTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}

	// escalated -> archived is not on the graph
	conv2 := seedConversation(t, db, tenant.ID)
	if _, err := r.TransitionStatus(tenant.ID, conv2.ID, models.ConversationStatusEscalated); err != nil {
		t.Fatalf("active->escalated failed: %v", err)
	}
	_, err = r.TransitionStatus(tenant.ID, conv2.ID, models.ConversationStatusArchived)
	if !errors.As(err, &transition) {
		t.Errorf("escalated->archived: expected InvalidTransitionError, got %v", err)
	}
}

func TestConversationTransitionCrossTenant(t *testing.T) {
	db := openTestDB(t)
	r := NewConversationRepository(db)
	tenantA := seedTenant(t, db, "tenant-a")
	tenantB := seedTenant(t, db, "tenant-b")
	conv := seedConversation(t, db, tenantA.ID)

	_, err := r.TransitionStatus(tenantB.ID, conv.ID, models.ConversationStatusClosed)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	// And the row is untouched
	got, err := r.GetByID(tenantA.ID, conv.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.ConversationStatusActive {
		t.Errorf("cross-tenant transition mutated status to %q", got.Status)
	}
}

func TestConversationListByStatus(t *testing.T) {
	db := openTestDB(t)
	r := NewConversationRepository(db)
	tenantA := seedTenant(t, db, "tenant-a")
	tenantB := seedTenant(t, db, "tenant-b")

	for i := 0; i < 3; i++ {
		seedConversation(t, db, tenantA.ID)
	}
	closing := seedConversation(t, db, tenantA.ID)
	if _, err := r.TransitionStatus(tenantA.ID, closing.ID, models.ConversationStatusClosed); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	seedConversation(t, db, tenantB.ID)

	active := models.ConversationStatusActive
	result, err := r.List(tenantA.ID, ConversationFilter{Status: &active}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("expected 3 active conversations for tenant A, got %d", result.Total)
	}
	for _, conv := range result.Data {
		if conv.TenantID != tenantA.ID {
			t.Fatalf("tenant isolation breach: conversation %d belongs to tenant %d", conv.ID, conv.TenantID)
		}
	}
}

func TestConversationUpdateDoesNotTouchStatus(t *testing.T) {
	db := openTestDB(t)
	r := NewConversationRepository(db)
	tenant := seedTenant(t, db, "acme")
	conv := seedConversation(t, db, tenant.ID)

	title := "Billing question"
	minutes := 12
	score := 5
	updated, err := r.Update(tenant.ID, conv.ID, ConversationUpdate{
		Title:                 &title,
		ResolutionTimeMinutes: &minutes,
		SatisfactionScore:     &score,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != title || updated.ResolutionTimeMinutes == nil || *updated.ResolutionTimeMinutes != minutes {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Status != models.ConversationStatusActive {
		t.Errorf("Update must not move status, got %q", updated.Status)
	}

	negative := -1
	_, err = r.Update(tenant.ID, conv.ID, ConversationUpdate{ResolutionTimeMinutes: &negative})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("expected ValidationError for negative minutes, got %v", err)
	}
}
