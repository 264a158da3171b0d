package repo

import (
	"errors"
	"testing"

	"cleverplus/pkg/models"
)

func TestUserEmailUniquePerTenant(t *testing.T) {
	db := openTestDB(t)
	r := NewUserRepository(db)
	tenantA := seedTenant(t, db, "tenant-a")
	tenantB := seedTenant(t, db, "tenant-b")

	if err := r.Create(tenantA.ID, &models.User{Email: "alice@example.com", Username: "alice"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Same tenant, same email: conflict
	err := r.Create(tenantA.ID, &models.User{Email: "alice@example.com", Username: "alice2"})
	var uniq *UniquenessError
	if !errors.As(err, &uniq) {
		t.Fatalf("expected UniquenessError, got %v", err)
	}

	// Same tenant, different email: fine
	if err := r.Create(tenantA.ID, &models.User{Email: "bob@example.com", Username: "bob"}); err != nil {
		t.Errorf("different email under same tenant should succeed, got %v", err)
	}

	// Different tenant, same email: fine
	if err := r.Create(tenantB.ID, &models.User{Email: "alice@example.com", Username: "alice"}); err != nil {
		t.Errorf("same email under different tenant should succeed, got %v", err)
	}
}

func TestUserCrossTenantGetIsNotFound(t *testing.T) {
	db := openTestDB(t)
	r := NewUserRepository(db)
	tenantA := seedTenant(t, db, "tenant-a")
	tenantB := seedTenant(t, db, "tenant-b")
	alice := seedUser(t, db, tenantA.ID, "alice@example.com")

	// Tenant B asking for alice's id must look exactly like a missing row
	_, err := r.GetByID(tenantB.ID, alice.ID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	_, missingErr := r.GetByID(tenantB.ID, 99999)
	var missing *NotFoundError
	if !errors.As(missingErr, &missing) {
		t.Fatalf("expected NotFoundError for absent id, got %v", missingErr)
	}
	if notFound.Error() == "" || missing.Entity != notFound.Entity {
		t.Error("cross-tenant and absent lookups must be indistinguishable")
	}
}

func TestUserCreateValidation(t *testing.T) {
	db := openTestDB(t)
	r := NewUserRepository(db)
	tenant := seedTenant(t, db, "acme")

	tests := []struct {
		name string
		user models.User
	}{
		{"empty email", models.User{Username: "x"}},
		{"empty username", models.User{Email: "x@example.com"}},
		{"bad role", models.User{Email: "x@example.com", Username: "x", Role: "empress"}},
	}
	for _, test := range tests {
		err := r.Create(tenant.ID, &test.user)
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Errorf("%s: expected ValidationError, got %v", test.name, err)
		}
	}
}

func TestUserCreateDefaultsRole(t *testing.T) {
	db := openTestDB(t)
	r := NewUserRepository(db)
	tenant := seedTenant(t, db, "acme")

	user := &models.User{Email: "plain@example.com", Username: "plain"}
	if err := r.Create(tenant.ID, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("expected default role %q, got %q", models.RoleUser, user.Role)
	}
}

func TestUserCreateUnknownTenant(t *testing.T) {
	db := openTestDB(t)
	r := NewUserRepository(db)

	err := r.Create(424242, &models.User{Email: "x@example.com", Username: "x"})
	var referential *ReferentialError
	if !errors.As(err, &referential) {
		t.Fatalf("expected ReferentialError, got %v", err)
	}
}

func TestUserListFilterByRole(t *testing.T) {
	db := openTestDB(t)
	r := NewUserRepository(db)
	tenant := seedTenant(t, db, "acme")

	agents := []string{"agent1@example.com", "agent2@example.com"}
	for _, email := range agents {
		user := &models.User{Email: email, Username: email, Role: models.RoleSupportAgent}
		if err := r.Create(tenant.ID, user); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	seedUser(t, db, tenant.ID, "end-user@example.com")

	role := models.RoleSupportAgent
	result, err := r.List(tenant.ID, UserFilter{Role: &role}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("expected 2 agents, got %d", result.Total)
	}
	for _, u := range result.Data {
		if u.Role != models.RoleSupportAgent {
			t.Errorf("filter leaked role %q", u.Role)
		}
	}
}

func TestUserUpdateAndRecordLogin(t *testing.T) {
	db := openTestDB(t)
	r := NewUserRepository(db)
	tenantA := seedTenant(t, db, "tenant-a")
	tenantB := seedTenant(t, db, "tenant-b")
	alice := seedUser(t, db, tenantA.ID, "alice@example.com")

	role := models.RoleSupportManager
	fullName := "Alice Smith"
	updated, err := r.Update(tenantA.ID, alice.ID, UserUpdate{Role: &role, FullName: &fullName})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Role != role || updated.FullName != fullName {
		t.Errorf("update not applied: %+v", updated)
	}

	// Cross-tenant update attempts surface as not found
	_, err = r.Update(tenantB.ID, alice.ID, UserUpdate{FullName: &fullName})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if err := r.RecordLogin(tenantA.ID, alice.ID); err != nil {
		t.Fatalf("RecordLogin failed: %v", err)
	}
	got, err := r.GetByID(tenantA.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.LastLoginAt == nil {
		t.Error("expected last_login_at to be stamped")
	}

	if err := r.RecordLogin(tenantB.ID, alice.ID); !errors.As(err, &notFound) {
		t.Errorf("cross-tenant RecordLogin: expected NotFoundError, got %v", err)
	}
}
