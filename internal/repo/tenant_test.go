package repo

import (
	"errors"
	"testing"

	"cleverplus/pkg/models"
)

func TestTenantCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	r := NewTenantRepository(db)

	tenant := &models.Tenant{Name: "Acme", Slug: "acme"}
	if err := r.Create(tenant); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if tenant.ID == 0 {
		t.Error("expected server-generated id")
	}
	if !tenant.IsActive {
		t.Error("new tenants must start active")
	}
	if tenant.CreatedAt.IsZero() {
		t.Error("expected creation timestamp")
	}

	got, err := r.GetByID(tenant.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Slug != "acme" {
		t.Errorf("got slug %q, expected %q", got.Slug, "acme")
	}

	bySlug, err := r.GetBySlug("acme")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if bySlug.ID != tenant.ID {
		t.Errorf("GetBySlug returned id %d, expected %d", bySlug.ID, tenant.ID)
	}
}

func TestTenantSlugUniqueness(t *testing.T) {
	db := openTestDB(t)
	r := NewTenantRepository(db)

	if err := r.Create(&models.Tenant{Name: "First", Slug: "dup"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := r.Create(&models.Tenant{Name: "Second", Slug: "dup"})
	var uniq *UniquenessError
	if !errors.As(err, &uniq) {
		t.Fatalf("expected UniquenessError, got %v", err)
	}
	if uniq.Field != "slug" {
		t.Errorf("expected slug violation, got %q", uniq.Field)
	}
}

func TestTenantCreateValidation(t *testing.T) {
	db := openTestDB(t)
	r := NewTenantRepository(db)

	tests := []struct {
		name   string
		tenant models.Tenant
	}{
		{"empty name", models.Tenant{Slug: "x"}},
		{"empty slug", models.Tenant{Name: "X"}},
		{"whitespace slug", models.Tenant{Name: "X", Slug: "   "}},
	}
	for _, test := range tests {
		err := r.Create(&test.tenant)
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Errorf("%s: expected ValidationError, got %v", test.name, err)
		}
	}
}

func TestTenantDeactivate(t *testing.T) {
	db := openTestDB(t)
	r := NewTenantRepository(db)

	tenant := seedTenant(t, db, "acme")
	if err := r.Deactivate(tenant.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	got, err := r.GetByID(tenant.ID)
	if err != nil {
		t.Fatalf("GetByID after deactivate failed: %v", err)
	}
	if got.IsActive {
		t.Error("expected tenant to be inactive")
	}
	if got.Slug != tenant.Slug {
		t.Error("deactivation must not touch the slug")
	}
}

func TestTenantUpdateMissing(t *testing.T) {
	db := openTestDB(t)
	r := NewTenantRepository(db)

	name := "Ghost"
	_, err := r.Update(9999, TenantUpdate{Name: &name})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
