package repo

import (
	"testing"

	"cleverplus/pkg/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a fresh in-memory database with the full schema applied
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedTenant provisions a tenant and returns it
func seedTenant(t *testing.T, db *gorm.DB, slug string) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{Name: "Tenant " + slug, Slug: slug}
	if err := NewTenantRepository(db).Create(tenant); err != nil {
		t.Fatalf("failed to seed tenant %q: %v", slug, err)
	}
	return tenant
}

// seedUser creates a user under the tenant and returns it
func seedUser(t *testing.T, db *gorm.DB, tenantID int64, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Username: email}
	if err := NewUserRepository(db).Create(tenantID, user); err != nil {
		t.Fatalf("failed to seed user %q: %v", email, err)
	}
	return user
}

// seedConversation opens a conversation under the tenant and returns it
func seedConversation(t *testing.T, db *gorm.DB, tenantID int64) *models.Conversation {
	t.Helper()

	conv := &models.Conversation{}
	if err := NewConversationRepository(db).Create(tenantID, conv); err != nil {
		t.Fatalf("failed to seed conversation: %v", err)
	}
	return conv
}
