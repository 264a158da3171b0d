package repo

import (
	"errors"
	"strings"
	"time"

	"cleverplus/pkg/models"

	"gorm.io/gorm"
)

// TenantRepository handles tenant data access. Tenants are the isolation
// root, so its read operations are system-level and take no tenant context.
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// TenantUpdate describes the mutable tenant fields. Slug is intentionally
// absent: it is the immutable external identifier.
type TenantUpdate struct {
	Name     *string
	IsActive *bool
}

// Create provisions a new tenant
func (r *TenantRepository) Create(tenant *models.Tenant) error {
	tenant.Name = strings.TrimSpace(tenant.Name)
	tenant.Slug = strings.TrimSpace(tenant.Slug)
	if tenant.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if tenant.Slug == "" {
		return &ValidationError{Field: "slug", Reason: "must not be empty"}
	}

	tenant.ID = 0
	tenant.IsActive = true
	tenant.CreatedAt = time.Now().UTC()

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tenant{}).Where("slug = ?", tenant.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &UniquenessError{Entity: "tenant", Field: "slug", Value: tenant.Slug}
		}
		if err := tx.Create(tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &UniquenessError{Entity: "tenant", Field: "slug", Value: tenant.Slug}
			}
			return err
		}
		return nil
	})
}

// GetByID gets a tenant by ID
func (r *TenantRepository) GetByID(id int64) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Where("id = ?", id).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "tenant", ID: id}
		}
		return nil, err
	}
	return &tenant, nil
}

// GetBySlug gets a tenant by its slug
func (r *TenantRepository) GetBySlug(slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Where("slug = ?", slug).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "tenant"}
		}
		return nil, err
	}
	return &tenant, nil
}

// List lists tenants with pagination, newest first
func (r *TenantRepository) List(limit, offset int) (models.PaginationResult[models.Tenant], error) {
	var tenants []models.Tenant
	var total int64

	if err := r.db.Model(&models.Tenant{}).Count(&total).Error; err != nil {
		return models.PaginationResult[models.Tenant]{}, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tenants).Error
	if err != nil {
		return models.PaginationResult[models.Tenant]{}, err
	}

	return models.NewPaginationResult(tenants, total, offset/limit+1, limit), nil
}

// Update applies the given changes to a tenant
func (r *TenantRepository) Update(id int64, changes TenantUpdate) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "tenant", ID: id}
			}
			return err
		}
		if changes.Name != nil {
			name := strings.TrimSpace(*changes.Name)
			if name == "" {
				return &ValidationError{Field: "name", Reason: "must not be empty"}
			}
			tenant.Name = name
		}
		if changes.IsActive != nil {
			tenant.IsActive = *changes.IsActive
		}
		return tx.Save(&tenant).Error
	})
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Deactivate soft-disables a tenant. Tenants are never physically deleted.
func (r *TenantRepository) Deactivate(id int64) error {
	active := false
	_, err := r.Update(id, TenantUpdate{IsActive: &active})
	return err
}
