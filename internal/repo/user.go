package repo

import (
	"errors"
	"strings"
	"time"

	"cleverplus/pkg/models"

	"gorm.io/gorm"
)

// UserRepository handles user data access. Every operation takes an explicit
// tenant id and refuses to touch rows belonging to another tenant.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UserFilter narrows List results
type UserFilter struct {
	Role     *models.UserRole
	IsActive *bool
}

// UserUpdate describes the mutable user fields. TenantID and Email are not
// here: a user never moves between tenants, and the (tenant_id, email)
// identity is fixed at creation.
type UserUpdate struct {
	Username *string
	FullName *string
	Role     *models.UserRole
	IsActive *bool
}

// Create creates a new user under the given tenant
func (r *UserRepository) Create(tenantID int64, user *models.User) error {
	user.Email = strings.TrimSpace(user.Email)
	user.Username = strings.TrimSpace(user.Username)
	if user.Email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if user.Username == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if !user.Role.Valid() {
		return &ValidationError{Field: "role", Reason: "unrecognized value " + string(user.Role)}
	}

	user.ID = 0
	user.TenantID = tenantID
	user.IsActive = true
	user.CreatedAt = time.Now().UTC()
	user.LastLoginAt = nil

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tenant{}).Where("id = ?", tenantID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &ReferentialError{Entity: "user", Field: "tenant_id", ID: tenantID}
		}

		if err := tx.Model(&models.User{}).
			Where("tenant_id = ? AND email = ?", tenantID, user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &UniquenessError{Entity: "user", Field: "email", Value: user.Email}
		}

		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &UniquenessError{Entity: "user", Field: "email", Value: user.Email}
			}
			return err
		}
		return nil
	})
}

// GetByID gets a user by ID within the tenant
func (r *UserRepository) GetByID(tenantID, id int64) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user", ID: id}
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email within the tenant
func (r *UserRepository) GetByEmail(tenantID int64, email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("tenant_id = ? AND email = ?", tenantID, email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user"}
		}
		return nil, err
	}
	return &user, nil
}

// List lists users within the tenant with pagination, newest first
func (r *UserRepository) List(tenantID int64, filter UserFilter, limit, offset int) (models.PaginationResult[models.User], error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{}).Where("tenant_id = ?", tenantID)
	if filter.Role != nil {
		if !filter.Role.Valid() {
			return models.PaginationResult[models.User]{}, &ValidationError{Field: "role", Reason: "unrecognized value " + string(*filter.Role)}
		}
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return models.PaginationResult[models.User]{}, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return models.PaginationResult[models.User]{}, err
	}

	return models.NewPaginationResult(users, total, offset/limit+1, limit), nil
}

// Update applies the given changes to a user within the tenant
func (r *UserRepository) Update(tenantID, id int64, changes UserUpdate) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "user", ID: id}
			}
			return err
		}
		if changes.Username != nil {
			username := strings.TrimSpace(*changes.Username)
			if username == "" {
				return &ValidationError{Field: "username", Reason: "must not be empty"}
			}
			user.Username = username
		}
		if changes.FullName != nil {
			user.FullName = *changes.FullName
		}
		if changes.Role != nil {
			if !changes.Role.Valid() {
				return &ValidationError{Field: "role", Reason: "unrecognized value " + string(*changes.Role)}
			}
			user.Role = *changes.Role
		}
		if changes.IsActive != nil {
			user.IsActive = *changes.IsActive
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RecordLogin stamps last_login_at for a user within the tenant
func (r *UserRepository) RecordLogin(tenantID, id int64) error {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("last_login_at", time.Now().UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "user", ID: id}
	}
	return nil
}
