package handlers

import (
	"net/http"

	"cleverplus/internal/http/middleware"
	"cleverplus/internal/repo"
	"cleverplus/pkg/models"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler exposes tenant-scoped user management
type UserHandler struct {
	userRepo *repo.UserRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo *repo.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// CreateUserRequest is the payload for user creation
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user support_agent support_manager sales_rep sales_manager sales_director admin super_admin developer tester"`
}

// UpdateUserRequest is the payload for user updates
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=user support_agent support_manager sales_rep sales_manager sales_director admin super_admin developer tester"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Create creates a user within the request's tenant
func (h *UserHandler) Create(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)

	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Role:     models.UserRole(req.Role),
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
		}
		user.PasswordHash = string(hash)
	}

	if err := h.userRepo.Create(tenantID, user); err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// GetByID returns a user within the request's tenant
func (h *UserHandler) GetByID(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userRepo.GetByID(tenantID, id)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// List returns a page of the tenant's users, optionally filtered by role
func (h *UserHandler) List(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	limit, offset := parsePagination(c)

	var filter repo.UserFilter
	if role := c.QueryParam("role"); role != "" {
		r := models.UserRole(role)
		filter.Role = &r
	}

	result, err := h.userRepo.List(tenantID, filter, limit, offset)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Update applies changes to a user within the request's tenant
func (h *UserHandler) Update(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	changes := repo.UserUpdate{
		Username: req.Username,
		FullName: req.FullName,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		changes.Role = &role
	}

	user, err := h.userRepo.Update(tenantID, id, changes)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// RecordLogin stamps the user's last login time
func (h *UserHandler) RecordLogin(c echo.Context) error {
	tenantID, _ := middleware.TenantID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userRepo.RecordLogin(tenantID, id); err != nil {
		return writeRepoError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
