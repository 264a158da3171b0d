package handlers

import (
	"net/http"

	"cleverplus/internal/repo"
	"cleverplus/pkg/models"

	"github.com/labstack/echo/v4"
)

// TenantHandler exposes tenant provisioning and management
type TenantHandler struct {
	tenantRepo *repo.TenantRepository
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantRepo *repo.TenantRepository) *TenantHandler {
	return &TenantHandler{tenantRepo: tenantRepo}
}

// CreateTenantRequest is the payload for tenant provisioning
type CreateTenantRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

// UpdateTenantRequest is the payload for tenant updates. The slug is
// immutable and not accepted here.
type UpdateTenantRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Create provisions a new tenant
func (h *TenantHandler) Create(c echo.Context) error {
	var req CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	tenant := &models.Tenant{Name: req.Name, Slug: req.Slug}
	if err := h.tenantRepo.Create(tenant); err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusCreated, tenant)
}

// GetByID returns a tenant by id
func (h *TenantHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tenant, err := h.tenantRepo.GetByID(id)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, tenant)
}

// GetBySlug returns a tenant by its slug
func (h *TenantHandler) GetBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid slug")
	}

	tenant, err := h.tenantRepo.GetBySlug(slug)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, tenant)
}

// List returns a page of tenants
func (h *TenantHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)

	result, err := h.tenantRepo.List(limit, offset)
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Update applies changes to a tenant
func (h *TenantHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	tenant, err := h.tenantRepo.Update(id, repo.TenantUpdate{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		return writeRepoError(c, err)
	}

	return c.JSON(http.StatusOK, tenant)
}

// Delete soft-deactivates a tenant
func (h *TenantHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tenantRepo.Deactivate(id); err != nil {
		return writeRepoError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
