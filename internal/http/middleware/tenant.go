package middleware

import (
	"strconv"

	"cleverplus/internal/metrics"

	"github.com/labstack/echo/v4"
)

// tenantContextKey is the echo context key carrying the resolved tenant id
const tenantContextKey = "tenant_id"

// TenantResolver middleware resolves the tenant context from the X-Tenant-ID
// header. Application-level tenant filtering in the repositories is the
// authoritative isolation mechanism; this middleware only carries the id to
// the handlers.
func TenantResolver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("X-Tenant-ID")
			if header != "" {
				tenantID, err := strconv.ParseInt(header, 10, 64)
				if err != nil || tenantID <= 0 {
					return echo.NewHTTPError(400, "Invalid tenant ID format")
				}
				c.Set(tenantContextKey, tenantID)
			}

			return next(c)
		}
	}
}

// RequireTenant middleware ensures a tenant context is present
func RequireTenant() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := TenantID(c); !ok {
				if metrics.TenantContextMissing != nil {
					metrics.TenantContextMissing.Inc()
				}
				return echo.NewHTTPError(400, "Tenant ID is required")
			}
			return next(c)
		}
	}
}

// TenantID returns the tenant id resolved for this request
func TenantID(c echo.Context) (int64, bool) {
	tenantID, ok := c.Get(tenantContextKey).(int64)
	return tenantID, ok && tenantID > 0
}
