package middleware

import (
	"strconv"
	"time"

	"cleverplus/internal/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics middleware records prometheus metrics for each HTTP request
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)

			return err
		}
	}
}
