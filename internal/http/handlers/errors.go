package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cleverplus/internal/repo"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// writeRepoError maps access-layer errors onto HTTP responses. Cross-tenant
// reads surface as plain 404s, indistinguishable from true absence.
func writeRepoError(c echo.Context, err error) error {
	var (
		notFound    *repo.NotFoundError
		validation  *repo.ValidationError
		referential *repo.ReferentialError
		uniqueness  *repo.UniquenessError
		transition  *repo.InvalidTransitionError
		immutable   *repo.ImmutableFieldError
	)

	switch {
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": notFound.Error()})
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": validation.Error()})
	case errors.As(err, &referential):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": referential.Error()})
	case errors.As(err, &uniqueness):
		return c.JSON(http.StatusConflict, map[string]string{"error": uniqueness.Error()})
	case errors.As(err, &transition):
		return c.JSON(http.StatusConflict, map[string]string{"error": transition.Error()})
	case errors.As(err, &immutable):
		return c.JSON(http.StatusConflict, map[string]string{"error": immutable.Error()})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unexpected repository error")
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// parseID parses a numeric path parameter
func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// parsePagination reads page/per_page query parameters with sane bounds
func parsePagination(c echo.Context) (limit, offset int) {
	page := 1
	perPage := 20

	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if pp, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && pp > 0 && pp <= 100 {
		perPage = pp
	}

	return perPage, (page - 1) * perPage
}
