package api

import (
	"errors"
	"net/http"

	"github.com/ashutosh1890/Air-Cargo-booking/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is treated as a store-side failure.
func respondError(c *gin.Context, err error) {
	c.JSON(errStatus(err), gin.H{"error": err.Error()})
}

func errStatus(err error) int {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var transition *domain.InvalidTransitionError
	if errors.As(err, &transition) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
