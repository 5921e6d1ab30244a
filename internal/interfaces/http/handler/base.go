package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	syncdomain "github.com/pickhero/commerce-sync/internal/domain/sync"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

// ErrorResponse is the uniform error body for admin endpoints.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

// writeError maps domain and gateway errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commerce.ErrOrderNotFound), errors.Is(err, syncdomain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
	case errors.Is(err, syncdomain.ErrLockNotAcquired):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "order is being synced by another request"})
	default:
		var apiErr *pickhero.APIError
		if errors.As(err, &apiErr) && apiErr.IsValidationError() {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   apiErr.Message,
				Details: apiErr.Errors,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
