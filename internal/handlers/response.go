package handlers

import (
	"github.com/foliohive/server/internal/apperror"
	"github.com/foliohive/server/internal/models"
	"github.com/gin-gonic/gin"
)

// handleError writes the JSON error response for a service failure and
// records it on the context so the error middleware logs it.
func handleError(c *gin.Context, err error) {
	status := apperror.StatusCode(err)

	message := err.Error()
	if status == 500 {
		// internal details stay in the logs
		message = "Internal server error"
	}

	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse(message))
}
