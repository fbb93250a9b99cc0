package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"awards-platform/internal/services"
)

// respondServiceError maps the service error taxonomy onto HTTP
// statuses. Every failure here is user-visible and non-fatal.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrStageClosed):
		c.JSON(http.StatusForbidden, gin.H{"error": "This stage of the awards is closed"})
	case errors.Is(err, services.ErrNoConfig):
		c.JSON(http.StatusForbidden, gin.H{"error": "The awards are not configured yet"})
	case errors.Is(err, services.ErrLimitExceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Submission limit reached"})
	case errors.Is(err, services.ErrTokenNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Jury token not found"})
	case errors.Is(err, services.ErrTokenExpiredOrUsed):
		c.JSON(http.StatusGone, gin.H{"error": "Jury token expired or already used"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
