package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webdeskos/backend/internal/shared/errs"
)

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errs.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errs.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errs.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
