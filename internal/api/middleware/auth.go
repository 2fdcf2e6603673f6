package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webdeskos/backend/internal/shared/utils"
)

// UserIDKey is the gin context key holding the resolved user id.
const UserIDKey = "userID"

// DefaultUserID is used when no identity header is present. Single-user
// deployments run entirely under this id.
const DefaultUserID = "default"

// Identity resolves the acting user from the X-User-ID header and stores
// it in the request context. Malformed ids are rejected before they reach
// a handler.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = DefaultUserID
		}

		if err := utils.ValidateID(userID, "userId", true); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID extracts the resolved user id from the gin context.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return DefaultUserID
}
