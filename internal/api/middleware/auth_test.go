package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIdentityDefaultsWhenHeaderAbsent(t *testing.T) {
	router := setupTestRouter()
	router.Use(Identity())

	var got string
	router.GET("/whoami", func(c *gin.Context) {
		got = UserID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DefaultUserID, got)
}

func TestIdentityUsesHeader(t *testing.T) {
	router := setupTestRouter()
	router.Use(Identity())

	var got string
	router.GET("/whoami", func(c *gin.Context) {
		got = UserID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-User-ID", "alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", got)
}

func TestIdentityRejectsMalformedID(t *testing.T) {
	router := setupTestRouter()
	router.Use(Identity())

	reached := false
	router.GET("/whoami", func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-User-ID", "not/safe")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)
}
