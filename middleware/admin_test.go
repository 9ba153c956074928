package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"musemint-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIssueToken(t *testing.T) {
	gate := middleware.NewAdminGate("hunter2", "jwt-secret")

	token, err := gate.IssueToken("hunter2")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = gate.IssueToken("wrong")
	assert.Error(t, err)
}

func TestIssueToken_NotConfigured(t *testing.T) {
	gate := middleware.NewAdminGate("", "")
	_, err := gate.IssueToken("anything")
	assert.Error(t, err)
}

func TestAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate := middleware.NewAdminGate("hunter2", "jwt-secret")

	r := gin.New()
	r.GET("/admin/dashboard", gate.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// no token
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// valid token
	token, err := gate.IssueToken("hunter2")
	assert.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware_TokenFromOtherSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate := middleware.NewAdminGate("hunter2", "jwt-secret")
	other := middleware.NewAdminGate("hunter2", "different-secret")

	token, err := other.IssueToken("hunter2")
	assert.NoError(t, err)

	r := gin.New()
	r.GET("/admin/dashboard", gate.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
