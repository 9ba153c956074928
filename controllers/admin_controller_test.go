package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"musemint-backend/controllers"
	"musemint-backend/middleware"
	"musemint-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// ---- mock repository ----

type mockRepo struct {
	count    int64
	countErr error
}

func (m *mockRepo) Claim(_ context.Context, _ *models.Fulfillment) error { return nil }
func (m *mockRepo) MarkReceiptSent(_ context.Context, _ string, _ time.Time) error {
	return nil
}
func (m *mockRepo) MarkLedgerLogged(_ context.Context, _ string, _ time.Time) error {
	return nil
}
func (m *mockRepo) GetBySessionID(_ context.Context, _ string) (*models.Fulfillment, error) {
	return nil, errors.New("not used")
}
func (m *mockRepo) Count(_ context.Context) (int64, error) { return m.count, m.countErr }

func setupAdminRouter(repo *mockRepo) (*gin.Engine, *middleware.AdminGate) {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	gate := middleware.NewAdminGate("hunter2", "jwt-secret")
	ac := &controllers.AdminController{Repo: repo, Gate: gate, Logger: logger}

	r := gin.New()
	r.POST("/admin/login", ac.Login)
	r.GET("/admin/dashboard", gate.Middleware(), ac.Dashboard)
	return r, gate
}

func TestAdminLogin_Success(t *testing.T) {
	r, _ := setupAdminRouter(&mockRepo{})

	w := postJSON(r, "/admin/login", `{"password":"hunter2"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	r, _ := setupAdminRouter(&mockRepo{})

	w := postJSON(r, "/admin/login", `{"password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminDashboard(t *testing.T) {
	r, gate := setupAdminRouter(&mockRepo{count: 12})

	token, err := gate.IssueToken("hunter2")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "12")
}

func TestAdminDashboard_Unauthorized(t *testing.T) {
	r, _ := setupAdminRouter(&mockRepo{count: 12})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
