package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"musemint-backend/controllers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestVoiceIncoming_ReturnsTwiML(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	vc := &controllers.VoiceController{Logger: logger}
	r := gin.New()
	r.POST("/voice/incoming", vc.Incoming)

	form := strings.NewReader("From=%2B15551234567&CallSid=CA123")
	req := httptest.NewRequest(http.MethodPost, "/voice/incoming", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
	assert.Contains(t, w.Body.String(), "<Response>")
	assert.Contains(t, w.Body.String(), "<Say")
}
