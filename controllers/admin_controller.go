package controllers

import (
	"net/http"

	"musemint-backend/middleware"
	"musemint-backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminController struct {
	Repo   repository.FulfillmentRepository
	Gate   *middleware.AdminGate
	Logger *zap.Logger
}

// Login exchanges the shared admin password for a short-lived token.
func (ac *AdminController) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := ac.Gate.IssueToken(req.Password)
	if err != nil {
		ac.Logger.Warn("Admin login rejected", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Dashboard is the placeholder admin view: fulfillment count from the
// store, nothing else yet.
func (ac *AdminController) Dashboard(c *gin.Context) {
	count, err := ac.Repo.Count(c.Request.Context())
	if err != nil {
		ac.Logger.Error("Failed to count fulfillments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fulfillments": count})
}
