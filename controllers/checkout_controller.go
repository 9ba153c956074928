package controllers

import (
	"net/http"

	"musemint-backend/models"
	"musemint-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Stripe      services.StripeClient
	Fulfillment services.FulfillmentService
	Logger      *zap.Logger
}

// CreateCheckoutSession starts a purchase: one outbound call to Stripe,
// then the hosted checkout URL back to the browser. The body is optional
// and may only adjust the quantity.
func (cc *CheckoutController) CreateCheckoutSession(c *gin.Context) {
	req := models.CheckoutRequest{Quantity: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
	}

	sess, svcErr := cc.Stripe.CreateCheckoutSession(req.Quantity)
	if svcErr != nil {
		cc.Logger.Warn("Checkout session creation failed",
			zap.Int("status", svcErr.StatusCode),
			zap.String("message", svcErr.Message),
		)
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	cc.Logger.Info("Checkout session created",
		zap.String("session_id", sess.ID),
	)
	c.JSON(http.StatusOK, models.CheckoutResponse{ID: sess.ID, URL: sess.URL})
}

// Success renders the post-payment confirmation. With a session_id it does
// a read-only session lookup for a human-readable receipt; without one, or
// when the lookup fails, it degrades to a generic confirmation.
func (cc *CheckoutController) Success(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Thanks for your purchase!"})
		return
	}

	sess, svcErr := cc.Stripe.GetCheckoutSession(sessionID)
	if svcErr != nil {
		cc.Logger.Warn("Receipt lookup failed",
			zap.String("session_id", sessionID),
			zap.String("message", svcErr.Message),
		)
		c.JSON(http.StatusOK, gin.H{"message": "Thanks for your purchase!"})
		return
	}

	receipt := models.Receipt{
		SessionID:   sess.ID,
		Status:      string(sess.Status),
		AmountTotal: sess.AmountTotal,
		Currency:    string(sess.Currency),
		Product:     sess.Metadata["product"],
	}
	if sess.CustomerDetails != nil {
		receipt.CustomerEmail = sess.CustomerDetails.Email
	}
	c.JSON(http.StatusOK, receipt)
}

// Cancel is the static cancel confirmation.
func (cc *CheckoutController) Cancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Checkout canceled. No charge was made."})
}
