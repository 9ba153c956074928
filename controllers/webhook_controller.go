package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// StripeWebhook receives and dispatches Stripe webhook events. The
// signature check is the only authentication boundary between the open
// internet and the fulfillment side effects, so nothing runs before it.
func (cc *CheckoutController) StripeWebhook(c *gin.Context) {
	event, err := cc.Stripe.ParseWebhook(c.Request)
	if err != nil {
		cc.Logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	cc.Logger.Info("Processing Stripe webhook",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			cc.Logger.Error("Failed to unmarshal checkout session", zap.Error(err))
			break
		}
		if err := cc.Fulfillment.FulfillCheckout(c.Request.Context(), &sess); err != nil {
			// Nothing was dispatched; a non-2xx makes Stripe redeliver.
			cc.Logger.Error("Fulfillment claim failed",
				zap.String("session_id", sess.ID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fulfillment store unavailable"})
			return
		}
	default:
		// Unknown event types are acknowledged for forward compatibility.
		cc.Logger.Info("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
