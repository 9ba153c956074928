package routes

import (
	"musemint-backend/controllers"
	"musemint-backend/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.Engine,
	cc *controllers.CheckoutController,
	ct *controllers.ContactController,
	vc *controllers.VoiceController,
	ac *controllers.AdminController,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/checkout/session", cc.CreateCheckoutSession)
	r.GET("/success", cc.Success)
	r.GET("/cancel", cc.Cancel)

	// Stripe webhook (no auth beyond the signature check itself)
	r.POST("/stripe/webhook", cc.StripeWebhook)

	// Public forms, rate limited per IP
	forms := r.Group("/")
	forms.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(rate.Limit(1), 5)))
	forms.POST("/contact", ct.Contact)
	forms.POST("/leads", ct.Lead)

	r.POST("/voice/incoming", vc.Incoming)

	admin := r.Group("/admin")
	admin.POST("/login", ac.Login)
	admin.GET("/dashboard", ac.Gate.Middleware(), ac.Dashboard)
}
