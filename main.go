package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musemint-backend/config"
	"musemint-backend/controllers"
	"musemint-backend/database"
	"musemint-backend/middleware"
	"musemint-backend/models"
	aws_pkg "musemint-backend/pkg/aws"
	"musemint-backend/repository"
	"musemint-backend/routes"
	"musemint-backend/sender"
	"musemint-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// Database (backs webhook idempotency, so it is load-bearing)
	if err := database.Connect(cfg, logger, &models.Fulfillment{}); err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}

	// CloudWatch (non-fatal)
	metricsClient, err := aws_pkg.NewMetricsClient(context.Background())
	if err != nil {
		logger.Warn("CloudWatch metrics client init failed (non-fatal)", zap.Error(err))
	}

	// SNS sale events (optional)
	var snsClient aws_pkg.SNSPublisher
	if cfg.SaleSNSTopicARN != "" {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			logger.Warn("AWS config load failed, sale events disabled", zap.Error(err))
		} else {
			snsClient = aws_pkg.NewSNSClient(awsCfg)
		}
	}

	// Receipt/contact email
	var emailSender sender.EmailSender
	if resendSender, err := sender.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom); err != nil {
		logger.Warn("Resend sender unavailable, email degraded", zap.Error(err))
		emailSender = sender.DisabledSender{Reason: err.Error()}
	} else {
		emailSender = resendSender
	}

	// Dependency injection
	fulfillmentRepo := repository.NewGormFulfillmentRepo(database.DB)
	stripeSvc := services.NewStripeService(
		cfg.StripeSecretKey, cfg.StripeWebhookKey, cfg.StripePriceID,
		cfg.ProductName, cfg.SiteBaseURL,
	)
	ledgerClient := services.NewLedgerClient(cfg.LedgerWebhookURL)
	fulfillmentSvc := services.NewFulfillmentService(
		fulfillmentRepo, emailSender, ledgerClient,
		snsClient, cfg.SaleSNSTopicARN, logger,
	)
	adminGate := middleware.NewAdminGate(cfg.AdminPassword, cfg.JWTSecret)

	cc := &controllers.CheckoutController{Stripe: stripeSvc, Fulfillment: fulfillmentSvc, Logger: logger}
	ct := &controllers.ContactController{Email: emailSender, Ledger: ledgerClient, Inbox: cfg.ContactInbox, Logger: logger}
	vc := &controllers.VoiceController{Logger: logger}
	ac := &controllers.AdminController{Repo: fulfillmentRepo, Gate: adminGate, Logger: logger}

	// Router
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// CloudWatch middleware
	r.Use(func(c *gin.Context) {
		if metricsClient == nil || !metricsClient.IsEnabled() {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		dur := time.Since(start)
		go func() {
			mctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			dims := map[string]string{
				"Service": "musemint-backend",
				"Method":  c.Request.Method,
				"Path":    c.Request.URL.Path,
			}
			_ = metricsClient.RecordCount(mctx, aws_pkg.MetricHTTPRequests, dims)
			_ = metricsClient.RecordLatency(mctx, aws_pkg.MetricHTTPLatency, dur, dims)
			if c.Writer.Status() >= 400 {
				_ = metricsClient.RecordCount(mctx, aws_pkg.MetricHTTPErrors, dims)
			}
		}()
	})

	// Request logging
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	})

	// Request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, cc, ct, vc, ac)

	// HTTP server
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("MuseMint backend started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := database.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	logger.Info("MuseMint backend stopped gracefully")
}
