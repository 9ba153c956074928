package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port             string
	SiteBaseURL      string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
	StripeSecretKey  string
	StripeWebhookKey string
	StripePriceID    string
	ProductName      string
	ResendAPIKey     string
	EmailFrom        string
	ContactInbox     string
	LedgerWebhookURL string
	AdminPassword    string
	JWTSecret        string
	SaleSNSTopicARN  string
	AllowedOrigin    string
}

// LoadConfig reads process configuration from the environment. Only the
// Postgres settings are hard requirements: the fulfillment store backs
// webhook idempotency. Stripe/Resend/ledger settings may be absent, in
// which case the endpoints that need them respond with a configuration
// error instead of the process refusing to start.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		SiteBaseURL:      getEnv("SITE_BASE_URL", "https://musemint.example.com"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		StripeSecretKey:  os.Getenv("STRIPE_API_KEY"),
		StripeWebhookKey: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripePriceID:    os.Getenv("STRIPE_PRICE_ID"),
		ProductName:      getEnv("PRODUCT_NAME", "MuseMint Toolkit"),
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		EmailFrom:        getEnv("EMAIL_FROM", "receipts@musemint.example.com"),
		ContactInbox:     getEnv("CONTACT_INBOX", "hello@musemint.example.com"),
		LedgerWebhookURL: os.Getenv("LEDGER_WEBHOOK_URL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SaleSNSTopicARN:  os.Getenv("SALE_SNS_TOPIC_ARN"),
		AllowedOrigin:    getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("missing required Postgres environment variables")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
