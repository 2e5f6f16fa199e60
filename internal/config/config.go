package config

import "os"

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Stripe   StripeConfig
	Email    EmailConfig
	Admin    AdminConfig
	Event    EventConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	PublicBaseURL      string // e.g. https://gew.example.com, used in ticket URLs and QR payloads
	CORSAllowedOrigins string
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string
}

// StripeConfig for VIP ticket payments. Payments are optional: when the
// secret key or price id is missing, VIP registrations fall through to the
// free issuance path.
type StripeConfig struct {
	SecretKey     string
	PriceID       string
	WebhookSecret string
}

func (c StripeConfig) Enabled() bool {
	return c.SecretKey != "" && c.PriceID != ""
}

// EmailConfig for confirmation emails via Resend. Optional: when the API key
// is missing, tickets are issued without notification.
type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

// AdminConfig holds the shared secret for the admin API.
type AdminConfig struct {
	Password string
}

// EventConfig holds display details rendered on tickets and in emails.
type EventConfig struct {
	Location string
	Dates    string
}

func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "3000"),
			PublicBaseURL:      getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "gew-events.db"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			PriceID:       os.Getenv("STRIPE_PRICE_ID"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		Email: EmailConfig{
			APIKey:      os.Getenv("RESEND_API_KEY"),
			FromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:    getEnv("EMAIL_FROM_NAME", "Global Entrepreneurship Week"),
		},
		Admin: AdminConfig{
			Password: os.Getenv("ADMIN_PASS"),
		},
		Event: EventConfig{
			Location: getEnv("EVENT_LOCATION", "TBD"),
			Dates:    getEnv("EVENT_DATES", "November 18-24, 2024"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
