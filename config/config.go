package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"venue-booking/logger"
)

// Config holds every runtime setting the engine needs, loaded once from the
// environment and passed into services explicitly. Services never read env
// vars themselves.
type Config struct {
	AppHost string
	AppPort string

	FrontendURL string

	// Booking policy
	RoomQuota         int           // rooms auto-assigned per event when the venue manages allocation
	SchedulerInterval time.Duration // how often paid reservations past checkout are retired

	// Payment provider
	WebhookSecret     string // HMAC key for webhook signature verification
	PaymentBaseURL    string // provider API base, empty disables intent creation
	PaymentAPIKey     string
	PaymentCurrency   string

	// Notifications
	SMTPHost        string
	SMTPPort        string
	SMTPUser        string
	SMTPPassword    string
	SMTPFromName    string
	SMTPFromEmail   string
	AdminRecipients []string // notified on every new booking

	// Post-commit event publishing; empty disables the publisher
	AMQPURL string
}

// DefaultRoomQuota is the canonical auto-assignment cap.
const DefaultRoomQuota = 14

// Load reads the environment into a Config. Optional settings fall back to
// defaults; only the webhook secret is enforced because accepting unsigned
// payment events would be a silent security hole.
func Load() Config {
	cfg := Config{
		AppHost:           os.Getenv("APP_HOST"),
		AppPort:           getEnv("APP_PORT", "8080"),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		RoomQuota:         getEnvInt("ROOM_AUTO_ASSIGN_QUOTA", DefaultRoomQuota),
		SchedulerInterval: time.Duration(getEnvInt("SCHEDULER_INTERVAL_MINUTES", 60)) * time.Minute,
		WebhookSecret:     os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		PaymentBaseURL:    os.Getenv("PAYMENT_BASE_URL"),
		PaymentAPIKey:     os.Getenv("PAYMENT_API_KEY"),
		PaymentCurrency:   getEnv("PAYMENT_CURRENCY", "PEN"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:      getEnv("SMTP_FROM_NAME", "Reservas"),
		SMTPFromEmail:     os.Getenv("SMTP_FROM_EMAIL"),
		AMQPURL:           os.Getenv("AMQP_URL"),
	}

	if admins := os.Getenv("ADMIN_NOTIFICATION_EMAILS"); admins != "" {
		for _, addr := range strings.Split(admins, ",") {
			if a := strings.TrimSpace(addr); a != "" {
				cfg.AdminRecipients = append(cfg.AdminRecipients, a)
			}
		}
	}

	if cfg.WebhookSecret == "" {
		logger.Warning("PAYMENT_WEBHOOK_SECRET is not set; payment webhooks will be rejected")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warning("invalid int for " + key + ": " + v)
		return fallback
	}
	return n
}
