package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Payment processor. Live mode requires StripeSecretKey; MockPayments
	// forces the simulated gateway even when a key is present.
	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET" required:"true"`
	MockPayments        bool   `env:"MOCK_PAYMENTS" envDefault:"false"`

	// External booking store (create/query HTTP contract).
	BookingAPIBaseURL     string        `env:"BOOKING_API_BASE_URL" required:"true"`
	HTTPBookingAPITimeout time.Duration `env:"HTTP_BOOKING_API_TIMEOUT" envDefault:"10s"`

	// Checkout session redirect targets are built from this origin.
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"https://caligolddrive.com"`

	// Notification channels (SMTP).
	SMTPHost      string        `env:"SMTP_HOST"`
	SMTPPort      int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string        `env:"SMTP_USER"`
	SMTPPass      string        `env:"SMTP_PASS"`
	EmailFrom     string        `env:"EMAIL_FROM"`
	TeamEmails    []string      `env:"TEAM_EMAILS" envSeparator:","`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`

	// Webhook processing mode: "sync" (direct) or "kafka" (async via Kafka)
	WebhookMode string `env:"WEBHOOK_MODE" envDefault:"sync"`

	// Kafka configuration (used only in kafka webhook mode)
	KafkaBrokers             []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaEventsTopic         string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"webhooks.payments"`
	KafkaEventsDLQTopic      string   `env:"KAFKA_EVENTS_DLQ_TOPIC" envDefault:"webhooks.payments.dlq"`
	KafkaEventsConsumerGroup string   `env:"KAFKA_EVENTS_CONSUMER_GROUP" envDefault:"caligold-webhooks"`

	// Optional persisted idempotency log for webhook events. Off by default:
	// duplicate deliveries currently create duplicate bookings.
	WebhookDedupe bool   `env:"WEBHOOK_DEDUPE" envDefault:"false"`
	PgURL         string `env:"PG_URL"`
	PgPoolMax     int    `env:"PG_POOL_MAX" envDefault:"10"`

	// Optional reconciliation audit sink.
	OpensearchUrls        []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexEvents string   `env:"OPENSEARCH_INDEX_EVENTS" envDefault:"payment-events"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

// Simulated reports whether the payment processor should run in simulated
// mode. Resolved once at startup, never per call.
func (c Config) Simulated() bool {
	return c.MockPayments || c.StripeSecretKey == ""
}
