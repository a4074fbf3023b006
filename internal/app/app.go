// Package app wires configuration, adapters and services into the running
// process.
package app

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"caligold/config"
	"caligold/internal/controller/rest"
	"caligold/internal/controller/rest/handlers"
	"caligold/internal/domain/booking"
	"caligold/internal/domain/contact"
	"caligold/internal/domain/event"
	"caligold/internal/domain/notify"
	"caligold/internal/domain/payment"
	"caligold/internal/external/bookingstore"
	"caligold/internal/external/mailer"
	"caligold/internal/external/opensearchsink"
	"caligold/internal/external/stripegw"
	"caligold/internal/repo/eventlog"
	"caligold/internal/webhook"
	"caligold/pkg/health"
	"caligold/pkg/logger"
	"caligold/pkg/metrics"
	"caligold/pkg/postgres"
)

//go:embed migrations/*.sql
var MIGRATION_FS embed.FS

func Run(cfg config.Config) {
	l := logger.New(cfg.LogLevel, cfg.LogFormat == "console")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine := NewGinEngine(l)

	// Payment gateway: resolved once at startup, never per call.
	var gateway payment.Gateway
	if cfg.Simulated() {
		l.Info("Payment gateway: simulated (no live credentials or MOCK_PAYMENTS set)")
		gateway = stripegw.NewSimulatedGateway(l)
	} else {
		l.Info("Payment gateway: live")
		gateway = stripegw.NewLiveGateway(cfg.StripeSecretKey)
	}

	store := bookingstore.New(cfg.BookingAPIBaseURL, cfg.HTTPBookingAPITimeout)
	defer store.Close()

	smtp := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.EmailFrom,
	})
	dispatcher := notify.NewDispatcher(smtp, smtp, cfg.TeamEmails, cfg.NotifyTimeout, l)

	paymentService := payment.NewService(gateway, cfg.SiteBaseURL, l)
	contactService := contact.NewService(store, dispatcher, l)
	materializer := booking.NewMaterializer(store, dispatcher, l)

	healthCheckers := []health.Checker{}

	// Optional persisted idempotency log.
	var processedLog event.ProcessedLog
	if cfg.WebhookDedupe {
		pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
		}
		defer pool.Close()

		if err := ApplyMigrations(cfg.PgURL, MIGRATION_FS); err != nil {
			l.Fatal(fmt.Errorf("app - Run - ApplyMigrations: %w", err))
		}

		processedLog = eventlog.NewPgEventLog(pool)
		healthCheckers = append(healthCheckers, health.NewPostgresChecker(pool.Pool))
		l.Info("Webhook dedupe enabled: duplicate deliveries will be skipped")
	}

	// Optional reconciliation audit sink.
	var auditSink event.AuditSink
	if len(cfg.OpensearchUrls) > 0 {
		sink, err := opensearchsink.New(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexEvents)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - opensearchsink.New: %w", err))
		}
		auditSink = sink
	}

	router := event.NewRouter(materializer, processedLog, auditSink, l)
	verifier := stripegw.NewVerifier(cfg.StripeWebhookSecret)

	var processor webhook.Processor
	switch cfg.WebhookMode {
	case "kafka":
		l.Info("Webhook mode: kafka")
		processor = NewAsyncPipeline(ctx, l, cfg, router)
		healthCheckers = append(healthCheckers, health.NewKafkaChecker(cfg.KafkaBrokers))
	default:
		l.Info("Webhook mode: sync")
		processor = webhook.NewSyncProcessor(router)
	}

	httpRouter := rest.NewRouter(
		handlers.NewPaymentHandler(paymentService),
		handlers.NewWebhookHandler(verifier, processor, l),
		handlers.NewContactHandler(contactService),
		handlers.NewBookingHandler(store),
		health.NewRegistry(healthCheckers...),
	)
	httpRouter.SetUp(engine)

	go func() {
		l.Info("Starting HTTP server: port=%d", cfg.Port)
		if err := engine.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			l.Error("HTTP server error: error=%v", err)
		}
	}()

	<-ctx.Done()
	l.Info("Shutting down gracefully...")
}

func NewGinEngine(l *logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(metrics.GinMiddleware(), logger.CorrelationMiddleware(), l.GinBodyLogger(), gin.Recovery())
	return engine
}
