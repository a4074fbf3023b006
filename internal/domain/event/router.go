package event

import (
	"context"
	"errors"
	"time"

	"caligold/internal/controller/apperror"
	"caligold/internal/domain/payment"
	"caligold/pkg/logger"
	"caligold/pkg/metrics"
)

// Materializer turns event payloads into persisted bookings.
type Materializer interface {
	FromIntent(ctx context.Context, intent payment.Intent) error
	FromSession(ctx context.Context, session payment.Session) error
}

// ProcessedLog is the optional persisted idempotency check. MarkProcessed
// returns apperror.ErrEventAlreadyProcessed for a redelivered event id.
type ProcessedLog interface {
	MarkProcessed(ctx context.Context, eventID string, kind string) error
}

// AuditRecord is one reconciliation outcome for the optional audit sink.
type AuditRecord struct {
	EventID    string    `json:"event_id"`
	Kind       string    `json:"kind"`
	Outcome    string    `json:"outcome"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditSink indexes reconciliation outcomes for out-of-band review.
type AuditSink interface {
	Index(ctx context.Context, rec AuditRecord) error
}

// Router classifies verified events and dispatches them. It holds no state
// between events; every webhook call is classified independently.
type Router struct {
	materializer Materializer
	processed    ProcessedLog // nil when dedupe is disabled
	audit        AuditSink    // nil when no sink configured
	logger       *logger.Logger
}

func NewRouter(m Materializer, processed ProcessedLog, audit AuditSink, l *logger.Logger) *Router {
	return &Router{materializer: m, processed: processed, audit: audit, logger: l}
}

// Dispatch routes one verified event. It never returns an error: the webhook
// endpoint acknowledges every verified event regardless of what happens
// downstream, so failures here surface only through logs, metrics and the
// audit sink.
func (r *Router) Dispatch(ctx context.Context, ev Event) {
	outcome := r.dispatch(ctx, ev)

	metrics.WebhookEventsTotal.WithLabelValues(string(ev.Kind), outcome).Inc()

	if r.audit != nil {
		rec := AuditRecord{
			EventID:    ev.ID,
			Kind:       string(ev.Kind),
			Outcome:    outcome,
			OccurredAt: time.Now().UTC(),
		}
		if err := r.audit.Index(ctx, rec); err != nil {
			r.logger.Warn("Audit sink index failed: event_id=%s error=%v", ev.ID, err)
		}
	}
}

func (r *Router) dispatch(ctx context.Context, ev Event) string {
	switch ev.Kind {
	case KindPaymentSucceeded:
		if ev.Intent == nil {
			r.logger.Error("Payment succeeded event without intent payload: event_id=%s", ev.ID)
			return "malformed"
		}
		if dup := r.alreadyProcessed(ctx, ev); dup {
			return "duplicate"
		}
		r.logger.Info("Payment succeeded: intent_id=%s", ev.Intent.ID)
		return r.materialize(ev.ID, func() error {
			return r.materializer.FromIntent(ctx, *ev.Intent)
		})

	case KindCheckoutCompleted:
		if ev.Session == nil {
			r.logger.Error("Checkout completed event without session payload: event_id=%s", ev.ID)
			return "malformed"
		}
		if dup := r.alreadyProcessed(ctx, ev); dup {
			return "duplicate"
		}
		r.logger.Info("Checkout session completed: session_id=%s", ev.Session.ID)
		return r.materialize(ev.ID, func() error {
			return r.materializer.FromSession(ctx, *ev.Session)
		})

	case KindPaymentFailed:
		// Log only. No materialization for failed payments.
		intentID := ""
		if ev.Intent != nil {
			intentID = ev.Intent.ID
		}
		r.logger.Warn("Payment failed: intent_id=%s reason=%s", intentID, ev.FailureMessage)
		return "logged"

	default:
		r.logger.Info("Unhandled event type ignored: event_id=%s type=%s", ev.ID, ev.RawType)
		return "ignored"
	}
}

// alreadyProcessed consults the idempotency log when configured. Log errors
// do not block processing: losing dedupe is preferable to dropping a booking.
func (r *Router) alreadyProcessed(ctx context.Context, ev Event) bool {
	if r.processed == nil {
		return false
	}
	err := r.processed.MarkProcessed(ctx, ev.ID, string(ev.Kind))
	if err == nil {
		return false
	}
	if errors.Is(err, apperror.ErrEventAlreadyProcessed) {
		r.logger.Warn("Duplicate event delivery skipped: event_id=%s", ev.ID)
		return true
	}
	r.logger.Error("Idempotency log unavailable, processing anyway: event_id=%s error=%v", ev.ID, err)
	return false
}

func (r *Router) materialize(eventID string, fn func() error) string {
	err := fn()
	switch {
	case err == nil:
		return "materialized"
	case errors.Is(err, apperror.ErrInsufficientData):
		r.logger.Warn("Insufficient booking data in metadata, event skipped: event_id=%s", eventID)
		return "skipped"
	default:
		r.logger.Error("Booking materialization failed: event_id=%s error=%v", eventID, err)
		return "failed"
	}
}
