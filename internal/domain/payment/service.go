package payment

import (
	"context"
	"fmt"

	"caligold/internal/controller/apperror"
	"caligold/pkg/logger"
)

// MinAmount is the processor minimum charge: 50 minor units ($0.50).
const MinAmount = 50

// SessionParams is the caller-facing input for a checkout session. The raw
// booking context map is flattened into processor metadata by the service.
type SessionParams struct {
	VehicleName   string
	VehicleID     string
	Amount        int64
	Currency      string
	CustomerEmail string
	CustomerName  string
	BookingData   map[string]string
}

// Service orchestrates payment intent and checkout session creation against
// the configured gateway.
type Service struct {
	gateway     Gateway
	siteBaseURL string
	logger      *logger.Logger
}

func NewService(gateway Gateway, siteBaseURL string, l *logger.Logger) *Service {
	return &Service{gateway: gateway, siteBaseURL: siteBaseURL, logger: l}
}

// CreateIntent validates and creates a payment intent. No processor call is
// made when validation fails.
func (s *Service) CreateIntent(ctx context.Context, req CreateIntentRequest) (Intent, error) {
	if req.Amount < MinAmount {
		return Intent{}, apperror.ErrInvalidAmount
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}
	if req.Description == "" {
		req.Description = "CALI GOLD DRIVE - Vehicle Booking"
	}
	if req.Metadata == nil {
		req.Metadata = map[string]string{}
	}

	intent, err := s.gateway.CreateIntent(ctx, req)
	if err != nil {
		return Intent{}, fmt.Errorf("create intent: %w", err)
	}

	s.logger.Info("Payment intent created: id=%s amount=%d currency=%s",
		intent.ID, intent.Amount, intent.Currency)
	return intent, nil
}

// CreateSession validates and creates a hosted checkout session. The full
// booking context is written to metadata twice (session scope and intent
// scope) so either webhook event kind can reconstruct the booking.
func (s *Service) CreateSession(ctx context.Context, params SessionParams) (Session, error) {
	if params.Amount < MinAmount {
		return Session{}, apperror.ErrInvalidAmount
	}
	if params.VehicleName == "" || params.CustomerEmail == "" {
		return Session{}, fmt.Errorf("%w: vehicleName and customerEmail are required", apperror.ErrMissingField)
	}
	if params.Currency == "" {
		params.Currency = "usd"
	}

	meta := bookingMetadata(params)

	session, err := s.gateway.CreateSession(ctx, CreateSessionRequest{
		VehicleName:    params.VehicleName,
		Amount:         params.Amount,
		Currency:       params.Currency,
		CustomerEmail:  params.CustomerEmail,
		SuccessURL:     s.siteBaseURL + "/booking-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      s.siteBaseURL + "/fleet?cancelled=true",
		Metadata:       meta,
		IntentMetadata: cloneMetadata(meta),
	})
	if err != nil {
		return Session{}, fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info("Checkout session created: id=%s vehicle=%s amount=%d",
		session.ID, params.VehicleName, params.Amount)
	return session, nil
}

// PaymentStatus is the read-only confirmation poll. Pure read, no side
// effects.
func (s *Service) PaymentStatus(ctx context.Context, intentID string) (Confirmation, error) {
	if intentID == "" {
		return Confirmation{}, fmt.Errorf("%w: paymentIntentId", apperror.ErrMissingField)
	}

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return Confirmation{}, fmt.Errorf("retrieve intent: %w", err)
	}

	return Confirmation{Succeeded: intent.Succeeded(), Intent: intent}, nil
}

// bookingMetadata flattens the raw booking context into the string-keyed map
// the webhook path reads back. Metadata is the sole source of truth for
// reconstructing a booking.
func bookingMetadata(p SessionParams) map[string]string {
	data := p.BookingData
	if data == nil {
		data = map[string]string{}
	}

	return map[string]string{
		"vehicleId":       p.VehicleID,
		"vehicleName":     p.VehicleName,
		"customerEmail":   p.CustomerEmail,
		"customerName":    p.CustomerName,
		"customerPhone":   data["mobile"],
		"pickupLocation":  data["pickupLocation"],
		"pickupDetails":   data["pickupDetails"],
		"dropoffLocation": data["dropoffLocation"],
		"dropoffDetails":  data["dropoffDetails"],
		"serviceDate":     data["serviceDate"],
		"pickupTime":      data["pickupTime"],
		"serviceType":     data["serviceType"],
		"passengers":      orDefault(data["passengers"], "1"),
		"roundTrip":       orDefault(data["roundTrip"], "false"),
		"duration":        orDefault(data["duration"], "1"),
	}
}

func cloneMetadata(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
