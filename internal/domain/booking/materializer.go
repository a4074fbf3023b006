package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"caligold/internal/controller/apperror"
	"caligold/internal/domain/notify"
	"caligold/internal/domain/payment"
	"caligold/pkg/logger"
	"caligold/pkg/metrics"
)

const pickupLayout = "2006-01-02T15:04"

// Notifier is the dispatch side-channel fired after a successful create.
type Notifier interface {
	DispatchBooking(ctx context.Context, n notify.BookingNotification) notify.Outcome
}

// Materializer converts payment event metadata into a booking-creation
// request and posts it to the external store. The metadata map is the sole
// source of truth: required fields are never fabricated, their absence skips
// the event.
type Materializer struct {
	store    Store
	notifier Notifier
	now      func() time.Time
	logger   *logger.Logger
}

func NewMaterializer(store Store, notifier Notifier, l *logger.Logger) *Materializer {
	return &Materializer{store: store, notifier: notifier, now: time.Now, logger: l}
}

// FromIntent materializes a booking from a succeeded payment intent.
func (m *Materializer) FromIntent(ctx context.Context, intent payment.Intent) error {
	return m.materialize(ctx, intent.ID, "", intent.Amount, intent.Metadata)
}

// FromSession materializes a booking from a completed checkout session.
// Session-scope metadata is authoritative for this event kind.
func (m *Materializer) FromSession(ctx context.Context, session payment.Session) error {
	return m.materialize(ctx, session.PaymentIntentID, session.ID, session.Amount, session.Metadata)
}

func (m *Materializer) materialize(ctx context.Context, intentID, sessionID string, amount int64, meta map[string]string) error {
	vehicleID, err := requiredVehicleID(meta)
	if err != nil {
		return err
	}
	if meta["customerEmail"] == "" {
		return fmt.Errorf("%w: customerEmail", apperror.ErrInsufficientData)
	}

	firstName, lastName := splitName(meta["customerName"])
	pickupAt := m.pickupDateTime(meta["serviceDate"], meta["pickupTime"])
	serviceType := orDefault(meta["serviceType"], "standard")

	req := CreateRequest{
		FirstName:       firstName,
		LastName:        lastName,
		Email:           meta["customerEmail"],
		Phone:           meta["customerPhone"],
		PickupLocation:  meta["pickupLocation"],
		PickupDetails:   meta["pickupDetails"],
		DropoffLocation: meta["dropoffLocation"],
		DropoffDetails:  meta["dropoffDetails"],
		PickupDateTime:  pickupAt.Format(time.RFC3339),
		PassengerCount:  positiveInt(meta["passengers"], 1),
		IsRoundTrip:     meta["roundTrip"] == "true",
		SpecialRequests: "Service Type: " + serviceType,
		ServiceType:     serviceType,
		DurationHours:   positiveInt(meta["duration"], 1),
		VehicleID:       vehicleID,
		TotalAmount:     float64(amount) / 100, // minor to major units
		PaymentIntentID: intentID,
		PaymentStatus:   PaymentCompleted,
		SessionID:       sessionID,
	}

	created, err := m.store.CreateBooking(ctx, req)
	if err != nil {
		// Not retried and never escalated to the payment processor:
		// failed materializations are reconciled out-of-band via logs.
		return fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingsCreatedTotal.Inc()
	m.logger.Info("Booking saved: reference=%s intent_id=%s total=%.2f",
		created.BookingReference, intentID, req.TotalAmount)

	// Notification outcome does not affect booking success.
	outcome := m.notifier.DispatchBooking(ctx, notify.BookingNotification{
		Reference:       created.BookingReference,
		FirstName:       firstName,
		LastName:        lastName,
		Email:           req.Email,
		Phone:           req.Phone,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupDateTime:  pickupAt,
		PassengerCount:  req.PassengerCount,
		IsRoundTrip:     req.IsRoundTrip,
		VehicleName:     meta["vehicleName"],
		ServiceType:     serviceType,
		DurationHours:   req.DurationHours,
		TotalAmount:     req.TotalAmount,
		PaymentIntentID: intentID,
	})
	if !outcome.TeamSent || !outcome.CustomerSent {
		m.logger.Warn("Booking notifications incomplete: reference=%s team_sent=%t customer_sent=%t",
			created.BookingReference, outcome.TeamSent, outcome.CustomerSent)
	}

	return nil
}

// pickupDateTime combines serviceDate and pickupTime into one instant.
// Falls back to the current time when either part is absent.
// TODO: decide whether a missing schedule should hard-fail instead.
func (m *Materializer) pickupDateTime(serviceDate, pickupTime string) time.Time {
	if serviceDate == "" || pickupTime == "" {
		m.logger.Warn("Schedule metadata missing, defaulting pickup to now: date=%q time=%q",
			serviceDate, pickupTime)
		return m.now().UTC()
	}
	t, err := time.Parse(pickupLayout, serviceDate+"T"+pickupTime)
	if err != nil {
		m.logger.Warn("Unparseable schedule metadata, defaulting pickup to now: date=%q time=%q",
			serviceDate, pickupTime)
		return m.now().UTC()
	}
	return t
}

// requiredVehicleID reads the vehicle id from metadata. Both an absent and a
// non-numeric id are terminal for the event: there is no usable vehicle to
// book against, and values are never invented.
func requiredVehicleID(meta map[string]string) (int, error) {
	raw := meta["vehicleId"]
	if raw == "" {
		return 0, fmt.Errorf("%w: vehicleId", apperror.ErrInsufficientData)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: vehicleId %q is not numeric", apperror.ErrInsufficientData, raw)
	}
	return id, nil
}

// splitName splits a display name on the first whitespace, best-effort. A
// single-word name yields an empty last name; an empty name yields the
// placeholder the store expects.
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Customer", ""
	}
	parts := strings.Fields(name)
	return parts[0], strings.Join(parts[1:], " ")
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
