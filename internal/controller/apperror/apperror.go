package apperror

import "errors"

var (
	// ErrInvalidAmount is returned when a charge amount is below the
	// processor minimum of 50 minor units.
	ErrInvalidAmount = errors.New("amount must be at least $0.50")

	// ErrMissingField is returned when a required request field is absent.
	ErrMissingField = errors.New("required field missing")

	// ErrInsufficientData means event metadata lacks the fields needed to
	// materialize a booking. Non-fatal: the event is skipped, not failed.
	ErrInsufficientData = errors.New("insufficient booking data in metadata")

	// ErrUpstream is returned when the external booking store answers non-2xx.
	ErrUpstream = errors.New("booking store error")

	// ErrEventAlreadyProcessed is returned by the idempotency log for a
	// redelivered event id.
	ErrEventAlreadyProcessed = errors.New("event already processed")
)
