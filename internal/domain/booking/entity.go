package booking

import "context"

// Payment status values recorded on a booking.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

// Booking status values assigned by the external store.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusFailed    = "FAILED"
)

// CreateRequest is the booking shape posted to the external store. Amounts
// are major currency units; the webhook path converts from the processor's
// minor units before building this.
type CreateRequest struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	PickupLocation  string  `json:"pickupLocation"`
	PickupDetails   string  `json:"pickupDetails,omitempty"`
	DropoffLocation string  `json:"dropoffLocation"`
	DropoffDetails  string  `json:"dropoffDetails,omitempty"`
	PickupDateTime  string  `json:"pickupDateTime"` // RFC 3339
	ReturnDateTime  *string `json:"returnDateTime,omitempty"`
	PassengerCount  int     `json:"passengerCount"`
	IsRoundTrip     bool    `json:"isRoundTrip"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	ServiceType     string  `json:"serviceType,omitempty"`
	DurationHours   int     `json:"durationHours"`
	VehicleID       int     `json:"vehicleId"`
	TotalAmount     float64 `json:"totalAmount"`
	PaymentIntentID string  `json:"paymentIntentId"`
	PaymentStatus   string  `json:"paymentStatus"`
	SessionID       string  `json:"stripeSessionId,omitempty"`
}

// Created is the store's response to a successful create. The reference id
// is assigned by the store; bookings are never cached locally.
type Created struct {
	ID               int64  `json:"id"`
	BookingReference string `json:"bookingReference"`
	CustomerID       int64  `json:"customerId,omitempty"`
	ServiceID        int64  `json:"serviceId,omitempty"`
	Status           string `json:"status,omitempty"`
}

// Store is the create/query HTTP contract of the external booking store.
type Store interface {
	CreateBooking(ctx context.Context, req CreateRequest) (Created, error)
}
