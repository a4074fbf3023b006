package notify

import (
	"context"
	"time"
)

// Message is one rendered notification handed to a channel.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Channel is a single delivery path (SMTP in production, fakes in tests).
type Channel interface {
	Send(ctx context.Context, msg Message) error
}

// Outcome reports per-channel delivery, fully isolated: one channel's
// failure never affects the other's flag.
type Outcome struct {
	TeamSent     bool `json:"teamNotificationSent"`
	CustomerSent bool `json:"customerConfirmationSent"`
}

// BookingNotification is the payload rendered into the booking confirmation
// messages, built from the store's response plus the original event metadata.
type BookingNotification struct {
	Reference       string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	PickupLocation  string
	DropoffLocation string
	PickupDateTime  time.Time
	PassengerCount  int
	IsRoundTrip     bool
	VehicleName     string
	ServiceType     string
	DurationHours   int
	TotalAmount     float64
	PaymentIntentID string
}

// ContactNotification is the payload for contact-form notifications.
type ContactNotification struct {
	Name        string
	Email       string
	Phone       string
	Subject     string
	Body        string
	SubmittedAt time.Time
}
