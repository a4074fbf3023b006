package event

import (
	"caligold/internal/domain/payment"
)

// Kind is the closed set of webhook event classifications.
type Kind string

const (
	KindPaymentSucceeded  Kind = "payment_intent.succeeded"
	KindCheckoutCompleted Kind = "checkout.session.completed"
	KindPaymentFailed     Kind = "payment_intent.payment_failed"
	KindOther             Kind = "other"
)

// Event is a verified, classified webhook event. It is constructed only by
// the signature verifier; never from unverified bytes.
//
// Exactly one payload field is set per kind: Intent for payment_intent.*
// events, Session for checkout.session.completed. KindOther carries neither.
type Event struct {
	ID             string           `json:"id"`
	Kind           Kind             `json:"kind"`
	Intent         *payment.Intent  `json:"intent,omitempty"`
	Session        *payment.Session `json:"session,omitempty"`
	FailureMessage string           `json:"failure_message,omitempty"`

	// RawType preserves the provider's type string for KindOther logging.
	RawType string `json:"raw_type,omitempty"`
}
