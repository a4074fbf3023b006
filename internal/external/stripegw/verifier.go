package stripegw

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"caligold/internal/domain/event"
	"caligold/internal/domain/payment"
)

var (
	// ErrSignature marks a payload whose Stripe-Signature header failed
	// HMAC verification or was absent.
	ErrSignature = errors.New("webhook signature verification failed")
	// ErrPayload marks a payload that authenticated but could not be parsed.
	ErrPayload = errors.New("malformed webhook payload")
)

// Verifier authenticates webhook payloads against the endpoint secret and
// maps them into classified events. Verification runs over the raw request
// bytes, before any JSON decoding.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) Verify(payload []byte, sigHeader string) (event.Event, error) {
	stripeEvent, err := webhook.ConstructEventWithOptions(payload, sigHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: %v", ErrSignature, err)
	}

	return classify(stripeEvent)
}

func classify(se stripe.Event) (event.Event, error) {
	ev := event.Event{ID: se.ID, RawType: string(se.Type)}

	switch se.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		intent, err := decodeIntent(se.Data.Raw)
		if err != nil {
			return event.Event{}, err
		}
		ev.Kind = event.KindPaymentSucceeded
		ev.Intent = intent

	case stripe.EventTypeCheckoutSessionCompleted:
		sess, err := decodeSession(se.Data.Raw)
		if err != nil {
			return event.Event{}, err
		}
		ev.Kind = event.KindCheckoutCompleted
		ev.Session = sess

	case stripe.EventTypePaymentIntentPaymentFailed:
		intent, err := decodeIntent(se.Data.Raw)
		if err != nil {
			return event.Event{}, err
		}
		ev.Kind = event.KindPaymentFailed
		ev.Intent = intent
		ev.FailureMessage = lastErrorMessage(se.Data.Raw)

	default:
		ev.Kind = event.KindOther
	}

	return ev, nil
}

func decodeIntent(raw json.RawMessage) (*payment.Intent, error) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: payment intent: %v", ErrPayload, err)
	}
	return &payment.Intent{
		ID:       pi.ID,
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
		Status:   string(pi.Status),
		Metadata: pi.Metadata,
	}, nil
}

func decodeSession(raw json.RawMessage) (*payment.Session, error) {
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(raw, &cs); err != nil {
		return nil, fmt.Errorf("%w: checkout session: %v", ErrPayload, err)
	}
	sess := &payment.Session{
		ID:       cs.ID,
		Amount:   cs.AmountTotal,
		Currency: string(cs.Currency),
		Metadata: cs.Metadata,
	}
	if cs.PaymentIntent != nil {
		sess.PaymentIntentID = cs.PaymentIntent.ID
	}
	return sess, nil
}

func lastErrorMessage(raw json.RawMessage) string {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(raw, &pi); err != nil || pi.LastPaymentError == nil {
		return ""
	}
	return pi.LastPaymentError.Msg
}
