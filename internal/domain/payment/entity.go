package payment

// Intent is an authorization object for one attempted charge, identified by
// the processor's correlation id. Immutable once created.
type Intent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret,omitempty"`
	Amount       int64             `json:"amount"` // minor currency units
	Currency     string            `json:"currency"`
	Description  string            `json:"description,omitempty"`
	Status       string            `json:"status,omitempty"`
	Metadata     map[string]string `json:"metadata"`
}

// Succeeded reports whether the processor settled the charge.
func (i Intent) Succeeded() bool {
	return i.Status == "succeeded"
}

// Session is a hosted-payment-page object wrapping an Intent. Booking context
// is carried twice: at session scope and at payment-intent scope, so the
// webhook path can recover it from whichever event kind arrives first.
type Session struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PaymentIntentID string            `json:"payment_intent_id,omitempty"`
	Amount          int64             `json:"amount"` // minor currency units
	Currency        string            `json:"currency"`
	Metadata        map[string]string `json:"metadata"`
	IntentMetadata  map[string]string `json:"intent_metadata"`
}

// CreateIntentRequest carries the fields for a direct payment intent.
type CreateIntentRequest struct {
	Amount      int64
	Currency    string
	Description string
	Metadata    map[string]string
}

// CreateSessionRequest carries the fields for a hosted checkout session.
// Metadata and IntentMetadata are populated by the orchestrator, not callers.
type CreateSessionRequest struct {
	VehicleName    string
	Amount         int64
	Currency       string
	CustomerEmail  string
	SuccessURL     string
	CancelURL      string
	Metadata       map[string]string
	IntentMetadata map[string]string
}

// Confirmation is the read-only poll result used by the client UI.
type Confirmation struct {
	Succeeded bool   `json:"success"`
	Intent    Intent `json:"paymentIntent"`
}
