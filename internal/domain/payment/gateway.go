package payment

import "context"

// Gateway is the port to the external payment processor. The live
// implementation talks to Stripe; the simulated one synthesizes deterministic
// responses for integration testing. Selected once at process start.
type Gateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (Intent, error)
	CreateSession(ctx context.Context, req CreateSessionRequest) (Session, error)
	RetrieveIntent(ctx context.Context, id string) (Intent, error)
}
