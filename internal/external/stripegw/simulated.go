package stripegw

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"caligold/internal/domain/payment"
	"caligold/pkg/logger"
)

// SimulatedGateway fabricates gateway responses without network calls. Used
// when no Stripe key is configured, so the checkout flow stays demoable.
type SimulatedGateway struct {
	delay  time.Duration
	logger *logger.Logger
}

func NewSimulatedGateway(l *logger.Logger) *SimulatedGateway {
	return &SimulatedGateway{delay: 900 * time.Millisecond, logger: l}
}

// WithDelay overrides the artificial processing latency.
func (g *SimulatedGateway) WithDelay(d time.Duration) *SimulatedGateway {
	g.delay = d
	return g
}

func (g *SimulatedGateway) CreateIntent(ctx context.Context, req payment.CreateIntentRequest) (payment.Intent, error) {
	if err := g.sleep(ctx); err != nil {
		return payment.Intent{}, err
	}

	id := fmt.Sprintf("pi_test_%d_%s", time.Now().UnixMilli(), randToken(9))
	g.logger.Info("simulated payment intent created: %s", id)

	return payment.Intent{
		ID:           id,
		ClientSecret: fmt.Sprintf("%s_secret_%s", id, randToken(16)),
		Amount:       req.Amount,
		Currency:     req.Currency,
		Description:  req.Description,
		Status:       "requires_payment_method",
		Metadata:     req.Metadata,
	}, nil
}

func (g *SimulatedGateway) CreateSession(ctx context.Context, req payment.CreateSessionRequest) (payment.Session, error) {
	if err := g.sleep(ctx); err != nil {
		return payment.Session{}, err
	}

	now := time.Now().UnixMilli()
	id := fmt.Sprintf("cs_test_%d_%s", now, randToken(9))
	g.logger.Info("simulated checkout session created: %s", id)

	return payment.Session{
		ID:             id,
		URL:            fmt.Sprintf("https://checkout.stripe.com/pay/test_session_%d_%s", now, randToken(9)),
		Amount:         req.Amount,
		Currency:       req.Currency,
		Metadata:       req.Metadata,
		IntentMetadata: req.IntentMetadata,
	}, nil
}

func (g *SimulatedGateway) RetrieveIntent(ctx context.Context, id string) (payment.Intent, error) {
	if err := g.sleep(ctx); err != nil {
		return payment.Intent{}, err
	}

	return payment.Intent{
		ID:           id,
		ClientSecret: fmt.Sprintf("%s_secret_%s", id, randToken(16)),
		Amount:       12000,
		Currency:     "usd",
		Status:       "succeeded",
		Metadata: map[string]string{
			"vehicleName":   "Test Vehicle",
			"customerEmail": "test@example.com",
		},
	}, nil
}

func (g *SimulatedGateway) sleep(ctx context.Context) error {
	if g.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.delay):
		return nil
	}
}

const tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}
