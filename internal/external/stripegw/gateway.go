// Package stripegw adapts the Stripe API to the payment.Gateway port and
// authenticates inbound webhook payloads.
package stripegw

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"caligold/internal/domain/payment"
)

// LiveGateway talks to the real Stripe API.
type LiveGateway struct {
	api *client.API
}

func NewLiveGateway(secretKey string) *LiveGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &LiveGateway{api: api}
}

func (g *LiveGateway) CreateIntent(ctx context.Context, req payment.CreateIntentRequest) (payment.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return payment.Intent{}, err
	}

	return intentFromStripe(pi), nil
}

func (g *LiveGateway) CreateSession(ctx context.Context, req payment.CreateSessionRequest) (payment.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(req.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("CALI GOLD DRIVE - " + req.VehicleName),
						Description: stripe.String("Luxury transportation service with " + req.VehicleName),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		CustomerEmail: stripe.String(req.CustomerEmail),
		// Booking context rides in both scopes so either webhook event kind
		// can recover it.
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: req.IntentMetadata,
		},
	}
	params.Metadata = req.Metadata

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return payment.Session{}, err
	}

	out := payment.Session{
		ID:             sess.ID,
		URL:            sess.URL,
		Amount:         sess.AmountTotal,
		Currency:       string(sess.Currency),
		Metadata:       sess.Metadata,
		IntentMetadata: req.IntentMetadata,
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}
	return out, nil
}

func (g *LiveGateway) RetrieveIntent(ctx context.Context, id string) (payment.Intent, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return payment.Intent{}, err
	}
	return intentFromStripe(pi), nil
}

func intentFromStripe(pi *stripe.PaymentIntent) payment.Intent {
	return payment.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Description:  pi.Description,
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}
