package notify

import (
	"context"
	"sync"
	"time"

	"caligold/pkg/logger"
	"caligold/pkg/metrics"
)

// Dispatcher fans one notification payload out to the team-facing and
// customer-facing channels. Both sends run concurrently and settle
// independently: a failure on one never cancels or blocks the other, and
// neither failure is ever escalated past the Outcome flags.
type Dispatcher struct {
	team     Channel
	customer Channel
	teamTo   []string
	timeout  time.Duration
	logger   *logger.Logger
}

func NewDispatcher(team, customer Channel, teamTo []string, timeout time.Duration, l *logger.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{team: team, customer: customer, teamTo: teamTo, timeout: timeout, logger: l}
}

// DispatchBooking sends the booking confirmation to the team and the
// customer.
func (d *Dispatcher) DispatchBooking(ctx context.Context, n BookingNotification) Outcome {
	return d.settleAll(ctx,
		Message{
			To:      d.teamTo,
			Subject: "🚗 New Booking: " + n.Reference + " - " + n.FirstName + " " + n.LastName,
			HTML:    bookingTeamHTML(n),
		},
		Message{
			To:      []string{n.Email},
			Subject: "Your CALI GOLD DRIVE booking is confirmed - " + n.Reference,
			HTML:    bookingCustomerHTML(n),
		},
	)
}

// DispatchContact sends the contact-form notification to the team and the
// confirmation to the customer. Same two-channel settle-all contract as
// bookings.
func (d *Dispatcher) DispatchContact(ctx context.Context, n ContactNotification) Outcome {
	return d.settleAll(ctx,
		Message{
			To:      d.teamTo,
			Subject: "📧 Contact Form: " + n.Subject,
			HTML:    contactTeamHTML(n),
		},
		Message{
			To:      []string{n.Email},
			Subject: "We received your message - CALI GOLD DRIVE",
			HTML:    contactCustomerHTML(n),
		},
	)
}

// settleAll runs both sends to completion and joins the results. The join
// never short-circuits on the first failure.
func (d *Dispatcher) settleAll(ctx context.Context, teamMsg, customerMsg Message) Outcome {
	var (
		out Outcome
		wg  sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		out.TeamSent = d.send(ctx, "team", d.team, teamMsg)
	}()
	go func() {
		defer wg.Done()
		out.CustomerSent = d.send(ctx, "customer", d.customer, customerMsg)
	}()
	wg.Wait()

	return out
}

func (d *Dispatcher) send(ctx context.Context, channel string, ch Channel, msg Message) bool {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := ch.Send(sendCtx, msg); err != nil {
		d.logger.Warn("Notification send failed: channel=%s subject=%q error=%v", channel, msg.Subject, err)
		metrics.NotificationsSentTotal.WithLabelValues(channel, "error").Inc()
		return false
	}

	d.logger.Info("Notification sent: channel=%s subject=%q", channel, msg.Subject)
	metrics.NotificationsSentTotal.WithLabelValues(channel, "ok").Inc()
	return true
}
