package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "caligold",
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Total number of webhook events by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	WebhookRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "caligold",
			Subsystem: "webhook",
			Name:      "rejected_total",
			Help:      "Webhook deliveries rejected before event construction",
		},
	)

	BookingsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "caligold",
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Bookings successfully materialized in the external store",
		},
	)

	NotificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "caligold",
			Subsystem: "notify",
			Name:      "sent_total",
			Help:      "Notification attempts by channel and result",
		},
		[]string{"channel", "result"},
	)
)

func init() {
	Registry.MustRegister(
		WebhookEventsTotal,
		WebhookRejectedTotal,
		BookingsCreatedTotal,
		NotificationsSentTotal,
	)
}
