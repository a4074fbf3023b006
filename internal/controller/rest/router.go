package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caligold/internal/controller/rest/handlers"
	"caligold/pkg/health"
	"caligold/pkg/metrics"
)

type Router struct {
	payment    handlers.PaymentHandler
	webhook    handlers.WebhookHandler
	contact    handlers.ContactHandler
	booking    handlers.BookingHandler
	healthzReg *health.Registry
}

func NewRouter(
	payment handlers.PaymentHandler,
	webhook handlers.WebhookHandler,
	contact handlers.ContactHandler,
	booking handlers.BookingHandler,
	healthzReg *health.Registry,
) *Router {
	return &Router{
		payment:    payment,
		webhook:    webhook,
		contact:    contact,
		booking:    booking,
		healthzReg: healthzReg,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.POST("/payments/intents", r.payment.CreateIntent)
	engine.POST("/payments/checkout-sessions", r.payment.CreateCheckoutSession)
	engine.POST("/payments/intents/confirm", r.payment.Confirm)
	engine.POST("/payments/intents/:id/confirm", r.payment.Confirm)
	engine.POST("/payments/webhook", r.webhook.Handle)

	engine.POST("/contact", r.contact.Submit)
	engine.POST("/bookings", r.booking.Create)

	engine.GET("/healthz", health.LivenessHandler())
	engine.GET("/readyz", health.ReadinessHandler(r.healthzReg, health.DefaultTimeout))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}
