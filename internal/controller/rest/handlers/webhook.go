package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"caligold/internal/external/stripegw"
	"caligold/internal/webhook"
	"caligold/pkg/logger"
	"caligold/pkg/metrics"
)

// maxWebhookBody caps how much of a webhook payload is read. Stripe events
// stay well under this.
const maxWebhookBody = 1 << 20 // 1MB

const signatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	verifier  *stripegw.Verifier
	processor webhook.Processor
	logger    *logger.Logger
}

func NewWebhookHandler(v *stripegw.Verifier, p webhook.Processor, l *logger.Logger) WebhookHandler {
	return WebhookHandler{verifier: v, processor: p, logger: l}
}

// Handle authenticates and processes one webhook delivery. Verification runs
// over the raw body bytes before anything is parsed. Once the signature
// checks out the delivery is acknowledged with {received:true} no matter what
// happens downstream; the processor's retry policy must not be triggered by
// our own failures.
func (h *WebhookHandler) Handle(c *gin.Context) {
	sig := c.GetHeader(signatureHeader)
	if sig == "" {
		metrics.WebhookRejectedTotal.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature header"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		metrics.WebhookRejectedTotal.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	ev, err := h.verifier.Verify(body, sig)
	if err != nil {
		metrics.WebhookRejectedTotal.Inc()
		h.logger.Warn("Webhook rejected: error=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook verification failed"})
		return
	}

	if err := h.processor.ProcessEvent(c.Request.Context(), ev); err != nil {
		// Acknowledged anyway; the failure is recovered out of band.
		h.logger.Error("Webhook processing failed after verification: event_id=%s error=%v", ev.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
