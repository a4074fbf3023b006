// Package webhook decides where verified events go after signature
// verification: straight into the router, or through Kafka first.
package webhook

import (
	"context"

	"caligold/internal/domain/event"
)

// Processor handles a verified event. Implementations process it inline or
// hand it off to a broker; either way the HTTP endpoint has already committed
// to acknowledging the delivery.
type Processor interface {
	ProcessEvent(ctx context.Context, ev event.Event) error
}
