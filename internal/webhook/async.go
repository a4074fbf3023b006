package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"caligold/internal/domain/event"
	"caligold/internal/messaging"
)

// EnvelopeType identifies verified payment events on the wire.
const EnvelopeType = "payment.event"

// AsyncProcessor publishes verified events to Kafka so materialization
// happens off the request path. The provider event id is the partition key,
// keeping redeliveries of the same event on one partition.
type AsyncProcessor struct {
	publisher messaging.Publisher
}

func NewAsyncProcessor(publisher messaging.Publisher) *AsyncProcessor {
	return &AsyncProcessor{publisher: publisher}
}

func (p *AsyncProcessor) ProcessEvent(ctx context.Context, ev event.Event) error {
	envelope, err := messaging.NewEnvelope(ev.ID, EnvelopeType, ev)
	if err != nil {
		return fmt.Errorf("create envelope: %w", err)
	}
	return p.publisher.Publish(ctx, envelope)
}

// ConsumerHandler adapts the router into a messaging handler for the worker
// side of the async pipeline.
func ConsumerHandler(router *event.Router) messaging.MessageHandler {
	return func(ctx context.Context, key, value []byte) error {
		var envelope messaging.Envelope
		if err := json.Unmarshal(value, &envelope); err != nil {
			return fmt.Errorf("unmarshal envelope: %w", err)
		}

		var ev event.Event
		if err := json.Unmarshal(envelope.Payload, &ev); err != nil {
			return fmt.Errorf("unmarshal event: %w", err)
		}

		router.Dispatch(ctx, ev)
		return nil
	}
}
