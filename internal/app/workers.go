package app

import (
	"context"

	"caligold/config"
	"caligold/internal/domain/event"
	"caligold/internal/external/kafka"
	"caligold/internal/messaging"
	"caligold/internal/webhook"
	"caligold/pkg/logger"
)

// NewAsyncPipeline builds the kafka-mode webhook pipeline: the returned
// processor publishes verified events to the events topic, and a consumer
// group started here dispatches them through the router with retry + DLQ.
func NewAsyncPipeline(ctx context.Context, l *logger.Logger, cfg config.Config, router *event.Router) webhook.Processor {
	publisher := kafka.NewPublisher(l, cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	dlq := kafka.NewDLQPublisher(l, cfg.KafkaBrokers, cfg.KafkaEventsDLQTopic)

	handler := messaging.WithDLQ(
		messaging.WithRetry(webhook.ConsumerHandler(router), messaging.DefaultRetryConfig()),
		dlq,
	)

	consumer := kafka.NewConsumer(l, cfg.KafkaBrokers, cfg.KafkaEventsTopic, cfg.KafkaEventsConsumerGroup)
	runner := messaging.NewRunner(l, []messaging.Worker{consumer}, handler)

	go func() {
		l.Info("Starting webhook event consumer: topic=%s group=%s",
			cfg.KafkaEventsTopic, cfg.KafkaEventsConsumerGroup)
		if err := runner.Start(ctx); err != nil {
			l.Error("Webhook event runner failed: error=%v", err)
		}
	}()

	return webhook.NewAsyncProcessor(publisher)
}
