package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"caligold/internal/messaging"
	"caligold/pkg/logger"
	"caligold/pkg/metrics"
)

// Consumer implements messaging.Worker using a Kafka consumer group.
type Consumer struct {
	reader *kafka.Reader
	logger *logger.Logger
}

func NewConsumer(l *logger.Logger, brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})

	return &Consumer{
		reader: reader,
		logger: l,
	}
}

// Start consumes messages and hands them to the handler. Blocks until the
// context is cancelled or an unrecoverable error occurs. Offsets are only
// committed after the handler succeeds.
func (c *Consumer) Start(ctx context.Context, handler messaging.MessageHandler) error {
	c.logger.Info("Consumer started: topic=%s group_id=%s",
		c.reader.Config().Topic, c.reader.Config().GroupID)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.logger.Info("Consumer stopped (context cancelled)")
				return nil
			}
			c.logger.Error("Failed to fetch message: error=%v", err)
			return err
		}

		c.logger.Debug("Message received: topic=%s partition=%d offset=%d key=%s",
			msg.Topic, msg.Partition, msg.Offset, string(msg.Key))

		group := c.reader.Config().GroupID
		start := time.Now()
		err = handler(ctx, msg.Key, msg.Value)

		if err != nil {
			metrics.KafkaProcessingDuration.WithLabelValues(msg.Topic, group, "error").Observe(time.Since(start).Seconds())
			metrics.KafkaMessagesProcessed.WithLabelValues(msg.Topic, group, "error").Inc()
			c.logger.Error("Handler error, message not committed: topic=%s partition=%d offset=%d key=%s error=%v",
				msg.Topic, msg.Partition, msg.Offset, string(msg.Key), err)
			// Not committed, so the message is redelivered on restart.
			continue
		}
		metrics.KafkaProcessingDuration.WithLabelValues(msg.Topic, group, "ok").Observe(time.Since(start).Seconds())
		metrics.KafkaMessagesProcessed.WithLabelValues(msg.Topic, group, "ok").Inc()

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("Failed to commit message: topic=%s partition=%d offset=%d error=%v",
				msg.Topic, msg.Partition, msg.Offset, err)
			return err
		}
	}
}

func (c *Consumer) Close() error {
	c.logger.Info("Closing consumer: topic=%s group_id=%s",
		c.reader.Config().Topic, c.reader.Config().GroupID)
	return c.reader.Close()
}
