package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/segmentio/kafka-go"
)

const headerEventType = "event_type"

// Publisher emits order lifecycle events. Callers treat publishing as best
// effort: a failure is logged, never returned to the client.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent) error
	Close() error
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer MessageWriter
}

// NewPublisher returns a Kafka backed publisher, or a no-op one when no
// brokers are configured.
func NewPublisher(cfg config.Kafka) Publisher {
	if len(cfg.Brokers) == 0 {
		slog.Info("Kafka brokers not configured, order events are disabled")

		return NopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}

	return NewPublisherWithWriter(writer)
}

func NewPublisherWithWriter(writer MessageWriter) Publisher {
	return &kafkaPublisher{writer: writer}
}

// PublishOrderEvent keys the message by order id so events of one order stay
// ordered within a partition.
func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, event models.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event for order %s: %w", event.Type, event.OrderID, err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, models.OrderEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
