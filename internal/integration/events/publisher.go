// Package events publishes ledger events to the message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/retail-backoffice/backend/internal/application/adapter"
)

// TopicExpenseCommitted is the topic for committed expense events.
const TopicExpenseCommitted = "expense.committed"

// messageWriter is the subset of *kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implements adapter.ExpenseEventPublisher on Kafka.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = TopicExpenseCommitted
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// PublishExpenseCommitted publishes the event keyed by user so that events of
// one user stay ordered within a partition.
func (p *KafkaPublisher) PublishExpenseCommitted(ctx context.Context, event adapter.ExpenseCommittedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal expense committed event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(TopicExpenseCommitted)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write expense committed event: %w", err)
	}

	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

// PublishExpenseCommitted does nothing.
func (NoopPublisher) PublishExpenseCommitted(context.Context, adapter.ExpenseCommittedEvent) error {
	return nil
}

// Close does nothing.
func (NoopPublisher) Close() error {
	return nil
}
