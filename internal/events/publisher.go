package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fsdevblog/dzstore/internal/domain"
)

// KafkaPublisher writes order events keyed by order number, so events of one order stay ordered
// within a partition.
type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			MaxAttempts:  3,
			WriteTimeout: 5 * time.Second,
			BatchTimeout: 50 * time.Millisecond,
			Async:        true,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	msg, err := encodeMessage(event)
	if err != nil {
		return err
	}
	if writeErr := p.w.WriteMessages(ctx, msg); writeErr != nil {
		return fmt.Errorf("publishing %s event: %w", event.Type, writeErr)
	}
	return nil
}

func encodeMessage(event domain.OrderEvent) (kafka.Message, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encoding %s event: %w", event.Type, err)
	}
	return kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: b,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close() //nolint:wrapcheck
}

// NopPublisher drops events. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.OrderEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
