// Package kafka publishes outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// EventTypeHeader carries the domain event name so consumers can route without
// decoding the payload.
const EventTypeHeader = "event-type"

type Config struct {
	Brokers []string
	Topic   string
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.MessagePublisher. Messages are keyed by aggregate
// id so the events of one aggregate stay ordered within a partition.
type Publisher struct {
	writer writer
}

func NewPublisher(cfg Config) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            5,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	return &Publisher{writer: w}
}

func NewPublisherWithWriter(w writer) *Publisher {
	return &Publisher{writer: w}
}

// Publish writes the whole batch in one call. Either every message is
// acknowledged or an error is returned and the relay retries the batch.
func (p *Publisher) Publish(ctx context.Context, msgs ...ports.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	out := make([]kafka.Message, len(msgs))
	for i, m := range msgs {
		value, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal message %s: %w", m.ID, err)
		}
		out[i] = kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: value,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: EventTypeHeader, Value: []byte(m.Type)},
			},
		}
	}

	if err := p.writer.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("failed to write %d messages: %w", len(out), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
