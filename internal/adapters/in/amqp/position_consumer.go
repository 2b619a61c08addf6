// Package amqp feeds device position reports from RabbitMQ into the trip tracker.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PositionReport is the message body published by tracking devices.
type PositionReport struct {
	TripID     string    `json:"trip_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ReportedAt time.Time `json:"reported_at"`
}

type positionReporter interface {
	Handle(ctx context.Context, cmd commands.ReportPositionCommand) error
}

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// PositionConsumer acknowledges a report once it is stored. Reports that can
// never succeed are rejected without requeue; storage failures are requeued.
type PositionConsumer struct {
	ch       channel
	queue    string
	prefetch int
	reporter positionReporter
	logger   *slog.Logger
}

func NewPositionConsumer(ch channel, queue string, prefetch int, reporter positionReporter, logger *slog.Logger) *PositionConsumer {
	if prefetch <= 0 {
		prefetch = 10
	}
	return &PositionConsumer{
		ch:       ch,
		queue:    queue,
		prefetch: prefetch,
		reporter: reporter,
		logger:   logger.With("component", "position_consumer", "queue", queue),
	}
}

// Run declares the queue and consumes it until ctx is done or the channel closes.
func (c *PositionConsumer) Run(ctx context.Context) error {
	q, err := c.ch.QueueDeclare(c.queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := c.ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	deliveries, err := c.ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.InfoContext(ctx, "consuming position reports")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *PositionConsumer) handle(ctx context.Context, d amqp.Delivery) {
	err := c.report(ctx, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			c.logger.ErrorContext(ctx, "failed to ack position report", "error", ackErr)
		}
	case errors.Is(err, errs.ErrStorageUnavailable):
		c.logger.WarnContext(ctx, "position report requeued", "error", err)
		_ = d.Nack(false, true)
	default:
		c.logger.WarnContext(ctx, "position report rejected", "error", err)
		_ = d.Nack(false, false)
	}
}

func (c *PositionConsumer) report(ctx context.Context, body []byte) error {
	var msg PositionReport
	if err := json.Unmarshal(body, &msg); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("position report", err)
	}

	tripID, err := kernel.UUIDFromString(msg.TripID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReportPositionCommand(tripID, nil, msg.Latitude, msg.Longitude, msg.ReportedAt)
	if err != nil {
		return err
	}

	return c.reporter.Handle(ctx, cmd)
}
