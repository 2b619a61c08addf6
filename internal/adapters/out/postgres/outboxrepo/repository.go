package outboxrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/ports"
	"freight/internal/pkg/ddd"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutbox reads and writes outbox_messages through the given connection,
// which is a transaction when used by the unit of work.
type GormOutbox struct {
	db *gorm.DB
}

func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db}
}

// NewMessage wraps a domain event in the outbox envelope. The payload is the
// event's JSON form.
func NewMessage(event ddd.DomainEvent) (ports.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return ports.Message{}, fmt.Errorf("marshal %s: %w", event.EventName(), err)
	}

	return ports.Message{
		ID:          event.EventID(),
		Type:        event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
		Payload:     payload,
	}, nil
}

func (o *GormOutbox) Append(ctx context.Context, msgs ...ports.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		dtos[i] = fromMessage(m)
	}
	if err := o.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return errs.NewStorageError("append outbox messages", err)
	}
	return nil
}

// Claim locks up to limit unprocessed messages, oldest first. Rows locked by
// another relay are skipped. Must run inside a transaction.
func (o *GormOutbox) Claim(ctx context.Context, limit int) ([]ports.Message, error) {
	var dtos []MessageDTO
	err := o.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStorageError("claim outbox messages", err)
	}

	msgs := make([]ports.Message, len(dtos))
	for i, dto := range dtos {
		msgs[i] = toMessage(dto)
	}
	return msgs, nil
}

func (o *GormOutbox) MarkProcessed(ctx context.Context, msgs []ports.Message, at time.Time) error {
	if len(msgs) == 0 {
		return nil
	}

	err := o.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ?", ids(msgs)).
		Update("processed_at", at).Error
	if err != nil {
		return errs.NewStorageError("mark outbox messages processed", err)
	}
	return nil
}

// MarkFailed leaves the messages pending and records the failure.
func (o *GormOutbox) MarkFailed(ctx context.Context, msgs []ports.Message, cause error) error {
	if len(msgs) == 0 {
		return nil
	}

	err := o.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ?", ids(msgs)).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": cause.Error(),
		}).Error
	if err != nil {
		return errs.NewStorageError("mark outbox messages failed", err)
	}
	return nil
}

func ids(msgs []ports.Message) []any {
	out := make([]any, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}
