// Package outboxrepo stores domain events in the outbox table inside the
// business transaction and relays them to the message bus.
package outboxrepo

import (
	"encoding/json"
	"time"

	"freight/internal/core/ports"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type        string    `gorm:"index"`
	AggregateID uuid.UUID `gorm:"type:uuid;index"`
	OccurredAt  time.Time
	Payload     []byte `gorm:"type:jsonb"`
	CreatedAt   time.Time
	ProcessedAt *time.Time `gorm:"index"`
	Attempts    int
	LastError   string
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromMessage(m ports.Message) MessageDTO {
	return MessageDTO{
		ID:          m.ID,
		Type:        m.Type,
		AggregateID: m.AggregateID,
		OccurredAt:  m.OccurredAt,
		Payload:     m.Payload,
	}
}

func toMessage(dto MessageDTO) ports.Message {
	return ports.Message{
		ID:          dto.ID,
		Type:        dto.Type,
		AggregateID: dto.AggregateID,
		OccurredAt:  dto.OccurredAt,
		Payload:     json.RawMessage(dto.Payload),
	}
}
