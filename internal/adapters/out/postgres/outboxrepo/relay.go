package outboxrepo

import (
	"context"
	"time"

	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// Relay moves committed outbox messages to a MessagePublisher.
type Relay struct {
	db        *gorm.DB
	publisher ports.MessagePublisher
	batchSize int
}

func NewRelay(db *gorm.DB, publisher ports.MessagePublisher, batchSize int) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relay{db: db, publisher: publisher, batchSize: batchSize}
}

// RelayBatch publishes one batch and returns how many messages were delivered.
// A publish failure is recorded on the messages, which stay pending for the
// next run; the failure is also returned.
func (r *Relay) RelayBatch(ctx context.Context) (int, error) {
	var (
		published  int
		publishErr error
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		outbox := NewGormOutbox(tx)

		msgs, err := outbox.Claim(ctx, r.batchSize)
		if err != nil || len(msgs) == 0 {
			return err
		}

		if publishErr = r.publisher.Publish(ctx, msgs...); publishErr != nil {
			return outbox.MarkFailed(ctx, msgs, publishErr)
		}

		published = len(msgs)
		return outbox.MarkProcessed(ctx, msgs, time.Now().UTC())
	})
	if err != nil {
		return 0, err
	}

	return published, publishErr
}
