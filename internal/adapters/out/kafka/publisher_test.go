package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"freight/internal/core/ports"

	"github.com/google/uuid"
	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []skafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublisher_Publish(t *testing.T) {
	occurredAt := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	msg := ports.Message{
		ID:          uuid.New(),
		Type:        "listing.published",
		AggregateID: uuid.New(),
		OccurredAt:  occurredAt,
		Payload:     json.RawMessage(`{"price":300}`),
	}

	t.Run("should key by aggregate and tag the event type", func(t *testing.T) {
		fw := &fakeWriter{}
		p := NewPublisherWithWriter(fw)

		require.NoError(t, p.Publish(t.Context(), msg))

		require.Len(t, fw.msgs, 1)
		got := fw.msgs[0]
		assert.Equal(t, msg.AggregateID.String(), string(got.Key))
		assert.Equal(t, occurredAt, got.Time)
		require.Len(t, got.Headers, 1)
		assert.Equal(t, EventTypeHeader, got.Headers[0].Key)
		assert.Equal(t, "listing.published", string(got.Headers[0].Value))

		var envelope ports.Message
		require.NoError(t, json.Unmarshal(got.Value, &envelope))
		assert.Equal(t, msg.ID, envelope.ID)
		assert.JSONEq(t, `{"price":300}`, string(envelope.Payload))
	})

	t.Run("should skip an empty batch", func(t *testing.T) {
		fw := &fakeWriter{err: errors.New("must not be called")}
		p := NewPublisherWithWriter(fw)

		require.NoError(t, p.Publish(t.Context()))
	})

	t.Run("should return the writer error", func(t *testing.T) {
		cause := errors.New("leader not available")
		p := NewPublisherWithWriter(&fakeWriter{err: cause})

		err := p.Publish(t.Context(), msg, msg)

		require.ErrorIs(t, err, cause)
	})
}
