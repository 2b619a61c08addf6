package ddd_test

import (
	"testing"
	"time"

	"freight/internal/pkg/ddd"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parcelWeighed struct {
	ddd.BaseEvent
	Kilograms float64 `json:"kilograms"`
}

func TestBaseAggregate(t *testing.T) {
	t.Run("should buffer raised events until cleared", func(t *testing.T) {
		var agg ddd.BaseAggregate
		id := uuid.New()
		at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

		agg.RaiseDomainEvent(parcelWeighed{BaseEvent: ddd.NewBaseEvent("parcel.weighed", id, at), Kilograms: 3})
		agg.RaiseDomainEvent(parcelWeighed{BaseEvent: ddd.NewBaseEvent("parcel.weighed", id, at), Kilograms: 4})

		events := agg.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, "parcel.weighed", events[0].EventName())
		assert.Equal(t, id, events[0].AggregateID())
		assert.Equal(t, at, events[0].OccurredAt())
		assert.NotEqual(t, events[0].EventID(), events[1].EventID())

		agg.ClearDomainEvents()
		assert.Empty(t, agg.GetDomainEvents())
	})

	t.Run("should return a copy of the buffer", func(t *testing.T) {
		var agg ddd.BaseAggregate
		agg.RaiseDomainEvent(parcelWeighed{BaseEvent: ddd.NewBaseEvent("parcel.weighed", uuid.New(), time.Now())})

		events := agg.GetDomainEvents()
		events[0] = nil

		assert.NotNil(t, agg.GetDomainEvents()[0])
	})
}
