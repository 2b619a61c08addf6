package http_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIdempotency(t *testing.T) {
	carrier := newActor(t, kernel.Carrier)

	t.Run("should replay the stored response for a repeated key", func(t *testing.T) {
		handler := &MockCreateListingHandler{}
		f := newFixture(t, httpadapter.Handlers{CreateListing: handler})
		handler.On("Handle", mock.Anything, mock.Anything).Return(newListing(t, carrier), nil).Once()

		first := f.call(http.MethodPost, "/api/v1/listings", bearer(t, carrier), listingBody,
			httpadapter.IdempotencyKeyHeader, "k-1")
		second := f.call(http.MethodPost, "/api/v1/listings", bearer(t, carrier), listingBody,
			httpadapter.IdempotencyKeyHeader, "k-1")

		require.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, "true", second.Header().Get(httpadapter.IdempotentReplayedHeader))
		assert.JSONEq(t, first.Body.String(), second.Body.String())
		handler.AssertNumberOfCalls(t, "Handle", 1)
	})

	t.Run("should not share keys between actors", func(t *testing.T) {
		other := newActor(t, kernel.Carrier)
		handler := &MockCreateListingHandler{}
		f := newFixture(t, httpadapter.Handlers{CreateListing: handler})
		handler.On("Handle", mock.Anything, mock.Anything).Return(newListing(t, carrier), nil).Twice()

		f.call(http.MethodPost, "/api/v1/listings", bearer(t, carrier), listingBody,
			httpadapter.IdempotencyKeyHeader, "k-1")
		rec := f.call(http.MethodPost, "/api/v1/listings", bearer(t, other), listingBody,
			httpadapter.IdempotencyKeyHeader, "k-1")

		assert.Empty(t, rec.Header().Get(httpadapter.IdempotentReplayedHeader))
		handler.AssertNumberOfCalls(t, "Handle", 2)
	})

	t.Run("should answer 409 while the first request is running", func(t *testing.T) {
		handler := &MockCreateListingHandler{}
		f := newFixture(t, httpadapter.Handlers{CreateListing: handler})
		key := "idempotency:" + carrier.ID().String() + ":/api/v1/listings:k-2"
		_, err := f.store.Reserve(t.Context(), key, time.Minute)
		require.NoError(t, err)

		rec := f.call(http.MethodPost, "/api/v1/listings", bearer(t, carrier), listingBody,
			httpadapter.IdempotencyKeyHeader, "k-2")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "request_in_progress", decode(t, rec)["kind"])
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should let the client retry after a server error", func(t *testing.T) {
		handler := &MockCreateListingHandler{}
		f := newFixture(t, httpadapter.Handlers{CreateListing: handler})
		handler.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
		handler.On("Handle", mock.Anything, mock.Anything).Return(newListing(t, carrier), nil).Once()

		first := f.call(http.MethodPost, "/api/v1/listings", bearer(t, carrier), listingBody,
			httpadapter.IdempotencyKeyHeader, "k-3")
		second := f.call(http.MethodPost, "/api/v1/listings", bearer(t, carrier), listingBody,
			httpadapter.IdempotencyKeyHeader, "k-3")

		assert.Equal(t, http.StatusInternalServerError, first.Code)
		assert.Equal(t, http.StatusCreated, second.Code)
		handler.AssertNumberOfCalls(t, "Handle", 2)
	})

	t.Run("should leave requests without a key alone", func(t *testing.T) {
		handler := &MockCreateListingHandler{}
		f := newFixture(t, httpadapter.Handlers{CreateListing: handler})
		handler.On("Handle", mock.Anything, mock.Anything).Return(newListing(t, carrier), nil).Twice()

		f.call(http.MethodPost, "/api/v1/listings", bearer(t, carrier), listingBody)
		f.call(http.MethodPost, "/api/v1/listings", bearer(t, carrier), listingBody)

		handler.AssertNumberOfCalls(t, "Handle", 2)
	})
}
