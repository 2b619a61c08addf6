package services_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func actor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func place(t *testing.T, name string) kernel.Place {
	t.Helper()
	p, err := kernel.NewPlace(name, nil)
	require.NoError(t, err)
	return p
}

func activeListing(t *testing.T, owner kernel.Actor) *listing.Listing {
	t.Helper()
	maxWeight := 10.0
	maxDims := dims(t, 2, 2, 2)
	l, err := listing.NewListing(kernel.NewUUID(), owner, listing.Params{
		Origin:        place(t, "Casablanca"),
		Destination:   place(t, "Tangier"),
		DepartureAt:   now.Add(24 * time.Hour),
		MaxWeight:     &maxWeight,
		MaxDimensions: &maxDims,
	}, now)
	require.NoError(t, err)
	return l
}

func details(t *testing.T, weight float64, d kernel.Dimensions) request.Details {
	t.Helper()
	parcel, err := request.NewParcel("boxes", d, weight, "", 0, false)
	require.NoError(t, err)
	return request.Details{
		Parcel:   parcel,
		Pickup:   place(t, "Casablanca"),
		Delivery: place(t, "Tangier"),
	}
}

func TestRequestPlacer_Place(t *testing.T) {
	placer := services.NewRequestPlacer(services.NewCapacityValidator())
	carrier := actor(t, kernel.Carrier)

	t.Run("should place a fitting parcel as pending", func(t *testing.T) {
		l := activeListing(t, carrier)

		r, err := placer.Place(kernel.NewUUID(), actor(t, kernel.Shipper), l, false, details(t, 5, dims(t, 1, 1, 1)), now)

		require.NoError(t, err)
		assert.Equal(t, request.Pending, r.Status())
		assert.True(t, r.ListingID().IsEqual(l.ID()))
	})

	t.Run("should reject a non shipper first", func(t *testing.T) {
		l := activeListing(t, carrier)
		require.NoError(t, l.Cancel(carrier, now))

		_, err := placer.Place(kernel.NewUUID(), carrier, l, true, details(t, 50, dims(t, 1, 1, 1)), now)

		require.ErrorIs(t, err, errs.ErrForbiddenRole)
	})

	t.Run("should reject an inactive listing", func(t *testing.T) {
		l := activeListing(t, carrier)
		require.NoError(t, l.Complete(carrier, now))

		_, err := placer.Place(kernel.NewUUID(), actor(t, kernel.Shipper), l, false, details(t, 5, dims(t, 1, 1, 1)), now)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should reject a requester booking their own listing", func(t *testing.T) {
		shipper := actor(t, kernel.Shipper)
		ownerAsCarrier, err := kernel.NewActor(shipper.ID(), kernel.Carrier)
		require.NoError(t, err)
		l := activeListing(t, ownerAsCarrier)

		_, err = placer.Place(kernel.NewUUID(), shipper, l, false, details(t, 5, dims(t, 1, 1, 1)), now)

		require.ErrorIs(t, err, errs.ErrSelfBooking)
	})

	t.Run("should reject a second open request before checking capacity", func(t *testing.T) {
		l := activeListing(t, carrier)

		_, err := placer.Place(kernel.NewUUID(), actor(t, kernel.Shipper), l, true, details(t, 50, dims(t, 1, 1, 1)), now)

		require.ErrorIs(t, err, errs.ErrDuplicateRequest)
	})

	t.Run("should reject an overweight parcel", func(t *testing.T) {
		l := activeListing(t, carrier)

		_, err := placer.Place(kernel.NewUUID(), actor(t, kernel.Shipper), l, false, details(t, 10.5, dims(t, 1, 1, 1)), now)

		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})
}
