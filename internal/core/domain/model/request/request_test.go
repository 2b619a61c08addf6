package request_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func mustActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func validDetails(t *testing.T) request.Details {
	t.Helper()
	dims, err := kernel.NewDimensions(40, 30, 20)
	require.NoError(t, err)
	parcel, err := request.NewParcel("books", dims, 12, "documents", 200, true)
	require.NoError(t, err)
	pickup, err := kernel.NewPlace("Casablanca", nil)
	require.NoError(t, err)
	delivery, err := kernel.NewPlace("Tangier", nil)
	require.NoError(t, err)
	contact, err := request.NewContact("Amina", "+212600000000")
	require.NoError(t, err)

	return request.Details{
		Parcel:          parcel,
		Pickup:          pickup,
		Delivery:        delivery,
		PickupContact:   contact,
		DeliveryContact: contact,
	}
}

func newPending(t *testing.T) *request.TransportRequest {
	t.Helper()
	r, err := request.NewTransportRequest(kernel.NewUUID(), mustActor(t, kernel.Shipper), kernel.NewUUID(), validDetails(t), now)
	require.NoError(t, err)
	return r
}

func TestNewTransportRequest(t *testing.T) {
	t.Run("should create a pending request", func(t *testing.T) {
		shipper := mustActor(t, kernel.Shipper)
		listingID := kernel.NewUUID()

		r, err := request.NewTransportRequest(kernel.NewUUID(), shipper, listingID, validDetails(t), now)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, request.Pending, r.Status())
		assert.True(t, r.RequesterID().IsEqual(shipper.ID()))
		assert.True(t, r.ListingID().IsEqual(listingID))
		assert.Nil(t, r.RespondedAt())
		require.Len(t, r.GetDomainEvents(), 1)
		assert.Equal(t, request.PlacedEventName, r.GetDomainEvents()[0].EventName())
	})

	t.Run("should reject carriers and admins", func(t *testing.T) {
		for _, role := range []kernel.Role{kernel.Carrier, kernel.Admin} {
			_, err := request.NewTransportRequest(kernel.NewUUID(), mustActor(t, role), kernel.NewUUID(), validDetails(t), now)

			require.ErrorIs(t, err, errs.ErrForbiddenRole)
		}
	})

	t.Run("should reject missing details", func(t *testing.T) {
		_, err := request.NewTransportRequest(kernel.NewUUID(), mustActor(t, kernel.Shipper), kernel.NewUUID(), request.Details{}, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestTransportRequest_Transition(t *testing.T) {
	owner := mustActor(t, kernel.Carrier)

	t.Run("owner should accept a pending request", func(t *testing.T) {
		r := newPending(t)
		r.ClearDomainEvents()
		comment := "see you at the depot"
		at := now.Add(time.Hour)

		err := r.Transition(owner, owner.ID(), request.Accepted, &comment, nil, at)

		require.NoError(t, err)
		assert.Equal(t, request.Accepted, r.Status())
		require.NotNil(t, r.RespondedAt())
		assert.Equal(t, at, *r.RespondedAt())
		assert.Equal(t, comment, r.Comment())
		events := r.GetDomainEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(request.StatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "pending", changed.From)
		assert.Equal(t, "accepted", changed.To)
	})

	t.Run("should store a refusal reason only when refusing", func(t *testing.T) {
		reason := "too heavy"

		refused := newPending(t)
		require.NoError(t, refused.Transition(owner, owner.ID(), request.Refused, nil, &reason, now))
		assert.Equal(t, reason, refused.RefusalReason())

		accepted := newPending(t)
		require.NoError(t, accepted.Transition(owner, owner.ID(), request.Accepted, nil, &reason, now))
		assert.Empty(t, accepted.RefusalReason())
	})

	t.Run("pending to delivered should be an illegal transition naming both states", func(t *testing.T) {
		r := newPending(t)

		err := r.Transition(owner, owner.ID(), request.Delivered, nil, nil, now)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		var illegal *errs.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, "pending", illegal.From)
		assert.Equal(t, "delivered", illegal.To)
		assert.Equal(t, request.Pending, r.Status())
	})

	t.Run("delivered request should be in an invalid state", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Transition(owner, owner.ID(), request.Accepted, nil, nil, now))
		require.NoError(t, r.Transition(owner, owner.ID(), request.InProgress, nil, nil, now))
		require.NoError(t, r.Transition(owner, owner.ID(), request.Delivered, nil, nil, now))

		err := r.Transition(owner, owner.ID(), request.Accepted, nil, nil, now)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("stranger should be forbidden before any state check", func(t *testing.T) {
		r := newPending(t)

		err := r.Transition(mustActor(t, kernel.Carrier), owner.ID(), request.Delivered, nil, nil, now)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("admin should drive transitions on any listing", func(t *testing.T) {
		r := newPending(t)

		require.NoError(t, r.Transition(mustActor(t, kernel.Admin), owner.ID(), request.Refused, nil, nil, now))
	})
}

func TestTransportRequest_Withdraw(t *testing.T) {
	t.Run("requester should withdraw a pending request", func(t *testing.T) {
		shipper := mustActor(t, kernel.Shipper)
		r, err := request.NewTransportRequest(kernel.NewUUID(), shipper, kernel.NewUUID(), validDetails(t), now)
		require.NoError(t, err)

		require.NoError(t, r.Withdraw(shipper, now))
	})

	t.Run("other shippers should be forbidden", func(t *testing.T) {
		r := newPending(t)

		err := r.Withdraw(mustActor(t, kernel.Shipper), now)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("accepted request should not be withdrawn", func(t *testing.T) {
		owner := mustActor(t, kernel.Carrier)
		r := newPending(t)
		require.NoError(t, r.Transition(owner, owner.ID(), request.Accepted, nil, nil, now))

		err := r.Withdraw(mustActor(t, kernel.Admin), now)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}
