package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Add(ctx context.Context, l *listing.Listing) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockListingRepository) Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.TransportRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.TransportRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.TransportRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.TransportRequest), args.Error(1)
}

func (m *MockRequestRepository) Delete(ctx context.Context, r *request.TransportRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRequestRepository) HasOpen(ctx context.Context, requesterID, listingID kernel.UUID) (bool, error) {
	args := m.Called(ctx, requesterID, listingID)
	return args.Bool(0), args.Error(1)
}

type MockTripRepository struct{ mock.Mock }

func (m *MockTripRepository) Add(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTripRepository) Update(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTripRepository) AppendPositions(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) GetByListing(ctx context.Context, listingID kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) Delete(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) ListingRepository() ports.ListingRepository {
	return m.Called().Get(0).(ports.ListingRepository)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	return m.Called().Get(0).(ports.RequestRepository)
}

func (m *MockUoW) TripRepository() ports.TripRepository {
	return m.Called().Get(0).(ports.TripRepository)
}

type MockListingUoWFactory struct{ mock.Mock }

func (m *MockListingUoWFactory) Create() commands.ListingUoW {
	return m.Called().Get(0).(commands.ListingUoW)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	return m.Called().Get(0).(commands.RequestUoW)
}

type MockTripUoWFactory struct{ mock.Mock }

func (m *MockTripUoWFactory) Create() commands.TripUoW {
	return m.Called().Get(0).(commands.TripUoW)
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newPlace(t *testing.T, name string) kernel.Place {
	t.Helper()
	p, err := kernel.NewPlace(name, nil)
	require.NoError(t, err)
	return p
}

func listingParams(t *testing.T) listing.Params {
	t.Helper()
	maxWeight := 100.0
	maxDims, err := kernel.NewDimensions(3, 2, 2)
	require.NoError(t, err)
	return listing.Params{
		Origin:        newPlace(t, "Casablanca"),
		Destination:   newPlace(t, "Rabat"),
		Stops:         []string{"Mohammedia"},
		DepartureAt:   time.Now().Add(48 * time.Hour).UTC(),
		MaxWeight:     &maxWeight,
		MaxDimensions: &maxDims,
		Price:         300,
	}
}

func newListing(t *testing.T, owner kernel.Actor) *listing.Listing {
	t.Helper()
	l, err := listing.NewListing(kernel.NewUUID(), owner, listingParams(t), time.Now().UTC())
	require.NoError(t, err)
	l.ClearDomainEvents()
	return l
}

func requestDetails(t *testing.T, weight float64) request.Details {
	t.Helper()
	d, err := kernel.NewDimensions(1, 1, 1)
	require.NoError(t, err)
	parcel, err := request.NewParcel("furniture", d, weight, "home", 500, true)
	require.NoError(t, err)
	return request.Details{
		Parcel:   parcel,
		Pickup:   newPlace(t, "Casablanca"),
		Delivery: newPlace(t, "Rabat"),
	}
}

func newRequest(t *testing.T, requester kernel.Actor, l *listing.Listing) *request.TransportRequest {
	t.Helper()
	r, err := request.NewTransportRequest(kernel.NewUUID(), requester, l.ID(), requestDetails(t, 20), time.Now().UTC())
	require.NoError(t, err)
	r.ClearDomainEvents()
	return r
}

func newTrip(t *testing.T, carrier kernel.Actor) *trip.Trip {
	t.Helper()
	tr, err := trip.NewTrip(kernel.NewUUID(), kernel.NewUUID(), carrier.ID(), time.Now().Add(time.Hour).UTC(), 300)
	require.NoError(t, err)
	return tr
}
