package eventhandlers_test

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

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
