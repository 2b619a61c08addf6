package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/core/application/eventhandlers"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/ports"
	"freight/internal/pkg/ddd"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work, the in-process
// event handlers and the outbox against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, eventhandlers.NewDispatcher(logger))
}

// SetupTest truncates every table so tests do not see each other's rows.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE listings, transport_requests, trips, trip_positions,
		trip_incidents, outbox_messages`).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) actor(role kernel.Role) kernel.Actor {
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return a
}

func (suite *UnitOfWorkIntegrationTestSuite) newListing(owner kernel.Actor) *listing.Listing {
	origin, err := kernel.NewPlace("Casablanca", nil)
	suite.Require().NoError(err)
	destination, err := kernel.NewPlace("Rabat", nil)
	suite.Require().NoError(err)
	maxWeight := 200.0
	dims, err := kernel.NewDimensions(2, 2, 2)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	l, err := listing.NewListing(kernel.NewUUID(), owner, listing.Params{
		Origin:        origin,
		Destination:   destination,
		DepartureAt:   now.Add(24 * time.Hour),
		MaxWeight:     &maxWeight,
		MaxDimensions: &dims,
		Price:         250,
	}, now)
	suite.Require().NoError(err)
	return l
}

func (suite *UnitOfWorkIntegrationTestSuite) newRequest(requester kernel.Actor, l *listing.Listing) *request.TransportRequest {
	dims, err := kernel.NewDimensions(1, 1, 1)
	suite.Require().NoError(err)
	parcel, err := request.NewParcel("boxes", dims, 20, "household", 0, false)
	suite.Require().NoError(err)
	r, err := request.NewTransportRequest(kernel.NewUUID(), requester, l.ID(), request.Details{
		Parcel:   parcel,
		Pickup:   l.Origin(),
		Delivery: l.Destination(),
	}, time.Now().UTC())
	suite.Require().NoError(err)
	return r
}

// publish adds a listing through its own unit of work and commits it.
func (suite *UnitOfWorkIntegrationTestSuite) publish(owner kernel.Actor) *listing.Listing {
	ctx := context.Background()
	l := suite.newListing(owner)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ListingRepository().Add(ctx, l))
	suite.Require().NoError(uow.Commit(ctx))
	return l
}

func (suite *UnitOfWorkIntegrationTestSuite) outboxTypes() []string {
	var types []string
	err := suite.db.Model(&outboxrepo.MessageDTO{}).Order("created_at, id").Pluck("type", &types).Error
	suite.Require().NoError(err)
	return types
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ListingRepository())
	suite.NotNil(uow1.RequestRepository())
	suite.NotNil(uow1.TripRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishedListing_PlansTripAndWritesOutbox() {
	ctx := context.Background()
	owner := suite.actor(kernel.Carrier)

	l := suite.publish(owner)

	t, err := suite.factory.Create().TripRepository().GetByListing(ctx, l.ID())
	suite.Require().NoError(err)
	suite.True(t.CarrierID().IsEqual(owner.ID()))
	suite.Equal(trip.Planned, t.Status())
	suite.InDelta(250.0, t.Cost(), 1e-9)
	suite.Contains(suite.outboxTypes(), listing.PublishedEventName)
	suite.Empty(l.GetDomainEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_CancelledListing_RemovesTrip() {
	ctx := context.Background()
	owner := suite.actor(kernel.Carrier)
	l := suite.publish(owner)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.ListingRepository().Get(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Cancel(owner, time.Now().UTC()))
	suite.Require().NoError(uow.ListingRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	_, err = suite.factory.Create().TripRepository().GetByListing(ctx, l.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	stored, err := suite.factory.Create().ListingRepository().Get(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Equal(listing.Cancelled, stored.Status())
	suite.Contains(suite.outboxTypes(), listing.CancelledEventName)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_AcceptedRequest_AttachedToTrip() {
	ctx := context.Background()
	owner := suite.actor(kernel.Carrier)
	shipper := suite.actor(kernel.Shipper)
	l := suite.publish(owner)
	r := suite.newRequest(shipper, l)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RequestRepository().Add(ctx, r))
	suite.Require().NoError(r.Transition(owner, owner.ID(), request.Accepted, nil, nil, time.Now().UTC()))
	suite.Require().NoError(uow.RequestRepository().Update(ctx, r))
	suite.Require().NoError(uow.Commit(ctx))

	t, err := suite.factory.Create().TripRepository().GetByListing(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Require().Len(t.RequestIDs(), 1)
	suite.True(t.RequestIDs()[0].IsEqual(r.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChangesAndEvents() {
	ctx := context.Background()
	l := suite.newListing(suite.actor(kernel.Carrier))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ListingRepository().Add(ctx, l))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().ListingRepository().Get(ctx, l.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(suite.outboxTypes())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_HandlerFailure_KeepsTransactionForRollback() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := eventhandlers.NewDispatcher(logger)
	failure := errors.New("handler failed")
	dispatcher.Register(listing.PublishedEventName, func(context.Context, ports.UnitOfWork, ddd.DomainEvent) error {
		return failure
	})
	factory := postgres_adapter.NewGormUnitOfWorkFactory(suite.db, dispatcher)
	l := suite.newListing(suite.actor(kernel.Carrier))

	uow := factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ListingRepository().Add(ctx, l))
	err := uow.Commit(ctx)
	suite.Require().ErrorIs(err, failure)
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = factory.Create().ListingRepository().Get(ctx, l.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, msgs ...ports.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRelay_PublishesCommittedMessagesOnce() {
	ctx := context.Background()
	suite.publish(suite.actor(kernel.Carrier))

	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, mock.MatchedBy(func(msgs []ports.Message) bool {
		return len(msgs) > 0 && msgs[0].Type == listing.PublishedEventName
	})).Return(nil).Once()
	relay := outboxrepo.NewRelay(suite.db, publisher, 10)

	published, err := relay.RelayBatch(ctx)
	suite.Require().NoError(err)
	suite.Positive(published)

	published, err = relay.RelayBatch(ctx)
	suite.Require().NoError(err)
	suite.Zero(published)
	publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRelay_PublishFailure_LeavesMessagesPending() {
	ctx := context.Background()
	suite.publish(suite.actor(kernel.Carrier))

	brokerDown := errors.New("broker down")
	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(brokerDown).Once()
	relay := outboxrepo.NewRelay(suite.db, publisher, 10)

	published, err := relay.RelayBatch(ctx)
	suite.Require().ErrorIs(err, brokerDown)
	suite.Zero(published)

	var pending []outboxrepo.MessageDTO
	suite.Require().NoError(suite.db.Where("processed_at IS NULL").Find(&pending).Error)
	suite.Require().NotEmpty(pending)
	suite.Equal(1, pending[0].Attempts)
	suite.Equal("broker down", pending[0].LastError)
}
