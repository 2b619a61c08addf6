package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/core/application/eventhandlers"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/history"
	"freight/internal/core/ports"
	"freight/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, eventhandlers.NewDispatcher(logger)),
		registry:   registry,
		logger:     logger,
	}
}

func (c *CompositionRoot) listingUoWFactory() commands.ListingUoWFactory {
	return FuncListingUoWFactory(func() commands.ListingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) tripUoWFactory() commands.TripUoWFactory {
	return FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateReportPositionCommandHandler() commands.ReportPositionCommandHandler {
	return commands.NewReportPositionCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateGetHistoryQueryHandler() (queries.GetHistoryQueryHandler, error) {
	loc, err := time.LoadLocation(c.cfg.HistoryTimezone)
	if err != nil {
		return queries.GetHistoryQueryHandler{}, fmt.Errorf("load history timezone: %w", err)
	}
	aggregator, err := history.NewAggregator(loc)
	if err != nil {
		return queries.GetHistoryQueryHandler{}, err
	}
	return queries.NewGetHistoryQueryHandler(c.gormDB, aggregator), nil
}

func (c *CompositionRoot) CreateHandlers() (httpadapter.Handlers, error) {
	getHistory, err := c.CreateGetHistoryQueryHandler()
	if err != nil {
		return httpadapter.Handlers{}, err
	}

	return httpadapter.Handlers{
		CreateListing:       commands.NewCreateListingCommandHandler(c.listingUoWFactory()),
		UpdateListing:       commands.NewUpdateListingCommandHandler(c.listingUoWFactory()),
		ChangeListingStatus: commands.NewChangeListingStatusCommandHandler(c.listingUoWFactory()),
		CreateRequest:       commands.NewCreateRequestCommandHandler(c.requestUoWFactory()),
		TransitionRequest:   commands.NewTransitionRequestCommandHandler(c.requestUoWFactory()),
		RemoveRequest:       commands.NewRemoveRequestCommandHandler(c.requestUoWFactory()),
		ChangeTripStatus:    commands.NewChangeTripStatusCommandHandler(c.tripUoWFactory()),
		ReportPosition:      c.CreateReportPositionCommandHandler(),
		ReportIncident:      commands.NewReportIncidentCommandHandler(c.tripUoWFactory()),

		GetListing:       queries.NewGetListingQueryHandler(c.gormDB),
		GetRequest:       queries.NewGetRequestQueryHandler(c.gormDB),
		GetTrack:         queries.NewGetTrackQueryHandler(c.gormDB),
		GetTripByListing: queries.NewGetTripByListingQueryHandler(c.gormDB),
		GetHistory:       getHistory,
	}, nil
}

// CreateRouter wires the HTTP stack. redisClient may be nil, which disables
// idempotency keys.
func (c *CompositionRoot) CreateRouter(redisClient *redis.Client) (*echo.Echo, error) {
	handlers, err := c.CreateHandlers()
	if err != nil {
		return nil, err
	}
	doc, err := httpadapter.LoadOpenAPI()
	if err != nil {
		return nil, err
	}

	var idempotency echo.MiddlewareFunc
	if redisClient != nil {
		idempotency = httpadapter.Idempotency(
			httpadapter.NewRedisIdempotencyStore(redisClient),
			httpadapter.IdempotencyConfig{LockTTL: c.cfg.IdempotencyLockTTL, ResultTTL: c.cfg.IdempotencyTTL},
			c.logger,
		)
	}

	return httpadapter.NewRouter(httpadapter.RouterConfig{
		Server:        httpadapter.NewServer(handlers, c.logger),
		Authenticator: httpadapter.NewAuthenticator(c.cfg.JWTSigningKey),
		OpenAPI:       doc,
		Idempotency:   idempotency,
		Metrics:       httpadapter.NewMetrics(c.registry),
		Gatherer:      c.registry,
		Logger:        c.logger,
	})
}

// CreateJobManager schedules the outbox relay. publisher may be nil, in which
// case events stay in the outbox until a broker is configured.
func (c *CompositionRoot) CreateJobManager(publisher ports.MessagePublisher) *jobs.JobManager {
	if publisher == nil {
		c.logger.Warn("no event broker configured, outbox relay disabled")
		return jobs.NewJobManager(nil)
	}

	relay := outboxrepo.NewRelay(c.gormDB, publisher, c.cfg.OutboxBatchSize)
	return jobs.NewJobManager(jobs.NewOutboxRelayJob(relay, c.cfg.OutboxSchedule, c.registry, c.logger))
}

type FuncListingUoWFactory func() commands.ListingUoW

func (f FuncListingUoWFactory) Create() commands.ListingUoW {
	return f()
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}
