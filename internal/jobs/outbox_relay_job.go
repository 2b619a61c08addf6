package jobs

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every two seconds.
const DefaultOutboxRelaySchedule = "*/2 * * * * *"

// maxBatchesPerRun caps the batches relayed in a single run.
const maxBatchesPerRun = 50

type outboxRelay interface {
	RelayBatch(ctx context.Context) (int, error)
}

// OutboxRelayJob publishes committed domain events from the outbox table.
type OutboxRelayJob struct {
	relay    outboxRelay
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	published prometheus.Counter
	failures  prometheus.Counter
}

// NewOutboxRelayJob creates the relay job. Metrics are registered on reg.
func NewOutboxRelayJob(relay outboxRelay, schedule string, reg prometheus.Registerer, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	factory := promauto.With(reg)

	return &OutboxRelayJob{
		relay:    relay,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
		published: factory.NewCounter(prometheus.CounterOpts{
			Name: "freight_outbox_messages_published_total",
			Help: "Outbox messages delivered to the event bus",
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "freight_outbox_relay_failures_total",
			Help: "Outbox relay batches that failed to publish",
		}),
	}
}

// Start schedules the job. Overlapping runs are skipped.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays batches until the outbox is empty, a batch fails or the
// per-run limit is reached. It returns the number of messages published.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	total := 0
	for range maxBatchesPerRun {
		n, err := j.relay.RelayBatch(ctx)
		total += n
		j.published.Add(float64(n))
		if err != nil {
			j.failures.Inc()
			j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
			return total
		}
		if n == 0 {
			return total
		}
	}
	return total
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
