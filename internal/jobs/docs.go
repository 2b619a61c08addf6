// Package jobs provides scheduled background tasks for the freight engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every two seconds to publish committed domain events
// from the outbox table to Kafka
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	relayJob := jobs.NewOutboxRelayJob(relay, jobs.DefaultOutboxRelaySchedule, prometheus.DefaultRegisterer, logger)
//	jobManager := jobs.NewJobManager(relayJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed batch stays in the outbox and is retried on the next tick. Runs that
// would overlap a slow relay are skipped.
package jobs
