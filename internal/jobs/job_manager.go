package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs []job
}

// NewJobManager creates a job manager. Nil jobs are skipped, which lets the
// composition root leave out jobs whose adapters are disabled.
func NewJobManager(outboxRelayJob *OutboxRelayJob) *JobManager {
	jm := &JobManager{}
	if outboxRelayJob != nil {
		jm.jobs = append(jm.jobs, outboxRelayJob)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, j := range jm.jobs {
		j.Stop()
	}
}
