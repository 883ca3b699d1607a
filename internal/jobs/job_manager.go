package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	staleAssignmentJob *StaleAssignmentJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	finder StaleAssignmentFinder,
	transitioner AssignmentTransitioner,
	staleConfig StaleAssignmentConfig,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleAssignmentJob: NewStaleAssignmentJob(finder, transitioner, staleConfig, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale assignment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleAssignmentJob.Stop()
}
