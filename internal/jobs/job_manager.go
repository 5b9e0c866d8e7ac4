package jobs

import (
	"fmt"
	"log/slog"

	"tracksaidas/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionReconciliationJob *SessionReconciliationJob
	closureGenerationJob     *ClosureGenerationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	reconcileSessionsHandler commands.ReconcileSessionsCommandHandler,
	generateClosuresHandler commands.GenerateClosuresCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sessionReconciliationJob: NewSessionReconciliationJob(reconcileSessionsHandler, logger),
		closureGenerationJob:     NewClosureGenerationJob(generateClosuresHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start session reconciliation job: %w", err)
	}

	if err := jm.closureGenerationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionReconciliationJob.Stop()
		return fmt.Errorf("failed to start closure generation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sessionReconciliationJob.Stop()
	jm.closureGenerationJob.Stop()
}
