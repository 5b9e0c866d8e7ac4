package jobs

import (
	"context"
	"log/slog"
	"time"

	"tracksaidas/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SessionReconciliationJob sweeps route sessions left in an inconsistent or
// stale state. Runs hourly: sessions with a finish timestamp but an Active
// status are corrected, and sessions still Active past the cutoff are expired.
type SessionReconciliationJob struct {
	handler commands.ReconcileSessionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSessionReconciliationJob creates the hourly session sweep job.
func NewSessionReconciliationJob(
	handler commands.ReconcileSessionsCommandHandler,
	logger *slog.Logger,
) *SessionReconciliationJob {
	return &SessionReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "session_reconciliation_job"),
	}
}

// Start schedules the sweep at the top of every hour. Sessions started before
// the current operating day are considered abandoned.
func (j *SessionReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().Truncate(24 * time.Hour)
		cmd, cmdErr := commands.NewReconcileSessionsCommand(cutoff)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Session reconciliation job misconfigured", "error", cmdErr)
			return
		}

		corrected, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Session reconciliation job failed", "error", handleErr)
			return
		}
		if corrected > 0 {
			j.logger.InfoContext(ctx, "Session reconciliation corrected sessions", "count", corrected)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session reconciliation job started (running hourly)")
	return nil
}

// Stop stops the session reconciliation job.
func (j *SessionReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session reconciliation job stopped")
}
