package jobs

import (
	"context"
	"log/slog"
	"time"

	"tracksaidas/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ClosureGenerationJob generates the previous week's billing closures.
// Runs Monday at 02:00; the generation command skips subjects that already
// have a closure for the period, so a rerun after a failed night is safe.
type ClosureGenerationJob struct {
	handler commands.GenerateClosuresCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewClosureGenerationJob creates the weekly closure generation job.
func NewClosureGenerationJob(
	handler commands.GenerateClosuresCommandHandler,
	logger *slog.Logger,
) *ClosureGenerationJob {
	return &ClosureGenerationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "closure_generation_job"),
	}
}

// Start schedules closure generation for Monday 02:00 over the week that just
// ended (previous Monday through Sunday).
func (j *ClosureGenerationJob) Start() error {
	_, err := j.cron.AddFunc("0 0 2 * * MON", func() {
		ctx := context.Background()

		periodStart, periodEnd := previousWeek(time.Now().UTC())
		cmd, cmdErr := commands.NewGenerateClosuresCommand(periodStart, periodEnd)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Closure generation job misconfigured", "error", cmdErr)
			return
		}

		generated, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Closure generation job failed", "error", handleErr)
			return
		}

		j.logger.InfoContext(ctx, "Closure generation finished",
			"generated", generated,
			"periodStart", periodStart.Format("2006-01-02"),
			"periodEnd", periodEnd.Format("2006-01-02"))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Closure generation job started (running Monday 02:00)")
	return nil
}

// Stop stops the closure generation job.
func (j *ClosureGenerationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Closure generation job stopped")
}

// previousWeek returns the Monday and Sunday of the week before now.
func previousWeek(now time.Time) (time.Time, time.Time) {
	today := now.Truncate(24 * time.Hour)

	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	thisMonday := today.AddDate(0, 0, -daysSinceMonday)

	periodStart := thisMonday.AddDate(0, 0, -7)
	periodEnd := thisMonday.AddDate(0, 0, -1)
	return periodStart, periodEnd
}
