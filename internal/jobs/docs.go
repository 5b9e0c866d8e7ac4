// Package jobs provides scheduled background tasks for the parcel tracking
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. SessionReconciliationJob - Runs hourly to fix route sessions left in an
// inconsistent state and to expire sessions abandoned before the current day
// 2. ClosureGenerationJob - Runs Monday at 02:00 to generate the previous
// week's billing closures for couriers and bases
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileSessionsHandler, generateClosuresHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Both jobs are idempotent sweeps; a failed run is retried implicitly on
// the next tick
// - Closure generation treats an already-generated period as a no-op
// - Failed job starts will stop any already running jobs
package jobs
