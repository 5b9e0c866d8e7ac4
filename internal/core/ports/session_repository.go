package ports

import (
	"context"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for route sessions.
type SessionRepository interface {
	// Add persists a new session. Fails with Conflict when the courier
	// already has an active session for the same operating day.
	Add(ctx context.Context, aggregate *session.RouteSession) error

	// Update persists changes to an existing session using the aggregate's
	// version for optimistic concurrency.
	Update(ctx context.Context, aggregate *session.RouteSession) error

	// Get retrieves a session by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*session.RouteSession, error)

	// GetActiveForCourier retrieves the courier's active session for an
	// operating day, or NotFound.
	GetActiveForCourier(ctx context.Context, courierID kernel.UUID, date time.Time) (*session.RouteSession, error)

	// GetAllActiveBefore retrieves active sessions whose operating day ended
	// before the cutoff. Used by reconciliation to expire stale sessions.
	GetAllActiveBefore(ctx context.Context, cutoff time.Time) ([]*session.RouteSession, error)

	// ReconcileFinished closes any session observed with finishedAt set but
	// a non-terminal status, returning how many rows were corrected. Such
	// rows are a data-consistency violation; the sweep is idempotent.
	ReconcileFinished(ctx context.Context) (int64, error)
}
