package ports

import (
	"context"
	"time"

	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/kernel"
)

// ClosureRepository defines the persistence contract for closure records.
type ClosureRepository interface {
	// Add persists a new closure with its line items. Fails with Conflict
	// when a closure already exists for the same (scope, subject, period)
	// tuple; the store's uniqueness constraint is the final arbiter between
	// concurrent generators.
	Add(ctx context.Context, aggregate *closure.Closure) error

	// Update persists status changes of an existing closure.
	Update(ctx context.Context, aggregate *closure.Closure) error

	// Get retrieves a closure with its line items by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*closure.Closure, error)

	// Exists reports whether a closure exists for the exact tuple.
	Exists(ctx context.Context, scope closure.Scope, subject string, periodStart, periodEnd time.Time) (bool, error)
}
