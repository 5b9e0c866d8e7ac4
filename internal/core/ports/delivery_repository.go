package ports

import (
	"context"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage. Fails with Conflict
	// when an active (non-cancelled) delivery already carries the same
	// shipment reference.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate using the
	// aggregate's version for optimistic concurrency: a concurrent writer
	// that already bumped the row makes Update fail with Conflict.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetAllPending retrieves deliveries awaiting a courier for a base and
	// operating day, ordered by creation.
	GetAllPending(ctx context.Context, base string, date time.Time) ([]*delivery.Delivery, error)

	// GetAllForCourierOnDate retrieves every delivery a courier is or was
	// responsible for on an operating day. Used for route construction.
	GetAllForCourierOnDate(ctx context.Context, courierID kernel.UUID, date time.Time) ([]*delivery.Delivery, error)

	// GetAllWithoutHistory retrieves deliveries that have no ledger entries
	// at all. Used by the one-time history backfill.
	GetAllWithoutHistory(ctx context.Context, limit int) ([]*delivery.Delivery, error)

	// GetAllDeliveredWithoutDeliveredEvent retrieves delivered parcels whose
	// ledger is missing the Delivered entry. Used by the one-time history
	// backfill.
	GetAllDeliveredWithoutDeliveredEvent(ctx context.Context, limit int) ([]*delivery.Delivery, error)

	// ListSubjects returns the distinct courier IDs (as strings) and base
	// names with terminal deliveries inside the period. Used by closure
	// generation to enumerate who needs a closure.
	ListSubjects(ctx context.Context, periodStart, periodEnd time.Time) (courierIDs []string, bases []string, err error)
}
