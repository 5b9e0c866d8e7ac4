package ports

import (
	"context"

	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
)

// HistoryRepository defines the persistence contract for the append-only
// delivery audit ledger. The ledger supports only appends and ordered reads;
// there is deliberately no update or delete.
type HistoryRepository interface {
	// Add appends a ledger entry. Fails with NotFound when the referenced
	// delivery does not exist.
	Add(ctx context.Context, entry *history.Entry) error

	// ListFor returns every entry for a delivery ordered by occurrence time
	// ascending, ties broken by insertion order.
	ListFor(ctx context.Context, deliveryID kernel.UUID) ([]*history.Entry, error)

	// HasEntryOfKind reports whether the delivery already has an entry of
	// the given kind. Used by the backfill to stay idempotent.
	HasEntryOfKind(ctx context.Context, deliveryID kernel.UUID, kind history.EventKind) (bool, error)
}
