package ports

import (
	"context"
	"time"

	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/kernel"
)

// BillingRepository defines the persistence contract for billing items.
// Items are append-plus-flag: rows are added when work is billed and voided
// in place, never deleted.
type BillingRepository interface {
	// Add persists a new billing item.
	Add(ctx context.Context, item *closure.BillingItem) error

	// Update persists the cancelled flag of an existing item.
	Update(ctx context.Context, item *closure.BillingItem) error

	// GetForDelivery retrieves the billing item of a delivery, or NotFound
	// when the delivery was never billed.
	GetForDelivery(ctx context.Context, deliveryID kernel.UUID) (*closure.BillingItem, error)

	// GetAllForCourier retrieves a courier's items within a period, both
	// bounds inclusive.
	GetAllForCourier(ctx context.Context, courierID kernel.UUID, periodStart, periodEnd time.Time) ([]*closure.BillingItem, error)

	// GetAllForBase retrieves a base's items within a period, both bounds
	// inclusive.
	GetAllForBase(ctx context.Context, base string, periodStart, periodEnd time.Time) ([]*closure.BillingItem, error)
}
