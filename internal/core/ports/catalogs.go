package ports

import (
	"context"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
)

// PricingCatalog looks up the price billed for one delivery of a service
// kind within a base/sub-base scope. It is an external billing-rules
// collaborator: the core consumes prices, it never maintains them.
type PricingCatalog interface {
	// Price returns the unit amount for the service kind in the given
	// scope. Fails with NotFound when no price row covers the scope.
	Price(ctx context.Context, kind delivery.ServiceKind, base, subBase string) (kernel.Money, error)
}

// AbsenceReason is one row of the absence-reason catalog.
type AbsenceReason struct {
	ID          kernel.UUID
	Description string
	Active      bool
}

// AbsenceReasonCatalog validates absence reasons against the catalog
// maintained outside the core.
type AbsenceReasonCatalog interface {
	// Get retrieves a reason by ID, or NotFound.
	Get(ctx context.Context, id kernel.UUID) (*AbsenceReason, error)

	// ListActive retrieves every active reason.
	ListActive(ctx context.Context) ([]*AbsenceReason, error)
}
