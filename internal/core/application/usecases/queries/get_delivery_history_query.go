// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read projections straight
// from the database; they never modify state.
package queries

import (
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrGetDeliveryHistoryQueryIsNotConstructed = errors.New(
	"GetDeliveryHistoryQuery must be created via NewGetDeliveryHistoryQuery constructor",
)

// GetDeliveryHistoryQuery retrieves the full audit ledger of one delivery,
// oldest entry first.
//
// Example:
//
//	query, err := NewGetDeliveryHistoryQuery(deliveryID)
//	if err != nil {
//	    return err
//	}
//	entries, err := handler.Handle(ctx, query)
//	for _, e := range entries {
//	    fmt.Printf("%s: %s -> %s\n", e.OccurredAt, e.FromStatus, e.ToStatus)
//	}
type GetDeliveryHistoryQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryHistoryQuery creates a query for a delivery's ledger.
func NewGetDeliveryHistoryQuery(deliveryID kernel.UUID) (GetDeliveryHistoryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryHistoryQuery{}, err
	}

	return GetDeliveryHistoryQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryHistoryQueryIsNotConstructed)
}

// DeliveryID returns the delivery whose ledger is requested.
func (q GetDeliveryHistoryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// GetDeliveryHistoryQueryResponse is one ledger entry as presented to
// operators: statuses and the event kind are rendered as their display
// strings.
type GetDeliveryHistoryQueryResponse struct {
	ID                kernel.UUID
	Kind              string
	OccurredAt        time.Time
	FromStatus        string
	ToStatus          string
	CourierID         *kernel.UUID
	PreviousCourierID *kernel.UUID
	ActorID           *kernel.UUID
	Note              string
}
