package queries

import (
	"errors"
	"strings"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var (
	ErrGetPendingDeliveriesQueryIsNotConstructed = errors.New(
		"GetPendingDeliveriesQuery must be created via NewGetPendingDeliveriesQuery constructor",
	)
	ErrQueryBaseIsRequired = errors.New("base is required")
	ErrQueryDateIsRequired = errors.New("date is required")
)

// GetPendingDeliveriesQuery retrieves the parcels of a base still awaiting a
// courier on an operating day. This is the dispatcher's worklist view.
type GetPendingDeliveriesQuery struct {
	base string
	date time.Time

	guard guard.ConstructorGuard
}

// NewGetPendingDeliveriesQuery creates a query for a base's pending parcels.
func NewGetPendingDeliveriesQuery(base string, date time.Time) (GetPendingDeliveriesQuery, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return GetPendingDeliveriesQuery{}, ErrQueryBaseIsRequired
	}
	if date.IsZero() {
		return GetPendingDeliveriesQuery{}, ErrQueryDateIsRequired
	}

	return GetPendingDeliveriesQuery{
		base:  base,
		date:  date.Truncate(24 * time.Hour),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingDeliveriesQueryIsNotConstructed)
}

// Base returns the distribution base being queried.
func (q GetPendingDeliveriesQuery) Base() string {
	return q.base
}

// Date returns the operating day being queried.
func (q GetPendingDeliveriesQuery) Date() time.Time {
	return q.date
}

// GetPendingDeliveriesQueryResponse is one pending parcel on the
// dispatcher's worklist. HasAddress tells the dispatcher whether the parcel
// can participate in route optimization yet.
type GetPendingDeliveriesQueryResponse struct {
	ID               kernel.UUID
	Code             string
	ServiceKind      string
	SubBase          string
	FormattedAddress string
	HasAddress       bool
}
