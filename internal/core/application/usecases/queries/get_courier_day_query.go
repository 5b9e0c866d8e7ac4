package queries

import (
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrGetCourierDayQueryIsNotConstructed = errors.New(
	"GetCourierDayQuery must be created via NewGetCourierDayQuery constructor",
)

// GetCourierDayQuery retrieves every parcel a courier is or was responsible
// for on an operating day, terminal outcomes included. This backs the
// courier's day view in the app.
type GetCourierDayQuery struct {
	courierID kernel.UUID
	date      time.Time

	guard guard.ConstructorGuard
}

// NewGetCourierDayQuery creates a query for a courier's operating day.
func NewGetCourierDayQuery(courierID kernel.UUID, date time.Time) (GetCourierDayQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierDayQuery{}, err
	}
	if date.IsZero() {
		return GetCourierDayQuery{}, ErrQueryDateIsRequired
	}

	return GetCourierDayQuery{
		courierID: courierID,
		date:      date.Truncate(24 * time.Hour),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierDayQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierDayQueryIsNotConstructed)
}

// CourierID returns the courier being queried.
func (q GetCourierDayQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Date returns the operating day being queried.
func (q GetCourierDayQuery) Date() time.Time {
	return q.date
}

// GetCourierDayQueryResponse is one parcel in the courier's day view.
type GetCourierDayQueryResponse struct {
	ID               kernel.UUID
	Code             string
	ServiceKind      string
	Status           string
	FormattedAddress string
	DeliveredAt      *time.Time
}
