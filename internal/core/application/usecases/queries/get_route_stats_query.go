package queries

import (
	"errors"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrGetRouteStatsQueryIsNotConstructed = errors.New(
	"GetRouteStatsQuery must be created via NewGetRouteStatsQuery constructor",
)

// GetRouteStatsQuery retrieves progress figures for a route session: how far
// the courier still has to drive and a service-time estimate for what
// remains.
type GetRouteStatsQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRouteStatsQuery creates a query for a session's route stats.
func NewGetRouteStatsQuery(sessionID kernel.UUID) (GetRouteStatsQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetRouteStatsQuery{}, err
	}

	return GetRouteStatsQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteStatsQueryIsNotConstructed)
}

// SessionID returns the session being queried.
func (q GetRouteStatsQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// GetRouteStatsQueryResponse summarizes the remaining work of a session.
// Distance covers only geocoded stops; stops without coordinates still count
// toward the stop totals and the service-time estimate.
type GetRouteStatsQueryResponse struct {
	Status           string
	TotalStops       int
	VisitedStops     int
	RemainingStops   int
	DistanceKm       float64
	EstimatedMinutes int
}
