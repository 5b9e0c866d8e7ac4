package services

import (
	"math"

	"tracksaidas/internal/core/domain/model/kernel"
)

// Stop is one candidate stop for route planning: a delivery identifier plus
// its geocoded destination, when one was captured. Stops without coordinates
// cannot be geometrically placed; the planner keeps them but never reorders
// them among the coordinate-bearing stops.
type Stop struct {
	DeliveryID kernel.UUID
	Point      *kernel.GeoPoint
}

// RouteStats summarizes a planned route: total great-circle distance between
// consecutive coordinate-bearing stops and a service-time estimate.
type RouteStats struct {
	DistanceKm       float64
	EstimatedMinutes int
}

// RoutePlanner is a domain service that orders a courier's stops and
// estimates route cost. It is pure: it never touches persistence and is safe
// for concurrent use.
//
// Key responsibilities:
//   - Ordering stops with a greedy nearest-neighbor heuristic
//   - Computing distance and time estimates for an ordered route
//
// Business rules:
//   - Ordering is deterministic: distance ties break by original position
//   - Stops without coordinates are appended after the optimized ones,
//     keeping their original relative order
//   - Estimates assume 2 minutes of service per stop and 30 km/h travel
type RoutePlanner struct{}

// NewRoutePlanner creates a new RoutePlanner instance.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

const (
	serviceMinutesPerStop = 2.0
	averageSpeedKmPerHour = 30.0
)

// Optimize reorders stops with a greedy nearest-neighbor heuristic.
//
// The route anchors at the first coordinate-bearing stop in the current
// order, then repeatedly visits the unvisited stop with minimum great-circle
// distance from the current position, breaking ties by original index so the
// result is deterministic. Stops lacking coordinates are appended at the end
// in their original relative order.
//
// Parameters:
//   - stops: The candidate stops in their current order
//
// Returns:
//   - A full permutation of the input; empty input yields an empty route
//   - error when a stop carries an improperly constructed point
func (p RoutePlanner) Optimize(stops []Stop) ([]Stop, error) {
	located := make([]Stop, 0, len(stops))
	unlocated := make([]Stop, 0)
	for _, s := range stops {
		if s.Point != nil {
			if err := s.Point.Validate(); err != nil {
				return nil, err
			}
			located = append(located, s)
		} else {
			unlocated = append(unlocated, s)
		}
	}

	ordered := make([]Stop, 0, len(stops))
	if len(located) > 0 {
		visited := make([]bool, len(located))

		// Anchor at the first located stop in the caller's order.
		current := 0
		visited[0] = true
		ordered = append(ordered, located[0])

		for len(ordered) < len(located) {
			next := -1
			bestDistance := math.MaxFloat64
			for i, s := range located {
				if visited[i] {
					continue
				}
				d, err := located[current].Point.DistanceKm(*s.Point)
				if err != nil {
					return nil, err
				}
				if d < bestDistance {
					bestDistance = d
					next = i
				}
			}

			visited[next] = true
			ordered = append(ordered, located[next])
			current = next
		}
	}

	return append(ordered, unlocated...), nil
}

// ComputeStats estimates the cost of driving the given ordered stops.
//
// Distance sums great-circle legs between consecutive coordinate-bearing
// stops; stops without coordinates are skipped entirely, never counted as
// zero-length legs. The time estimate adds a fixed per-stop service time to
// the travel time at average speed:
//
//	estimatedMinutes = round(2*stopCount + distanceKm/30*60)
//
// With fewer than two coordinate-bearing stops the distance is zero.
func (p RoutePlanner) ComputeStats(stops []Stop) (RouteStats, error) {
	located := make([]Stop, 0, len(stops))
	for _, s := range stops {
		if s.Point != nil {
			located = append(located, s)
		}
	}

	var distanceKm float64
	for i := 1; i < len(located); i++ {
		d, err := located[i-1].Point.DistanceKm(*located[i].Point)
		if err != nil {
			return RouteStats{}, err
		}
		distanceKm += d
	}

	minutes := serviceMinutesPerStop*float64(len(located)) +
		distanceKm/averageSpeedKmPerHour*60

	return RouteStats{
		DistanceKm:       distanceKm,
		EstimatedMinutes: int(math.Round(minutes)),
	}, nil
}
