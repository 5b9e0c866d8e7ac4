// Package sessionrepo provides data transfer objects and mapping functions for
// route session persistence.
package sessionrepo

import (
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/domain/model/session"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RouteSessionDTO represents the database structure for persisting route
// sessions. The stop order is a Postgres text array of delivery IDs: the
// session references deliveries by identifier only and never duplicates
// their state. The partial unique index allows at most one active (status=1)
// session per courier and operating day; terminal sessions fall outside it.
type RouteSessionDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID      `gorm:"type:uuid;index:idx_sessions_courier_date;uniqueIndex:udx_sessions_active,where:status = 1"`
	Date       time.Time      `gorm:"index:idx_sessions_courier_date;uniqueIndex:udx_sessions_active"`
	StopOrder  pq.StringArray `gorm:"type:text[]"`
	NextIndex  int            `gorm:"not null"`
	Status     int            `gorm:"index"`
	StartedAt  time.Time
	FinishedAt *time.Time
	Version    int `gorm:"not null"`
}

// TableName specifies the database table name for route sessions.
func (RouteSessionDTO) TableName() string {
	return "route_sessions"
}

// fromDomain converts a route session aggregate to its database representation.
func fromDomain(aggregate *session.RouteSession) RouteSessionDTO {
	stops := aggregate.StopOrder()
	stopOrder := make(pq.StringArray, len(stops))
	for i, id := range stops {
		stopOrder[i] = id.String()
	}

	return RouteSessionDTO{
		ID:         aggregate.ID().Bytes(),
		CourierID:  aggregate.Courier().Bytes(),
		Date:       aggregate.Date(),
		StopOrder:  stopOrder,
		NextIndex:  aggregate.NextIndex(),
		Status:     int(aggregate.Status()),
		StartedAt:  aggregate.StartedAt(),
		FinishedAt: aggregate.FinishedAt(),
		Version:    aggregate.Version(),
	}
}

// toDomain converts a database DTO to a route session aggregate using
// RestoreRouteSession, which re-checks cursor bounds and status invariants.
func toDomain(dto RouteSessionDTO) (*session.RouteSession, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	stopOrder := make([]kernel.UUID, 0, len(dto.StopOrder))
	for _, raw := range dto.StopOrder {
		stopID, stopErr := kernel.UUIDFromString(raw)
		if stopErr != nil {
			return nil, stopErr
		}
		stopOrder = append(stopOrder, stopID)
	}

	return session.RestoreRouteSession(session.RestoreParams{
		ID:         id,
		CourierID:  courierID,
		Date:       dto.Date,
		StopOrder:  stopOrder,
		NextIndex:  dto.NextIndex,
		Status:     session.Status(dto.Status),
		StartedAt:  dto.StartedAt,
		FinishedAt: dto.FinishedAt,
		Version:    dto.Version,
	})
}
