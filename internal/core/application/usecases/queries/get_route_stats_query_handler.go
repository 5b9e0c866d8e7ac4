package queries

import (
	"context"
	"database/sql"
	"errors"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/domain/model/session"
	"tracksaidas/internal/core/domain/services"
	"tracksaidas/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetRouteStatsQueryHandler computes progress figures for a route session.
// The session row supplies the stop order and cursor; the remaining stops'
// coordinates are joined in and fed to the route planner for the distance
// and time estimate.
type GetRouteStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteStatsQueryHandler creates a handler for route stat queries.
func NewGetRouteStatsQueryHandler(db *gorm.DB) GetRouteStatsQueryHandler {
	return GetRouteStatsQueryHandler{db: db}
}

// Handle executes the query. Fails with NotFound when the session does not
// exist.
func (h GetRouteStatsQueryHandler) Handle(
	ctx context.Context,
	query GetRouteStatsQuery,
) (GetRouteStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRouteStatsQueryResponse{}, err
	}

	var (
		stopOrder pq.StringArray
		nextIndex int
		status    int
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT stop_order, next_index, status
		FROM route_sessions
		WHERE id = ?
	`, query.SessionID().Bytes()).Row()
	if err := row.Scan(&stopOrder, &nextIndex, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetRouteStatsQueryResponse{}, errs.NewObjectNotFoundError("session", query.SessionID().String())
		}
		return GetRouteStatsQueryResponse{}, err
	}

	remaining := []string(stopOrder[nextIndex:])
	stops, err := h.loadStops(ctx, remaining)
	if err != nil {
		return GetRouteStatsQueryResponse{}, err
	}

	stats, err := services.NewRoutePlanner().ComputeStats(stops)
	if err != nil {
		return GetRouteStatsQueryResponse{}, err
	}

	return GetRouteStatsQueryResponse{
		Status:           session.Status(status).String(),
		TotalStops:       len(stopOrder),
		VisitedStops:     nextIndex,
		RemainingStops:   len(remaining),
		DistanceKm:       stats.DistanceKm,
		EstimatedMinutes: stats.EstimatedMinutes,
	}, nil
}

// loadStops fetches coordinates for the remaining stops and returns them in
// route order. Stops without a geocoded address get a nil point.
func (h GetRouteStatsQueryHandler) loadStops(ctx context.Context, remaining []string) ([]services.Stop, error) {
	if len(remaining) == 0 {
		return nil, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, latitude, longitude
		FROM deliveries
		WHERE id = ANY(?::uuid[])
	`, pq.Array(remaining)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make(map[kernel.UUID]*kernel.GeoPoint, len(remaining))
	ids := make(map[string]kernel.UUID, len(remaining))
	for rows.Next() {
		var (
			id        uuid.UUID
			latitude  sql.NullFloat64
			longitude sql.NullFloat64
		)
		if err = rows.Scan(&id, &latitude, &longitude); err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ids[deliveryID.String()] = deliveryID

		if latitude.Valid && longitude.Valid {
			point, pointErr := kernel.NewGeoPoint(latitude.Float64, longitude.Float64)
			if pointErr != nil {
				return nil, pointErr
			}
			points[deliveryID] = &point
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	stops := make([]services.Stop, 0, len(remaining))
	for _, raw := range remaining {
		deliveryID, ok := ids[raw]
		if !ok {
			return nil, errs.NewInvalidReferenceError("stopOrder", raw)
		}
		stops = append(stops, services.Stop{
			DeliveryID: deliveryID,
			Point:      points[deliveryID],
		})
	}
	return stops, nil
}
