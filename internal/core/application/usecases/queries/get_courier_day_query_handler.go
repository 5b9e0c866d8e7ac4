package queries

import (
	"context"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierDayQueryHandler reads a courier's parcels for an operating day.
type GetCourierDayQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierDayQueryHandler creates a handler for courier day queries.
func NewGetCourierDayQueryHandler(db *gorm.DB) GetCourierDayQueryHandler {
	return GetCourierDayQueryHandler{db: db}
}

// Handle executes the query and returns the courier's parcels in creation
// order, terminal outcomes included.
func (h GetCourierDayQueryHandler) Handle(
	ctx context.Context,
	query GetCourierDayQuery,
) ([]GetCourierDayQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetCourierDayQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			service_kind,
			status,
			formatted_address,
			delivered_at
		FROM deliveries
		WHERE courier_id = ? AND date = ?
		ORDER BY created_at ASC
	`, query.CourierID().Bytes(), query.Date()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp        GetCourierDayQueryResponse
			id          uuid.UUID
			serviceKind int
			status      int
		)

		err = rows.Scan(
			&id,
			&resp.Code,
			&serviceKind,
			&status,
			&resp.FormattedAddress,
			&resp.DeliveredAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID
		resp.ServiceKind = delivery.ServiceKind(serviceKind).String()
		resp.Status = delivery.Status(status).String()

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
