package queries

import (
	"context"
	"database/sql"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingDeliveriesQueryHandler reads a base's pending parcels for an
// operating day, oldest first.
type GetPendingDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingDeliveriesQueryHandler creates a handler for pending parcel
// queries. Requires a GORM database connection for query execution.
func NewGetPendingDeliveriesQueryHandler(db *gorm.DB) GetPendingDeliveriesQueryHandler {
	return GetPendingDeliveriesQueryHandler{db: db}
}

// Handle executes the query and returns pending parcels in creation order.
func (h GetPendingDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingDeliveriesQuery,
) ([]GetPendingDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetPendingDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			service_kind,
			sub_base,
			formatted_address,
			latitude
		FROM deliveries
		WHERE base = ? AND date = ? AND status = ?
		ORDER BY created_at ASC
	`, query.Base(), query.Date(), int(delivery.Pending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp        GetPendingDeliveriesQueryResponse
			id          uuid.UUID
			serviceKind int
			latitude    sql.NullFloat64
		)

		err = rows.Scan(
			&id,
			&resp.Code,
			&serviceKind,
			&resp.SubBase,
			&resp.FormattedAddress,
			&latitude,
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
		resp.HasAddress = latitude.Valid

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
