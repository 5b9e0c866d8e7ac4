package queries

import (
	"context"
	"database/sql"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryHistoryQueryHandler reads a delivery's audit ledger from the
// database, ordered by occurrence time with insertion order breaking ties.
type GetDeliveryHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryHistoryQueryHandler creates a handler for ledger queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryHistoryQueryHandler(db *gorm.DB) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{db: db}
}

// Handle executes the query and returns the delivery's entries oldest first.
func (h GetDeliveryHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryHistoryQuery,
) ([]GetDeliveryHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetDeliveryHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			occurred_at,
			from_status,
			to_status,
			courier_id,
			previous_courier_id,
			actor_id,
			note
		FROM history_entries
		WHERE delivery_id = ?
		ORDER BY occurred_at ASC, seq ASC
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp            GetDeliveryHistoryQueryResponse
			id              uuid.UUID
			kind            int
			fromStatus      int
			toStatus        int
			courierID       uuid.NullUUID
			previousCourier uuid.NullUUID
			actorID         uuid.NullUUID
			note            sql.NullString
		)

		err = rows.Scan(
			&id,
			&kind,
			&resp.OccurredAt,
			&fromStatus,
			&toStatus,
			&courierID,
			&previousCourier,
			&actorID,
			&note,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = entryID
		resp.Kind = history.EventKind(kind).String()
		resp.FromStatus = delivery.Status(fromStatus).String()
		resp.ToStatus = delivery.Status(toStatus).String()
		resp.Note = note.String

		if resp.CourierID, err = optionalUUID(courierID); err != nil {
			return nil, err
		}
		if resp.PreviousCourierID, err = optionalUUID(previousCourier); err != nil {
			return nil, err
		}
		if resp.ActorID, err = optionalUUID(actorID); err != nil {
			return nil, err
		}

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func optionalUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
