// Package historyrepo provides data transfer objects and mapping functions for
// the append-only delivery audit ledger. Rows are only ever inserted and read;
// the repository deliberately exposes no update or delete.
package historyrepo

import (
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HistoryEntryDTO represents the database structure for ledger entries.
// Seq is a monotonically increasing sequence assigned by the database; it
// breaks ordering ties between entries sharing an occurrence timestamp.
type HistoryEntryDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq               int64     `gorm:"autoIncrement;uniqueIndex"`
	DeliveryID        uuid.UUID `gorm:"type:uuid;index:idx_history_delivery_occurred"`
	Kind              int       `gorm:"not null"`
	OccurredAt        time.Time `gorm:"index:idx_history_delivery_occurred"`
	FromStatus        int
	ToStatus          int
	CourierID         *uuid.UUID `gorm:"type:uuid"`
	PreviousCourierID *uuid.UUID `gorm:"type:uuid"`
	ActorID           *uuid.UUID `gorm:"type:uuid"`
	Note              string     `gorm:"size:512"`
}

// TableName specifies the database table name for ledger entries.
func (HistoryEntryDTO) TableName() string {
	return "history_entries"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(entry *history.Entry) HistoryEntryDTO {
	var courierID *uuid.UUID
	if id := entry.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var previousID *uuid.UUID
	if id := entry.PreviousCourier(); id != nil {
		raw := id.Bytes()
		previousID = &raw
	}

	var actorID *uuid.UUID
	if id := entry.Actor(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return HistoryEntryDTO{
		ID:                entry.ID().Bytes(),
		DeliveryID:        entry.DeliveryID().Bytes(),
		Kind:              int(entry.Kind()),
		OccurredAt:        entry.OccurredAt(),
		FromStatus:        int(entry.FromStatus()),
		ToStatus:          int(entry.ToStatus()),
		CourierID:         courierID,
		PreviousCourierID: previousID,
		ActorID:           actorID,
		Note:              entry.Note(),
	}
}

// toDomain converts a database DTO to a ledger entry.
func toDomain(dto HistoryEntryDTO) (*history.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var previousID *kernel.UUID
	if dto.PreviousCourierID != nil {
		pID, previousErr := kernel.UUIDFromBytes((*dto.PreviousCourierID)[:])
		if previousErr != nil {
			return nil, previousErr
		}
		previousID = &pID
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &aID
	}

	return history.NewEntry(history.EntryParams{
		ID:                id,
		DeliveryID:        deliveryID,
		Kind:              history.EventKind(dto.Kind),
		OccurredAt:        dto.OccurredAt,
		FromStatus:        delivery.Status(dto.FromStatus),
		ToStatus:          delivery.Status(dto.ToStatus),
		CourierID:         courierID,
		PreviousCourierID: previousID,
		ActorID:           actorID,
		Note:              dto.Note,
	})
}
