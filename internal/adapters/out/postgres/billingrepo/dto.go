// Package billingrepo provides data transfer objects and mapping functions for
// billing item persistence. Items are append-plus-flag: rows are inserted when
// work is billed and voided in place, never deleted.
package billingrepo

import (
	"time"

	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BillingItemDTO represents the database structure for billing items.
// UnitPriceCents keeps money in integer cents end to end; DeliveryID is
// unique because one delivery is billed at most once.
type BillingItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CourierID      uuid.UUID `gorm:"type:uuid;index:idx_billing_courier_date"`
	Date           time.Time `gorm:"index:idx_billing_courier_date;index:idx_billing_base_date"`
	ServiceKind    int       `gorm:"not null"`
	Base           string    `gorm:"size:128;index:idx_billing_base_date"`
	SubBase        string    `gorm:"size:128"`
	UnitPriceCents int64     `gorm:"not null"`
	Cancelled      bool      `gorm:"not null;default:false"`
}

// TableName specifies the database table name for billing items.
func (BillingItemDTO) TableName() string {
	return "billing_items"
}

// fromDomain converts a billing item to its database representation.
func fromDomain(item *closure.BillingItem) BillingItemDTO {
	return BillingItemDTO{
		ID:             item.ID().Bytes(),
		DeliveryID:     item.DeliveryID().Bytes(),
		CourierID:      item.Courier().Bytes(),
		Date:           item.Date(),
		ServiceKind:    int(item.ServiceKind()),
		Base:           item.Base(),
		SubBase:        item.SubBase(),
		UnitPriceCents: item.UnitPrice().Cents(),
		Cancelled:      item.IsCancelled(),
	}
}

// toDomain converts a database DTO to a billing item.
func toDomain(dto BillingItemDTO) (*closure.BillingItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return closure.NewBillingItem(closure.BillingItemParams{
		ID:          id,
		DeliveryID:  deliveryID,
		CourierID:   courierID,
		Date:        dto.Date,
		ServiceKind: delivery.ServiceKind(dto.ServiceKind),
		Base:        dto.Base,
		SubBase:     dto.SubBase,
		UnitPrice:   kernel.NewMoneyFromCents(dto.UnitPriceCents),
		Cancelled:   dto.Cancelled,
	})
}
