// Package deliveryrepo provides data transfer objects and mapping functions for
// delivery persistence. This package implements the repository pattern for the
// delivery domain aggregate, handling the conversion between domain entities and
// database representations.
package deliveryrepo

import (
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Indexed for the hot query paths: pending lookups per base/day,
// a courier's deliveries per day, and shipment-reference ingestion checks.
// The partial unique index allows at most one non-cancelled (status<>5)
// delivery per shipment reference; cancelling frees the reference.
type DeliveryDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Date             time.Time  `gorm:"index:idx_deliveries_base_date;index:idx_deliveries_courier_date"`
	Code             string     `gorm:"size:64;not null"`
	ServiceKind      int        `gorm:"not null"`
	Base             string     `gorm:"size:128;index:idx_deliveries_base_date"`
	SubBase          string     `gorm:"size:128"`
	Status           int        `gorm:"index"`
	CourierID        *uuid.UUID `gorm:"type:uuid;index:idx_deliveries_courier_date"`
	DeliveredAt      *time.Time
	AbsenceReasonID  *uuid.UUID `gorm:"type:uuid"`
	Latitude         *float64
	Longitude        *float64
	FormattedAddress string `gorm:"size:512"`
	AddressSource    int
	ShipmentRef      string `gorm:"size:128;uniqueIndex:udx_deliveries_active_shipment,where:shipment_ref <> '' AND status <> 5"`
	OrderRef         string `gorm:"size:128"`
	Version          int    `gorm:"not null"`
	CreatedAt        time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var reasonID *uuid.UUID
	if id := aggregate.AbsenceReason(); id != nil {
		raw := id.Bytes()
		reasonID = &raw
	}

	var lat, lon *float64
	if p := aggregate.Point(); p != nil {
		la, lo := p.Latitude(), p.Longitude()
		lat, lon = &la, &lo
	}

	return DeliveryDTO{
		ID:               aggregate.ID().Bytes(),
		Date:             aggregate.Date(),
		Code:             aggregate.Code(),
		ServiceKind:      int(aggregate.ServiceKind()),
		Base:             aggregate.Base(),
		SubBase:          aggregate.SubBase(),
		Status:           int(aggregate.Status()),
		CourierID:        courierID,
		DeliveredAt:      aggregate.DeliveredAt(),
		AbsenceReasonID:  reasonID,
		Latitude:         lat,
		Longitude:        lon,
		FormattedAddress: aggregate.FormattedAddress(),
		AddressSource:    int(aggregate.AddressSource()),
		ShipmentRef:      aggregate.ShipmentRef(),
		OrderRef:         aggregate.OrderRef(),
		Version:          aggregate.Version(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate using
// RestoreDelivery, which re-checks the cross-field invariants.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	var reasonID *kernel.UUID
	if dto.AbsenceReasonID != nil {
		rID, reasonErr := kernel.UUIDFromBytes((*dto.AbsenceReasonID)[:])
		if reasonErr != nil {
			return nil, reasonErr
		}
		reasonID = &rID
	}

	var point *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		point = &p
	}

	return delivery.RestoreDelivery(delivery.RestoreParams{
		ID:               id,
		Date:             dto.Date,
		Code:             dto.Code,
		ServiceKind:      delivery.ServiceKind(dto.ServiceKind),
		Base:             dto.Base,
		SubBase:          dto.SubBase,
		Status:           delivery.Status(dto.Status),
		CourierID:        courierID,
		DeliveredAt:      dto.DeliveredAt,
		AbsenceReasonID:  reasonID,
		Point:            point,
		FormattedAddress: dto.FormattedAddress,
		AddressSource:    delivery.AddressSource(dto.AddressSource),
		ShipmentRef:      dto.ShipmentRef,
		OrderRef:         dto.OrderRef,
		Version:          dto.Version,
	})
}
