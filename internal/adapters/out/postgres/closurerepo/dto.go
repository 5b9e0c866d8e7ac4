// Package closurerepo provides data transfer objects and mapping functions for
// closure persistence. A closure spans two tables: the rollup row and its
// per-day, per-service line items.
package closurerepo

import (
	"time"

	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ClosureDTO represents the database structure for closure rollups. The
// composite unique index on (scope, subject, period) is the final arbiter
// between concurrent generators: the losing insert violates it and surfaces
// as Conflict.
type ClosureDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Scope               int       `gorm:"uniqueIndex:idx_closures_tuple"`
	Subject             string    `gorm:"size:128;uniqueIndex:idx_closures_tuple"`
	PeriodStart         time.Time `gorm:"uniqueIndex:idx_closures_tuple"`
	PeriodEnd           time.Time `gorm:"uniqueIndex:idx_closures_tuple"`
	Status              int       `gorm:"not null"`
	GeneratedAt         time.Time
	GrossValueCents     int64 `gorm:"not null"`
	CancelledValueCents int64 `gorm:"not null"`
	NetValueCents       int64 `gorm:"not null"`

	LineItems []ClosureLineItemDTO `gorm:"foreignKey:ClosureID;references:ID"`
}

// TableName specifies the database table name for closures.
func (ClosureDTO) TableName() string {
	return "closures"
}

// ClosureLineItemDTO represents one per-day, per-service row of a closure.
type ClosureLineItemDTO struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement"`
	ClosureID           uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_closure_items_day_kind"`
	Date                time.Time `gorm:"uniqueIndex:idx_closure_items_day_kind"`
	ServiceKind         int       `gorm:"uniqueIndex:idx_closure_items_day_kind"`
	DeliveredCount      int       `gorm:"not null"`
	CancelledCount      int       `gorm:"not null"`
	GrossValueCents     int64     `gorm:"not null"`
	CancelledValueCents int64     `gorm:"not null"`
}

// TableName specifies the database table name for closure line items.
func (ClosureLineItemDTO) TableName() string {
	return "closure_line_items"
}

// fromDomain converts a closure aggregate to its database representation.
func fromDomain(aggregate *closure.Closure) ClosureDTO {
	lines := aggregate.LineItems()
	lineDTOs := make([]ClosureLineItemDTO, len(lines))
	for i, li := range lines {
		lineDTOs[i] = ClosureLineItemDTO{
			ClosureID:           aggregate.ID().Bytes(),
			Date:                li.Date,
			ServiceKind:         int(li.ServiceKind),
			DeliveredCount:      li.DeliveredCount,
			CancelledCount:      li.CancelledCount,
			GrossValueCents:     li.GrossValue.Cents(),
			CancelledValueCents: li.CancelledValue.Cents(),
		}
	}

	return ClosureDTO{
		ID:                  aggregate.ID().Bytes(),
		Scope:               int(aggregate.Scope()),
		Subject:             aggregate.Subject(),
		PeriodStart:         aggregate.PeriodStart(),
		PeriodEnd:           aggregate.PeriodEnd(),
		Status:              int(aggregate.Status()),
		GeneratedAt:         aggregate.GeneratedAt(),
		GrossValueCents:     aggregate.GrossValue().Cents(),
		CancelledValueCents: aggregate.CancelledValue().Cents(),
		NetValueCents:       aggregate.NetValue().Cents(),
		LineItems:           lineDTOs,
	}
}

// toDomain converts a database DTO (with preloaded line items) to a closure
// aggregate. Totals are recomputed by the constructor from the line items.
func toDomain(dto ClosureDTO) (*closure.Closure, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]closure.LineItem, len(dto.LineItems))
	for i, li := range dto.LineItems {
		lines[i] = closure.LineItem{
			Date:           li.Date,
			ServiceKind:    delivery.ServiceKind(li.ServiceKind),
			DeliveredCount: li.DeliveredCount,
			CancelledCount: li.CancelledCount,
			GrossValue:     kernel.NewMoneyFromCents(li.GrossValueCents),
			CancelledValue: kernel.NewMoneyFromCents(li.CancelledValueCents),
		}
	}

	return closure.NewClosure(closure.ClosureParams{
		ID:          id,
		Scope:       closure.Scope(dto.Scope),
		Subject:     dto.Subject,
		PeriodStart: dto.PeriodStart,
		PeriodEnd:   dto.PeriodEnd,
		Status:      closure.Status(dto.Status),
		GeneratedAt: dto.GeneratedAt,
		LineItems:   lines,
	})
}
