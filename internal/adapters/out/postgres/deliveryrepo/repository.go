package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database. An active (non-cancelled) delivery
// with the same shipment reference makes the insert fail with Conflict, which
// keeps marketplace auto-ingestion from creating duplicates. The partial
// unique index is the final arbiter, so two concurrent ingestions of the same
// shipment cannot both land.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return errs.NewConflictErrorWithCause("shipmentRef", dto.ShipmentRef, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery using optimistic concurrency: the row is
// updated only when its stored version still matches the version the
// aggregate was loaded with. A concurrent writer that already bumped the row
// makes Update fail with Conflict; the caller re-reads and retries.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
		}
		return errs.NewConflictError("delivery", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves pending deliveries for a base and operating day,
// oldest first.
func (r *GormDeliveryRepository) GetAllPending(ctx context.Context, base string, date time.Time) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("base = ? AND date = ? AND status = ?", base, date.Truncate(24*time.Hour), int(delivery.Pending)).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllForCourierOnDate retrieves every delivery a courier is or was
// responsible for on an operating day.
func (r *GormDeliveryRepository) GetAllForCourierOnDate(
	ctx context.Context, courierID kernel.UUID, date time.Time,
) ([]*delivery.Delivery, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND date = ?", courierID.Bytes(), date.Truncate(24*time.Hour)).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllWithoutHistory retrieves deliveries with no ledger entries at all,
// oldest first, bounded by limit. Used by the one-time history backfill.
func (r *GormDeliveryRepository) GetAllWithoutHistory(ctx context.Context, limit int) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM history_entries h WHERE h.delivery_id = deliveries.id)").
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllDeliveredWithoutDeliveredEvent retrieves delivered parcels whose
// ledger is missing the Delivered entry, oldest first, bounded by limit.
func (r *GormDeliveryRepository) GetAllDeliveredWithoutDeliveredEvent(
	ctx context.Context, limit int,
) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(delivery.Delivered)).
		Where("NOT EXISTS (SELECT 1 FROM history_entries h WHERE h.delivery_id = deliveries.id AND h.kind = ?)",
			int(history.EventDelivered)).
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ListSubjects returns the distinct courier IDs and bases with terminal
// deliveries inside the period, both bounds inclusive.
func (r *GormDeliveryRepository) ListSubjects(
	ctx context.Context, periodStart, periodEnd time.Time,
) (courierIDs []string, bases []string, err error) {
	terminal := []int{int(delivery.Delivered), int(delivery.Absent), int(delivery.Cancelled)}
	start := periodStart.Truncate(24 * time.Hour)
	end := periodEnd.Truncate(24 * time.Hour)

	err = r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Distinct("courier_id").
		Where("date BETWEEN ? AND ? AND status IN ? AND courier_id IS NOT NULL", start, end, terminal).
		Order("courier_id ASC").
		Pluck("courier_id", &courierIDs).Error
	if err != nil {
		return nil, nil, err
	}

	err = r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Distinct("base").
		Where("date BETWEEN ? AND ? AND status IN ?", start, end, terminal).
		Order("base ASC").
		Pluck("base", &bases).Error
	if err != nil {
		return nil, nil, err
	}

	return courierIDs, bases, nil
}

func toDomainSlice(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}
