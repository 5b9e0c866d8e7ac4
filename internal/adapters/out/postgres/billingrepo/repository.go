package billingrepo

import (
	"context"
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// GormBillingRepository implements BillingRepository using GORM.
type GormBillingRepository struct {
	db *gorm.DB
}

// NewGormBillingRepository creates a new GORM billing repository.
func NewGormBillingRepository(db *gorm.DB) *GormBillingRepository {
	return &GormBillingRepository{db: db}
}

// Add saves a new billing item. The unique index on delivery_id is the final
// arbiter against double billing; its violation surfaces as Conflict.
func (r *GormBillingRepository) Add(ctx context.Context, item *closure.BillingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return errs.NewConflictErrorWithCause("billingItem", item.DeliveryID().String(), err)
		}
		return err
	}

	return nil
}

// Update persists the cancelled flag of an existing item.
func (r *GormBillingRepository) Update(ctx context.Context, item *closure.BillingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&BillingItemDTO{}).
		Where("id = ?", dto.ID).
		Update("cancelled", dto.Cancelled)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("billingItem", item.ID().String())
	}

	return nil
}

// GetForDelivery retrieves the billing item of a delivery, or NotFound.
func (r *GormBillingRepository) GetForDelivery(ctx context.Context, deliveryID kernel.UUID) (*closure.BillingItem, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dto BillingItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "delivery_id = ?", deliveryID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("billingItem", deliveryID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForCourier retrieves a courier's items within a period, both bounds
// inclusive, ordered by date.
func (r *GormBillingRepository) GetAllForCourier(
	ctx context.Context, courierID kernel.UUID, periodStart, periodEnd time.Time,
) ([]*closure.BillingItem, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BillingItemDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND date BETWEEN ? AND ?",
			courierID.Bytes(), periodStart.Truncate(24*time.Hour), periodEnd.Truncate(24*time.Hour)).
		Order("date ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllForBase retrieves a base's items within a period, both bounds
// inclusive, ordered by date.
func (r *GormBillingRepository) GetAllForBase(
	ctx context.Context, base string, periodStart, periodEnd time.Time,
) ([]*closure.BillingItem, error) {
	var dtos []BillingItemDTO
	err := r.db.WithContext(ctx).
		Where("base = ? AND date BETWEEN ? AND ?",
			base, periodStart.Truncate(24*time.Hour), periodEnd.Truncate(24*time.Hour)).
		Order("date ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []BillingItemDTO) ([]*closure.BillingItem, error) {
	items := make([]*closure.BillingItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
