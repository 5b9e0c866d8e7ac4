package historyrepo

import (
	"context"

	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Add appends a ledger entry. Fails with NotFound when the referenced
// delivery does not exist; an audit record for a phantom delivery would be
// worse than no record.
func (r *GormHistoryRepository) Add(ctx context.Context, entry *history.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)

	var count int64
	err := r.db.WithContext(ctx).Table("deliveries").
		Where("id = ?", dto.DeliveryID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("delivery", entry.DeliveryID().String())
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListFor returns every entry for a delivery ordered by occurrence time
// ascending, insertion order breaking ties.
func (r *GormHistoryRepository) ListFor(ctx context.Context, deliveryID kernel.UUID) ([]*history.Entry, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryEntryDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("occurred_at ASC, seq ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*history.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// HasEntryOfKind reports whether the delivery already has an entry of the
// given kind.
func (r *GormHistoryRepository) HasEntryOfKind(
	ctx context.Context, deliveryID kernel.UUID, kind history.EventKind,
) (bool, error) {
	if err := deliveryID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&HistoryEntryDTO{}).
		Where("delivery_id = ? AND kind = ?", deliveryID.Bytes(), int(kind)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
