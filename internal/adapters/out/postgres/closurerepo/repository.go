package closurerepo

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

// GormClosureRepository implements ClosureRepository using GORM.
type GormClosureRepository struct {
	db *gorm.DB
}

// NewGormClosureRepository creates a new GORM closure repository.
func NewGormClosureRepository(db *gorm.DB) *GormClosureRepository {
	return &GormClosureRepository{db: db}
}

// Add saves a new closure with its line items. Concurrent generation of the
// same (scope, subject, period) tuple is decided by the unique index; the
// losing insert fails with Conflict and leaves no duplicate row.
func (r *GormClosureRepository) Add(ctx context.Context, aggregate *closure.Closure) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return errs.NewConflictErrorWithCause("closure", aggregate.Subject(), err)
		}
		return err
	}

	return nil
}

// Update persists status changes of an existing closure. Line items and
// totals are immutable once generated and are not touched.
func (r *GormClosureRepository) Update(ctx context.Context, aggregate *closure.Closure) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ClosureDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("closure", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a closure with its line items by ID.
func (r *GormClosureRepository) Get(ctx context.Context, id kernel.UUID) (*closure.Closure, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ClosureDTO
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, service_kind ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("closure", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Exists reports whether a closure exists for the exact tuple.
func (r *GormClosureRepository) Exists(
	ctx context.Context, scope closure.Scope, subject string, periodStart, periodEnd time.Time,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ClosureDTO{}).
		Where("scope = ? AND subject = ? AND period_start = ? AND period_end = ?",
			int(scope), subject,
			periodStart.Truncate(24*time.Hour), periodEnd.Truncate(24*time.Hour)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
