// Package pricingrepo implements the pricing catalog over the billing-rules
// tables maintained outside the core. The core only reads prices; rows are
// managed by the billing back office.
package pricingrepo

import (
	"context"
	"errors"
	"fmt"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"

	"gorm.io/gorm"
)

// PriceRowDTO represents one price rule: the amount billed for one delivery
// of a service kind within a base/sub-base scope. A row with an empty
// sub_base is the base-wide fallback.
type PriceRowDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ServiceKind int    `gorm:"uniqueIndex:idx_prices_scope"`
	Base        string `gorm:"size:128;uniqueIndex:idx_prices_scope"`
	SubBase     string `gorm:"size:128;uniqueIndex:idx_prices_scope"`
	PriceCents  int64  `gorm:"not null"`
}

// TableName specifies the database table name for price rules.
func (PriceRowDTO) TableName() string {
	return "price_rules"
}

// GormPricingCatalog implements PricingCatalog using GORM.
type GormPricingCatalog struct {
	db *gorm.DB
}

// NewGormPricingCatalog creates a new GORM pricing catalog.
func NewGormPricingCatalog(db *gorm.DB) *GormPricingCatalog {
	return &GormPricingCatalog{db: db}
}

// Price returns the unit amount for the service kind in the given scope.
// Lookup is most-specific-first: an exact (kind, base, subBase) row wins over
// the base-wide fallback row with an empty sub_base. Fails with NotFound when
// neither exists.
func (c *GormPricingCatalog) Price(
	ctx context.Context, kind delivery.ServiceKind, base, subBase string,
) (kernel.Money, error) {
	if err := kind.Validate(); err != nil {
		return 0, err
	}

	var dto PriceRowDTO
	err := c.db.WithContext(ctx).
		Where("service_kind = ? AND base = ? AND sub_base IN ?", int(kind), base, []string{subBase, ""}).
		Order("sub_base DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("price",
				fmt.Sprintf("%s/%s/%s", kind, base, subBase))
		}
		return 0, err
	}

	return kernel.NewMoneyFromCents(dto.PriceCents), nil
}
