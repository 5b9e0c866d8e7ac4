// Package reasonrepo implements the absence-reason catalog over the table
// maintained outside the core. The core only validates that a reason exists
// and is active before recording an absence.
package reasonrepo

import (
	"context"
	"errors"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/ports"
	"tracksaidas/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AbsenceReasonDTO represents one catalogued absence reason.
type AbsenceReasonDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Description string    `gorm:"size:256;not null"`
	Active      bool      `gorm:"not null;default:true"`
}

// TableName specifies the database table name for absence reasons.
func (AbsenceReasonDTO) TableName() string {
	return "absence_reasons"
}

// GormAbsenceReasonCatalog implements AbsenceReasonCatalog using GORM.
type GormAbsenceReasonCatalog struct {
	db *gorm.DB
}

// NewGormAbsenceReasonCatalog creates a new GORM absence-reason catalog.
func NewGormAbsenceReasonCatalog(db *gorm.DB) *GormAbsenceReasonCatalog {
	return &GormAbsenceReasonCatalog{db: db}
}

// Get retrieves a reason by ID, or NotFound.
func (c *GormAbsenceReasonCatalog) Get(ctx context.Context, id kernel.UUID) (*ports.AbsenceReason, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AbsenceReasonDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("absenceReason", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListActive retrieves every active reason ordered by description.
func (c *GormAbsenceReasonCatalog) ListActive(ctx context.Context) ([]*ports.AbsenceReason, error) {
	var dtos []AbsenceReasonDTO
	err := c.db.WithContext(ctx).
		Where("active = ?", true).
		Order("description ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	reasons := make([]*ports.AbsenceReason, 0, len(dtos))
	for _, dto := range dtos {
		reason, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		reasons = append(reasons, reason)
	}

	return reasons, nil
}

func toDomain(dto AbsenceReasonDTO) (*ports.AbsenceReason, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.AbsenceReason{
		ID:          id,
		Description: dto.Description,
		Active:      dto.Active,
	}, nil
}
