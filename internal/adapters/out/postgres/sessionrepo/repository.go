package sessionrepo

import (
	"context"
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/domain/model/session"
	"tracksaidas/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session. One active session per courier per operating day:
// the partial unique index is the final arbiter between concurrent starts,
// so the losing insert fails with Conflict even when both raced past any
// earlier read.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.RouteSession) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return errs.NewConflictErrorWithCause("session", aggregate.Courier().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing session using optimistic concurrency on the
// version column. Two devices advancing the same session race on the same
// row; the loser fails with Conflict and must re-read.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.RouteSession) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&RouteSessionDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RouteSessionDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("session", aggregate.ID().String())
		}
		return errs.NewConflictError("session", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a session by ID.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.RouteSession, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteSessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveForCourier retrieves the courier's active session for an operating
// day, or NotFound.
func (r *GormSessionRepository) GetActiveForCourier(
	ctx context.Context, courierID kernel.UUID, date time.Time,
) (*session.RouteSession, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dto RouteSessionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "courier_id = ? AND date = ? AND status = ?",
			courierID.Bytes(), date.Truncate(24*time.Hour), int(session.Active)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", courierID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActiveBefore retrieves active sessions whose operating day ended
// before the cutoff, oldest first. Used by reconciliation.
func (r *GormSessionRepository) GetAllActiveBefore(ctx context.Context, cutoff time.Time) ([]*session.RouteSession, error) {
	var dtos []RouteSessionDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND date < ?", int(session.Active), cutoff.Truncate(24*time.Hour)).
		Order("date ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*session.RouteSession, 0, len(dtos))
	for _, dto := range dtos {
		s, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}

// ReconcileFinished closes any session with finishedAt set but a non-terminal
// status. Such rows violate the session invariant and cannot even be restored
// into the domain, so the sweep corrects them in place. Idempotent: a second
// run touches no rows.
func (r *GormSessionRepository) ReconcileFinished(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&RouteSessionDTO{}).
		Where("finished_at IS NOT NULL AND status = ?", int(session.Active)).
		Updates(map[string]any{
			"status":  int(session.Finished),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
