package session

import (
	"errors"
	"fmt"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"
)

var (
	// ErrRouteSessionIsNotConstructed is returned when a RouteSession instance was
	// not created through NewRouteSession or RestoreRouteSession.
	ErrRouteSessionIsNotConstructed = errors.New(
		"RouteSession must be created via NewRouteSession or RestoreRouteSession")
)

// RouteSession represents one courier driving one ordered list of stops.
// It is the aggregate root for route execution: it owns the stop order, the
// cursor over that order and the session lifecycle.
//
// RouteSession follows these invariants:
//   - Must have a valid unique identifier, courier and operating date
//   - stopOrder contains at least one stop and no duplicates
//   - 0 <= nextIndex <= len(stopOrder); nextIndex == len means all stops visited
//   - The visited prefix of stopOrder is immutable; only the remaining suffix
//     may be reordered
//   - Advancing uses compare-and-set on the cursor so two devices driving the
//     same session cannot both claim the same stop
type RouteSession struct {
	// id is the unique identifier for the session
	id kernel.UUID

	// courierID is the courier driving the route
	courierID kernel.UUID

	// date is the operating day of the run
	date time.Time

	// stopOrder is the ordered list of delivery IDs to visit
	stopOrder []kernel.UUID

	// nextIndex is the cursor: stops before it are visited
	nextIndex int

	// status represents the current state in the session lifecycle
	status Status

	startedAt  time.Time
	finishedAt *time.Time

	// version supports optimistic concurrency control in persistence
	version int

	// isConstructed ensures the session was created via a constructor
	isConstructed bool
}

// NewRouteSession starts a new active session for a courier over an ordered
// list of stops.
//
// Parameters:
//   - id: Unique identifier for the session (must be valid UUID)
//   - courierID: The courier driving the route (must be valid UUID)
//   - date: Operating day of the run (must not be zero)
//   - stopOrder: Ordered delivery IDs; at least one, all valid, no duplicates
//   - startedAt: Session start instant (must not be zero)
//
// Returns:
//   - *RouteSession: The created session if all validations pass
//   - error: Validation error if any parameter is invalid
func NewRouteSession(
	id kernel.UUID,
	courierID kernel.UUID,
	date time.Time,
	stopOrder []kernel.UUID,
	startedAt time.Time,
) (*RouteSession, error) {
	s := &RouteSession{
		status:        Active,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setCourierID(courierID),
		s.setDate(date),
		s.setStartedAt(startedAt),
	); err != nil {
		return nil, err
	}

	if err := s.setStopOrder(stopOrder); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreParams carries every persisted field of a session for reconstruction.
type RestoreParams struct {
	ID         kernel.UUID
	CourierID  kernel.UUID
	Date       time.Time
	StopOrder  []kernel.UUID
	NextIndex  int
	Status     Status
	StartedAt  time.Time
	FinishedAt *time.Time
	Version    int
}

// RestoreRouteSession reconstructs a RouteSession from persistence, enforcing
// cursor bounds and the finishedAt/status cross-field invariant.
func RestoreRouteSession(params RestoreParams) (*RouteSession, error) {
	s := &RouteSession{
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(params.ID),
		s.setCourierID(params.CourierID),
		s.setDate(params.Date),
		s.setStartedAt(params.StartedAt),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := s.setStopOrder(params.StopOrder); err != nil {
		return nil, err
	}

	if params.NextIndex < 0 || params.NextIndex > len(s.stopOrder) {
		return nil, errs.NewValueIsOutOfRangeError("nextIndex", params.NextIndex, 0, len(s.stopOrder))
	}
	s.nextIndex = params.NextIndex
	s.status = params.Status

	if (params.FinishedAt != nil) != params.Status.IsTerminal() {
		return nil, errs.NewValueIsInvalidErrorWithCause("finishedAt",
			fmt.Errorf("finishedAt must be set exactly when status is terminal, got %s", params.Status))
	}
	s.finishedAt = params.FinishedAt

	if params.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("version")
	}
	s.version = params.Version

	return s, nil
}

// Validate ensures the RouteSession instance was properly constructed.
func (s *RouteSession) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrRouteSessionIsNotConstructed
	}
	return nil
}

// ID returns the session's unique identifier.
func (s *RouteSession) ID() kernel.UUID {
	return s.id
}

// Courier returns the courier driving the route.
func (s *RouteSession) Courier() kernel.UUID {
	return s.courierID
}

// Date returns the operating day of the run.
func (s *RouteSession) Date() time.Time {
	return s.date
}

// StopOrder returns a copy of the ordered delivery IDs.
func (s *RouteSession) StopOrder() []kernel.UUID {
	out := make([]kernel.UUID, len(s.stopOrder))
	copy(out, s.stopOrder)
	return out
}

// NextIndex returns the cursor position: stops before it are visited.
func (s *RouteSession) NextIndex() int {
	return s.nextIndex
}

// NextStop returns the delivery ID the courier should visit next, or nil when
// every stop is visited.
func (s *RouteSession) NextStop() *kernel.UUID {
	if s.nextIndex >= len(s.stopOrder) {
		return nil
	}
	stop := s.stopOrder[s.nextIndex]
	return &stop
}

// Status returns the current status of the session.
func (s *RouteSession) Status() Status {
	return s.status
}

// StartedAt returns the session start instant.
func (s *RouteSession) StartedAt() time.Time {
	return s.startedAt
}

// FinishedAt returns the close instant, or nil while Active.
func (s *RouteSession) FinishedAt() *time.Time {
	return s.finishedAt
}

// Version returns the optimistic-concurrency version of the aggregate.
func (s *RouteSession) Version() int {
	return s.version
}

// Advance moves the cursor past the stop at expectedIndex.
//
// The caller states which stop it believes is next; if another device already
// advanced the session the indexes disagree and the call fails with a conflict
// instead of silently skipping a stop. Advancing past the last stop closes the
// session at the given instant.
//
// Parameters:
//   - expectedIndex: The cursor value the caller observed
//   - at: The instant of the visit, used as finishedAt when the session closes
//
// Returns:
//   - finished: true when this advance visited the last stop
//   - error: conflict on cursor mismatch, transition error when not Active
func (s *RouteSession) Advance(expectedIndex int, at time.Time) (finished bool, err error) {
	if s.status != Active {
		return false, errs.NewInvalidTransitionError(s.status.String(), Active.String())
	}
	if at.IsZero() {
		return false, errs.NewValueIsRequiredError("at")
	}
	if expectedIndex != s.nextIndex {
		return false, errs.NewConflictErrorWithCause("nextIndex", s.id.String(),
			fmt.Errorf("expected stop %d but session is at stop %d", expectedIndex, s.nextIndex))
	}
	if s.nextIndex >= len(s.stopOrder) {
		return false, errs.NewConflictErrorWithCause("nextIndex", s.id.String(),
			errors.New("all stops already visited"))
	}

	s.nextIndex++
	if s.nextIndex == len(s.stopOrder) {
		return true, s.close(Finished, at)
	}
	return false, nil
}

// Finish closes the session at the given instant regardless of remaining
// stops. Valid only while Active.
func (s *RouteSession) Finish(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	return s.close(Finished, at)
}

// Expire closes a stale session administratively. Used by reconciliation when
// an Active session outlives its operating window. Valid only while Active.
func (s *RouteSession) Expire(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	return s.close(Expired, at)
}

// Reorder replaces the not-yet-visited suffix of the stop order. The new
// suffix must be an exact permutation of the remaining stops: no stop may be
// added, dropped or duplicated, and visited stops are untouched.
func (s *RouteSession) Reorder(remaining []kernel.UUID) error {
	if s.status != Active {
		return errs.NewInvalidTransitionError(s.status.String(), Active.String())
	}

	current := s.stopOrder[s.nextIndex:]
	if len(remaining) != len(current) {
		return errs.NewValueIsInvalidErrorWithCause("stopOrder",
			fmt.Errorf("expected %d remaining stops, got %d", len(current), len(remaining)))
	}

	currentSet := make(map[kernel.UUID]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	seen := make(map[kernel.UUID]struct{}, len(remaining))
	for _, id := range remaining {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("stopOrder",
				fmt.Errorf("duplicate stop %s", id))
		}
		seen[id] = struct{}{}
		if _, ok := currentSet[id]; !ok {
			return errs.NewValueIsInvalidErrorWithCause("stopOrder",
				fmt.Errorf("stop %s is not part of the remaining route", id))
		}
	}

	copy(s.stopOrder[s.nextIndex:], remaining)
	return nil
}

func (s *RouteSession) close(to Status, at time.Time) error {
	var (
		newStatus Status
		err       error
	)
	switch to {
	case Expired:
		newStatus, err = s.status.Expire()
	default:
		newStatus, err = s.status.Finish()
	}
	if err != nil {
		return err
	}

	s.status = newStatus
	s.finishedAt = &at
	return nil
}

func (s *RouteSession) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *RouteSession) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.courierID = id
	return nil
}

func (s *RouteSession) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	s.date = date.Truncate(24 * time.Hour)
	return nil
}

func (s *RouteSession) setStartedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("startedAt")
	}
	s.startedAt = at
	return nil
}

func (s *RouteSession) setStopOrder(stopOrder []kernel.UUID) error {
	if len(stopOrder) == 0 {
		return errs.NewValueIsRequiredError("stopOrder")
	}
	seen := make(map[kernel.UUID]struct{}, len(stopOrder))
	for _, id := range stopOrder {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("stopOrder",
				fmt.Errorf("duplicate stop %s", id))
		}
		seen[id] = struct{}{}
	}

	s.stopOrder = make([]kernel.UUID, len(stopOrder))
	copy(s.stopOrder, stopOrder)
	return nil
}
