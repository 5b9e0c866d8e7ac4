package commands

import (
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var (
	ErrStartSessionCommandIsNotConstructed = errors.New(
		"StartSessionCommand must be created via NewStartSessionCommand constructor",
	)
	ErrStopOrderIsRequired = errors.New("stopOrder is required")
)

// StartSessionCommand represents a courier starting to drive an ordered list
// of stops. Every stop must reference one of the courier's own deliveries for
// the operating day.
//
// Example:
//
//	cmd, err := NewStartSessionCommand(sessionID, courierID, day, stopIDs, time.Now())
//	if err != nil {
//	    return err
//	}
//	handler := NewStartSessionCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("session start failed: %v", err)
//	}
type StartSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	courierID kernel.UUID
	date      time.Time
	stopOrder []kernel.UUID
	startedAt time.Time

	guard guard.ConstructorGuard
}

// NewStartSessionCommand creates a command to start a route session.
func NewStartSessionCommand(
	sessionID kernel.UUID,
	courierID kernel.UUID,
	date time.Time,
	stopOrder []kernel.UUID,
	startedAt time.Time,
) (StartSessionCommand, error) {
	if err := errors.Join(
		sessionID.Validate(),
		courierID.Validate(),
	); err != nil {
		return StartSessionCommand{}, err
	}
	if date.IsZero() {
		return StartSessionCommand{}, ErrDateIsRequired
	}
	if len(stopOrder) == 0 {
		return StartSessionCommand{}, ErrStopOrderIsRequired
	}
	if startedAt.IsZero() {
		return StartSessionCommand{}, errors.New("startedAt is required")
	}

	cmd := StartSessionCommand{
		sessionID: sessionID,
		courierID: courierID,
		date:      date,
		startedAt: startedAt,
		guard:     guard.NewConstructorGuard(),
	}
	cmd.stopOrder = make([]kernel.UUID, len(stopOrder))
	copy(cmd.stopOrder, stopOrder)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartSessionCommand) Validate() error {
	return c.guard.Validate(ErrStartSessionCommandIsNotConstructed)
}

// SessionID returns the unique identifier for the new session.
func (c StartSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// CourierID returns the courier driving the route.
func (c StartSessionCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Date returns the operating day of the run.
func (c StartSessionCommand) Date() time.Time {
	return c.date
}

// StopOrder returns a copy of the ordered delivery IDs to visit.
func (c StartSessionCommand) StopOrder() []kernel.UUID {
	out := make([]kernel.UUID, len(c.stopOrder))
	copy(out, c.stopOrder)
	return out
}

// StartedAt returns the session start instant.
func (c StartSessionCommand) StartedAt() time.Time {
	return c.startedAt
}
