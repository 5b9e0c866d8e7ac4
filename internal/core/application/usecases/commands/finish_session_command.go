package commands

import (
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrFinishSessionCommandIsNotConstructed = errors.New(
	"FinishSessionCommand must be created via NewFinishSessionCommand constructor",
)

// FinishSessionCommand represents a courier closing a session early,
// regardless of remaining stops.
type FinishSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	at        time.Time

	guard guard.ConstructorGuard
}

// NewFinishSessionCommand creates a command to finish a session.
func NewFinishSessionCommand(sessionID kernel.UUID, at time.Time) (FinishSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return FinishSessionCommand{}, err
	}
	if at.IsZero() {
		return FinishSessionCommand{}, ErrAtIsRequired
	}

	return FinishSessionCommand{
		sessionID: sessionID,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishSessionCommand) Validate() error {
	return c.guard.Validate(ErrFinishSessionCommandIsNotConstructed)
}

// SessionID returns the session being finished.
func (c FinishSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// At returns the close instant.
func (c FinishSessionCommand) At() time.Time {
	return c.at
}
