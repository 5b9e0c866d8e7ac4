package commands

import (
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var (
	ErrAdvanceSessionCommandIsNotConstructed = errors.New(
		"AdvanceSessionCommand must be created via NewAdvanceSessionCommand constructor",
	)
	ErrExpectedIndexIsInvalid = errors.New("expectedIndex must not be negative")
	ErrAtIsRequired           = errors.New("at is required")
)

// AdvanceSessionCommand represents a courier reporting the current stop as
// visited. The expected index is the cursor value the device observed; it is
// the compare half of the compare-and-set that keeps two devices driving the
// same session from both claiming the same stop.
type AdvanceSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID     kernel.UUID
	expectedIndex int
	at            time.Time

	guard guard.ConstructorGuard
}

// NewAdvanceSessionCommand creates a command to advance a session's cursor.
func NewAdvanceSessionCommand(sessionID kernel.UUID, expectedIndex int, at time.Time) (AdvanceSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return AdvanceSessionCommand{}, err
	}
	if expectedIndex < 0 {
		return AdvanceSessionCommand{}, ErrExpectedIndexIsInvalid
	}
	if at.IsZero() {
		return AdvanceSessionCommand{}, ErrAtIsRequired
	}

	return AdvanceSessionCommand{
		sessionID:     sessionID,
		expectedIndex: expectedIndex,
		at:            at,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceSessionCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceSessionCommandIsNotConstructed)
}

// SessionID returns the session being advanced.
func (c AdvanceSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ExpectedIndex returns the cursor value the caller observed.
func (c AdvanceSessionCommand) ExpectedIndex() int {
	return c.expectedIndex
}

// At returns the instant of the visit.
func (c AdvanceSessionCommand) At() time.Time {
	return c.at
}
