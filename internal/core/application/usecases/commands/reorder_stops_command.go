package commands

import (
	"errors"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrReorderStopsCommandIsNotConstructed = errors.New(
	"ReorderStopsCommand must be created via NewReorderStopsCommand constructor",
)

// ReorderStopsCommand represents a courier rearranging the not-yet-visited
// part of a route by hand. The new order must be an exact permutation of the
// remaining stops; visited stops are untouchable.
type ReorderStopsCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	remaining []kernel.UUID

	guard guard.ConstructorGuard
}

// NewReorderStopsCommand creates a command to reorder the remaining stops.
func NewReorderStopsCommand(sessionID kernel.UUID, remaining []kernel.UUID) (ReorderStopsCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return ReorderStopsCommand{}, err
	}

	cmd := ReorderStopsCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}
	cmd.remaining = make([]kernel.UUID, len(remaining))
	copy(cmd.remaining, remaining)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReorderStopsCommand) Validate() error {
	return c.guard.Validate(ErrReorderStopsCommandIsNotConstructed)
}

// SessionID returns the session being reordered.
func (c ReorderStopsCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Remaining returns a copy of the new order for the unvisited stops.
func (c ReorderStopsCommand) Remaining() []kernel.UUID {
	out := make([]kernel.UUID, len(c.remaining))
	copy(out, c.remaining)
	return out
}
