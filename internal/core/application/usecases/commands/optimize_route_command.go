package commands

import (
	"errors"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrOptimizeRouteCommandIsNotConstructed = errors.New(
	"OptimizeRouteCommand must be created via NewOptimizeRouteCommand constructor",
)

// OptimizeRouteCommand represents a request to let the route planner reorder
// the not-yet-visited stops of a session by travel distance.
type OptimizeRouteCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewOptimizeRouteCommand creates a command to optimize a session's route.
func NewOptimizeRouteCommand(sessionID kernel.UUID) (OptimizeRouteCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return OptimizeRouteCommand{}, err
	}

	return OptimizeRouteCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c OptimizeRouteCommand) Validate() error {
	return c.guard.Validate(ErrOptimizeRouteCommandIsNotConstructed)
}

// SessionID returns the session being optimized.
func (c OptimizeRouteCommand) SessionID() kernel.UUID {
	return c.sessionID
}
