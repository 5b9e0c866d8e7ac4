package commands

import (
	"errors"
	"time"

	"tracksaidas/internal/pkg/guard"
)

var (
	ErrReconcileSessionsCommandIsNotConstructed = errors.New(
		"ReconcileSessionsCommand must be created via NewReconcileSessionsCommand constructor",
	)
	ErrCutoffIsRequired = errors.New("cutoff is required")
)

// ReconcileSessionsCommand represents a maintenance sweep over route
// sessions: sessions left active past the cutoff are expired, and rows whose
// finish instant was recorded without the matching status are closed.
type ReconcileSessionsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewReconcileSessionsCommand creates a command to reconcile sessions whose
// operating day ended before the cutoff.
func NewReconcileSessionsCommand(cutoff time.Time) (ReconcileSessionsCommand, error) {
	if cutoff.IsZero() {
		return ReconcileSessionsCommand{}, ErrCutoffIsRequired
	}

	return ReconcileSessionsCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileSessionsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileSessionsCommandIsNotConstructed)
}

// Cutoff returns the instant before which active sessions are stale.
func (c ReconcileSessionsCommand) Cutoff() time.Time {
	return c.cutoff
}
