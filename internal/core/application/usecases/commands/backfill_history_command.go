package commands

import (
	"errors"

	"tracksaidas/internal/pkg/guard"
)

var (
	ErrBackfillHistoryCommandIsNotConstructed = errors.New(
		"BackfillHistoryCommand must be created via NewBackfillHistoryCommand constructor",
	)
	ErrLimitIsInvalid = errors.New("limit must be greater than 0")
)

// BackfillHistoryCommand represents a maintenance pass over deliveries that
// predate the audit ledger. It synthesizes the entries their recorded state
// implies, bounded by limit so a large backlog is worked in batches.
type BackfillHistoryCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewBackfillHistoryCommand creates a command to backfill ledger entries for
// up to limit deliveries per targeted gap.
func NewBackfillHistoryCommand(limit int) (BackfillHistoryCommand, error) {
	if limit <= 0 {
		return BackfillHistoryCommand{}, ErrLimitIsInvalid
	}

	return BackfillHistoryCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BackfillHistoryCommand) Validate() error {
	return c.guard.Validate(ErrBackfillHistoryCommandIsNotConstructed)
}

// Limit returns the batch size per targeted gap.
func (c BackfillHistoryCommand) Limit() int {
	return c.limit
}
