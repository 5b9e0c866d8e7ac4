package commands

import (
	"errors"
	"time"

	"tracksaidas/internal/pkg/guard"
)

var (
	ErrGenerateClosuresCommandIsNotConstructed = errors.New(
		"GenerateClosuresCommand must be created via NewGenerateClosuresCommand constructor",
	)
	ErrPeriodStartIsRequired = errors.New("periodStart is required")
	ErrPeriodEndIsRequired   = errors.New("periodEnd is required")
	ErrPeriodIsInverted      = errors.New("periodEnd precedes periodStart")
)

// GenerateClosuresCommand represents a request to produce billing closures
// for every courier and every base that had terminal work inside the period.
// Both bounds are inclusive and truncated to operating days.
//
// Example:
//
//	cmd, err := NewGenerateClosuresCommand(weekStart, weekEnd)
//	if err != nil {
//	    return err
//	}
//	handler := NewGenerateClosuresCommandHandler(uowFactory)
//	generated, err := handler.Handle(ctx, cmd)
//	log.Printf("generated %d closures", generated)
type GenerateClosuresCommand struct { //nolint:recvcheck //using for validation
	periodStart time.Time
	periodEnd   time.Time

	guard guard.ConstructorGuard
}

// NewGenerateClosuresCommand creates a command to generate closures for a
// period.
func NewGenerateClosuresCommand(periodStart, periodEnd time.Time) (GenerateClosuresCommand, error) {
	if periodStart.IsZero() {
		return GenerateClosuresCommand{}, ErrPeriodStartIsRequired
	}
	if periodEnd.IsZero() {
		return GenerateClosuresCommand{}, ErrPeriodEndIsRequired
	}

	periodStart = periodStart.Truncate(24 * time.Hour)
	periodEnd = periodEnd.Truncate(24 * time.Hour)
	if periodEnd.Before(periodStart) {
		return GenerateClosuresCommand{}, ErrPeriodIsInverted
	}

	return GenerateClosuresCommand{
		periodStart: periodStart,
		periodEnd:   periodEnd,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateClosuresCommand) Validate() error {
	return c.guard.Validate(ErrGenerateClosuresCommandIsNotConstructed)
}

// PeriodStart returns the inclusive start of the period.
func (c GenerateClosuresCommand) PeriodStart() time.Time {
	return c.periodStart
}

// PeriodEnd returns the inclusive end of the period.
func (c GenerateClosuresCommand) PeriodEnd() time.Time {
	return c.periodEnd
}
