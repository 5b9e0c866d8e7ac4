package commands

import (
	"errors"
	"strings"
	"time"

	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/pkg/guard"
)

var (
	ErrGenerateClosureCommandIsNotConstructed = errors.New(
		"GenerateClosureCommand must be created via NewGenerateClosureCommand constructor",
	)
	ErrSubjectIsRequired = errors.New("subject is required")
)

// GenerateClosureCommand represents a request to produce the billing closure
// of one subject for a period. Unlike the batch sweep, which skips tuples
// that already have a closure, the caller here asked for this specific
// closure and an existing one fails the command with Conflict.
type GenerateClosureCommand struct { //nolint:recvcheck //using for validation
	scope       closure.Scope
	subject     string
	periodStart time.Time
	periodEnd   time.Time

	guard guard.ConstructorGuard
}

// NewGenerateClosureCommand creates a command to generate one closure.
// Both period bounds are inclusive and truncated to operating days.
func NewGenerateClosureCommand(
	scope closure.Scope, subject string, periodStart, periodEnd time.Time,
) (GenerateClosureCommand, error) {
	if err := scope.Validate(); err != nil {
		return GenerateClosureCommand{}, err
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return GenerateClosureCommand{}, ErrSubjectIsRequired
	}
	if periodStart.IsZero() {
		return GenerateClosureCommand{}, ErrPeriodStartIsRequired
	}
	if periodEnd.IsZero() {
		return GenerateClosureCommand{}, ErrPeriodEndIsRequired
	}

	periodStart = periodStart.Truncate(24 * time.Hour)
	periodEnd = periodEnd.Truncate(24 * time.Hour)
	if periodEnd.Before(periodStart) {
		return GenerateClosureCommand{}, ErrPeriodIsInverted
	}

	return GenerateClosureCommand{
		scope:       scope,
		subject:     subject,
		periodStart: periodStart,
		periodEnd:   periodEnd,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateClosureCommand) Validate() error {
	return c.guard.Validate(ErrGenerateClosureCommandIsNotConstructed)
}

// Scope returns the rollup dimension.
func (c GenerateClosureCommand) Scope() closure.Scope {
	return c.scope
}

// Subject returns the courier ID or base name being closed.
func (c GenerateClosureCommand) Subject() string {
	return c.subject
}

// PeriodStart returns the inclusive start of the period.
func (c GenerateClosureCommand) PeriodStart() time.Time {
	return c.periodStart
}

// PeriodEnd returns the inclusive end of the period.
func (c GenerateClosureCommand) PeriodEnd() time.Time {
	return c.periodEnd
}
