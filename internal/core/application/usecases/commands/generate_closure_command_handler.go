package commands

import (
	"context"
	"time"

	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"
)

// GenerateClosureCommandHandler produces the billing closure of one subject
// on demand. An existing closure for the (scope, subject, period) tuple
// fails with Conflict; the skip semantics of the batch handler are reserved
// for the scheduled sweep, where reruns are expected.
type GenerateClosureCommandHandler struct {
	uowFactory ClosureUoWFactory
}

// NewGenerateClosureCommandHandler creates a handler for single-subject
// closure generation.
func NewGenerateClosureCommandHandler(uowFactory ClosureUoWFactory) GenerateClosureCommandHandler {
	return GenerateClosureCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the generation command and returns the new closure's ID.
func (h GenerateClosureCommandHandler) Handle(ctx context.Context, cmd GenerateClosureCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	closureRepo := uow.ClosureRepository()

	exists, err := closureRepo.Exists(ctx, cmd.Scope(), cmd.Subject(), cmd.PeriodStart(), cmd.PeriodEnd())
	if err != nil {
		return kernel.UUID{}, err
	}
	if exists {
		return kernel.UUID{}, errs.NewConflictError("closure", cmd.Subject())
	}

	items, err := loadClosureItems(ctx, uow, cmd.Scope(), cmd.Subject(), cmd.PeriodStart(), cmd.PeriodEnd())
	if err != nil {
		return kernel.UUID{}, err
	}

	c, err := closure.NewClosure(closure.ClosureParams{
		ID:          kernel.NewUUID(),
		Scope:       cmd.Scope(),
		Subject:     cmd.Subject(),
		PeriodStart: cmd.PeriodStart(),
		PeriodEnd:   cmd.PeriodEnd(),
		Status:      closure.StatusGenerated,
		GeneratedAt: time.Now(),
		LineItems:   closure.BuildLineItems(items),
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	// a concurrent generator that beat the Exists check surfaces here as
	// Conflict from the uniqueness constraint
	if err = closureRepo.Add(ctx, c); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return c.ID(), nil
}
