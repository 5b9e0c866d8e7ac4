package commands

import (
	"context"
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"
)

// GenerateClosuresCommandHandler produces billing closures for a period.
// Subjects are enumerated from terminal deliveries inside the period; each
// subject gets its own transaction, so one bad subject never rolls back the
// rest of the batch. An existing closure for the same (scope, subject,
// period) tuple is skipped: the Exists check catches most reruns cheaply and
// the store's uniqueness constraint is the final arbiter between concurrent
// generators.
type GenerateClosuresCommandHandler struct {
	uowFactory ClosureUoWFactory
}

// NewGenerateClosuresCommandHandler creates a handler for closure generation.
func NewGenerateClosuresCommandHandler(uowFactory ClosureUoWFactory) GenerateClosuresCommandHandler {
	return GenerateClosuresCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the generation command and returns how many closures were
// written. Already-existing closures count as skips, not failures.
func (h GenerateClosuresCommandHandler) Handle(ctx context.Context, cmd GenerateClosuresCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	courierIDs, bases, err := uow.DeliveryRepository().ListSubjects(ctx, cmd.PeriodStart(), cmd.PeriodEnd())
	rollbackErr := uow.Rollback(ctx)
	if err != nil {
		return 0, err
	}
	if rollbackErr != nil {
		return 0, rollbackErr
	}

	generated := 0
	for _, courierID := range courierIDs {
		ok, genErr := h.generateOne(ctx, closure.ScopeCourier, courierID, cmd)
		if genErr != nil {
			return generated, genErr
		}
		if ok {
			generated++
		}
	}
	for _, base := range bases {
		ok, genErr := h.generateOne(ctx, closure.ScopeBase, base, cmd)
		if genErr != nil {
			return generated, genErr
		}
		if ok {
			generated++
		}
	}

	return generated, nil
}

func (h GenerateClosuresCommandHandler) generateOne(
	ctx context.Context, scope closure.Scope, subject string, cmd GenerateClosuresCommand,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	closureRepo := uow.ClosureRepository()

	exists, err := closureRepo.Exists(ctx, scope, subject, cmd.PeriodStart(), cmd.PeriodEnd())
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	items, err := loadClosureItems(ctx, uow, scope, subject, cmd.PeriodStart(), cmd.PeriodEnd())
	if err != nil {
		return false, err
	}

	c, err := closure.NewClosure(closure.ClosureParams{
		ID:          kernel.NewUUID(),
		Scope:       scope,
		Subject:     subject,
		PeriodStart: cmd.PeriodStart(),
		PeriodEnd:   cmd.PeriodEnd(),
		Status:      closure.StatusGenerated,
		GeneratedAt: time.Now(),
		LineItems:   closure.BuildLineItems(items),
	})
	if err != nil {
		return false, err
	}

	if err = closureRepo.Add(ctx, c); err != nil {
		// another generator won the race for this tuple
		if errors.Is(err, errs.ErrConflict) {
			return false, nil
		}
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// loadClosureItems reads the billing items a closure rolls up. A courier
// subject is its UUID in string form; a base subject is the base name.
func loadClosureItems(
	ctx context.Context, uow ClosureUoW, scope closure.Scope, subject string, periodStart, periodEnd time.Time,
) ([]*closure.BillingItem, error) {
	billingRepo := uow.BillingRepository()

	if scope == closure.ScopeCourier {
		courierID, err := kernel.UUIDFromString(subject)
		if err != nil {
			return nil, err
		}
		return billingRepo.GetAllForCourier(ctx, courierID, periodStart, periodEnd)
	}
	return billingRepo.GetAllForBase(ctx, subject, periodStart, periodEnd)
}
