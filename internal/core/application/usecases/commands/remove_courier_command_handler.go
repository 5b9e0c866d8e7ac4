package commands

import (
	"context"
	"time"

	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
)

// RemoveCourierCommandHandler returns an assigned parcel to the pending pool.
// The Unassigned ledger entry keeps the removed courier, so the chain of
// custody survives the hand-back.
type RemoveCourierCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewRemoveCourierCommandHandler creates a handler for courier removal.
func NewRemoveCourierCommandHandler(uowFactory DeliveryUoWFactory) RemoveCourierCommandHandler {
	return RemoveCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the courier removal command.
func (h RemoveCourierCommandHandler) Handle(ctx context.Context, cmd RemoveCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	d, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	fromStatus := d.Status()
	previousCourier := d.Courier()

	if err = d.Unassign(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	entry, err := history.NewEntry(history.EntryParams{
		ID:                kernel.NewUUID(),
		DeliveryID:        d.ID(),
		Kind:              history.EventUnassigned,
		OccurredAt:        time.Now(),
		FromStatus:        fromStatus,
		ToStatus:          d.Status(),
		PreviousCourierID: previousCourier,
	})
	if err != nil {
		return err
	}

	if err = uow.HistoryRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
