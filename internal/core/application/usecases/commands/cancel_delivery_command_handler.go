package commands

import (
	"context"
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"
)

// CancelDeliveryCommandHandler removes a parcel from the operation.
// If the delivery was already billed (imported data can carry a billing item
// even while the status looks non-terminal) the item is voided in the same
// transaction, so closure math subtracts it instead of double-counting.
type CancelDeliveryCommandHandler struct {
	uowFactory BillingUoWFactory
}

// NewCancelDeliveryCommandHandler creates a handler for delivery cancellation.
func NewCancelDeliveryCommandHandler(uowFactory BillingUoWFactory) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
// Applies the status change, appends the Cancelled ledger entry and voids the
// delivery's billing item when one exists. The courier reference, if any,
// stays on the delivery for the audit trail.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	if err = d.Cancel(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	entry, err := history.NewEntry(history.EntryParams{
		ID:         kernel.NewUUID(),
		DeliveryID: d.ID(),
		Kind:       history.EventCancelled,
		OccurredAt: time.Now(),
		FromStatus: fromStatus,
		ToStatus:   d.Status(),
		CourierID:  d.Courier(),
		ActorID:    cmd.Actor(),
		Note:       cmd.Note(),
	})
	if err != nil {
		return err
	}

	if err = uow.HistoryRepository().Add(ctx, entry); err != nil {
		return err
	}

	billingRepo := uow.BillingRepository()

	item, err := billingRepo.GetForDelivery(ctx, d.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// never billed, nothing to void
	case err != nil:
		return err
	case !item.IsCancelled():
		item.Void()
		if err = billingRepo.Update(ctx, item); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
