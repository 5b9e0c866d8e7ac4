package commands

import (
	"context"

	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/ports"
)

// MarkDeliveredCommandHandler confirms a handover and bills it. The status
// change, the billing item priced at this instant and the Delivered ledger
// entry commit in one transaction: a billed delivery without an outcome (or
// the reverse) can never be observed.
//
// Example:
//
//	handler := NewMarkDeliveredCommandHandler(uowFactory, pricing)
//	cmd, _ := NewMarkDeliveredCommand(deliveryID, time.Now())
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("delivery confirmation failed: %v", err)
//	}
type MarkDeliveredCommandHandler struct {
	uowFactory BillingUoWFactory
	pricing    ports.PricingCatalog
}

// NewMarkDeliveredCommandHandler creates a handler for delivery confirmation.
// Requires a BillingUoWFactory and the pricing catalog used to freeze the
// unit price at confirmation time.
func NewMarkDeliveredCommandHandler(
	uowFactory BillingUoWFactory, pricing ports.PricingCatalog,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle processes the delivery confirmation command.
// Looks up the price for the delivery's service kind and scope, applies the
// status change and writes the billing item and ledger entry atomically.
// Fails with NotFound when no price row covers the delivery's scope.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	if err = d.MarkDelivered(cmd.DeliveredAt()); err != nil {
		return err
	}

	price, err := h.pricing.Price(ctx, d.ServiceKind(), d.Base(), d.SubBase())
	if err != nil {
		return err
	}

	item, err := closure.NewBillingItem(closure.BillingItemParams{
		ID:          kernel.NewUUID(),
		DeliveryID:  d.ID(),
		CourierID:   *d.Courier(),
		Date:        d.Date(),
		ServiceKind: d.ServiceKind(),
		Base:        d.Base(),
		SubBase:     d.SubBase(),
		UnitPrice:   price,
	})
	if err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = uow.BillingRepository().Add(ctx, item); err != nil {
		return err
	}

	entry, err := history.NewEntry(history.EntryParams{
		ID:         kernel.NewUUID(),
		DeliveryID: d.ID(),
		Kind:       history.EventDelivered,
		OccurredAt: cmd.DeliveredAt(),
		FromStatus: fromStatus,
		ToStatus:   d.Status(),
		CourierID:  d.Courier(),
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
