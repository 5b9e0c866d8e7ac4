package commands

import (
	"context"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
)

// CreateDeliveryCommandHandler handles the business logic for delivery
// registration. Creates the parcel in Pending status, links marketplace
// references when present and appends the Created ledger entry in the same
// transaction, so no delivery ever exists without the start of its audit
// trail.
//
// Example:
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory)
//	cmd, _ := NewCreateDeliveryCommand(kernel.NewUUID(), day, "BR123", "flex", "centro", "", "", "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("delivery registration failed: %w", err)
//	}
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery registration.
// Requires a DeliveryUoWFactory for transactional persistence.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery registration command.
// Creates the delivery in Pending status, optionally links the shipment
// reference and appends the Created ledger entry. The repository rejects the
// insert with Conflict when an active delivery already carries the same
// shipment reference, which keeps marketplace auto-ingestion idempotent.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := delivery.NewDelivery(
		cmd.DeliveryID(), cmd.Date(), cmd.Code(), cmd.ServiceKind(), cmd.Base(), cmd.SubBase())
	if err != nil {
		return err
	}

	if cmd.ShipmentRef() != "" {
		if err = d.LinkShipment(cmd.ShipmentRef(), cmd.OrderRef()); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		return err
	}

	entry, err := history.NewEntry(history.EntryParams{
		ID:         kernel.NewUUID(),
		DeliveryID: d.ID(),
		Kind:       history.EventCreated,
		OccurredAt: time.Now(),
		FromStatus: delivery.Unknown,
		ToStatus:   d.Status(),
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
