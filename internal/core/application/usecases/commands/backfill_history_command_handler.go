package commands

import (
	"context"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/ports"
)

// BackfillHistoryCommandHandler synthesizes ledger entries for deliveries
// imported before the ledger existed. Two gaps are targeted: deliveries with
// no entries at all get a Created entry dated to their operating day, and
// delivered parcels missing their Delivered entry get one dated to the
// recorded handover instant. The pass is idempotent: every write is guarded
// by a per-kind existence check, so rerunning it converges instead of
// duplicating.
type BackfillHistoryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewBackfillHistoryCommandHandler creates a handler for the history backfill.
func NewBackfillHistoryCommandHandler(uowFactory DeliveryUoWFactory) BackfillHistoryCommandHandler {
	return BackfillHistoryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the backfill command and returns how many entries were
// written.
func (h BackfillHistoryCommandHandler) Handle(ctx context.Context, cmd BackfillHistoryCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	historyRepo := uow.HistoryRepository()

	written := 0

	noHistory, err := deliveryRepo.GetAllWithoutHistory(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}
	for _, d := range noHistory {
		n, fillErr := h.fillCreated(ctx, historyRepo, d)
		if fillErr != nil {
			return 0, fillErr
		}
		written += n
	}

	missingDelivered, err := deliveryRepo.GetAllDeliveredWithoutDeliveredEvent(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}
	for _, d := range missingDelivered {
		n, fillErr := h.fillDelivered(ctx, historyRepo, d)
		if fillErr != nil {
			return 0, fillErr
		}
		written += n
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return written, nil
}

func (h BackfillHistoryCommandHandler) fillCreated(
	ctx context.Context, historyRepo ports.HistoryRepository, d *delivery.Delivery,
) (int, error) {
	has, err := historyRepo.HasEntryOfKind(ctx, d.ID(), history.EventCreated)
	if err != nil {
		return 0, err
	}
	if has {
		return 0, nil
	}

	// the exact creation instant was never recorded; the operating day is
	// the closest truthful approximation
	entry, err := history.NewEntry(history.EntryParams{
		ID:         kernel.NewUUID(),
		DeliveryID: d.ID(),
		Kind:       history.EventCreated,
		OccurredAt: d.Date(),
		FromStatus: delivery.Unknown,
		ToStatus:   delivery.Pending,
	})
	if err != nil {
		return 0, err
	}

	if err = historyRepo.Add(ctx, entry); err != nil {
		return 0, err
	}
	return 1, nil
}

func (h BackfillHistoryCommandHandler) fillDelivered(
	ctx context.Context, historyRepo ports.HistoryRepository, d *delivery.Delivery,
) (int, error) {
	has, err := historyRepo.HasEntryOfKind(ctx, d.ID(), history.EventDelivered)
	if err != nil {
		return 0, err
	}
	if has {
		return 0, nil
	}

	entry, err := history.NewEntry(history.EntryParams{
		ID:         kernel.NewUUID(),
		DeliveryID: d.ID(),
		Kind:       history.EventDelivered,
		OccurredAt: *d.DeliveredAt(),
		FromStatus: delivery.Assigned,
		ToStatus:   delivery.Delivered,
		CourierID:  d.Courier(),
	})
	if err != nil {
		return 0, err
	}

	if err = historyRepo.Add(ctx, entry); err != nil {
		return 0, err
	}
	return 1, nil
}
