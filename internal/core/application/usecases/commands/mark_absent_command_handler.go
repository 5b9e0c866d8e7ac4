package commands

import (
	"context"
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/ports"
	"tracksaidas/internal/pkg/errs"
)

// MarkAbsentCommandHandler records a failed delivery attempt. The reason is
// checked against the absence-reason catalog first; an inactive or unknown
// reason fails the command before any state changes.
type MarkAbsentCommandHandler struct {
	uowFactory DeliveryUoWFactory
	reasons    ports.AbsenceReasonCatalog
}

// NewMarkAbsentCommandHandler creates a handler for absence recording.
func NewMarkAbsentCommandHandler(
	uowFactory DeliveryUoWFactory, reasons ports.AbsenceReasonCatalog,
) MarkAbsentCommandHandler {
	return MarkAbsentCommandHandler{
		uowFactory: uowFactory,
		reasons:    reasons,
	}
}

// Handle processes the absence command.
// Validates the reason against the catalog, applies the status change and
// appends the MarkedAbsent ledger entry in one transaction.
func (h MarkAbsentCommandHandler) Handle(ctx context.Context, cmd MarkAbsentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	reason, err := h.reasons.Get(ctx, cmd.ReasonID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewInvalidReferenceError("absenceReasonID", cmd.ReasonID().String())
		}
		return err
	}
	if !reason.Active {
		return errs.NewInvalidReferenceError("absenceReasonID", cmd.ReasonID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = d.MarkAbsent(cmd.ReasonID()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	entry, err := history.NewEntry(history.EntryParams{
		ID:         kernel.NewUUID(),
		DeliveryID: d.ID(),
		Kind:       history.EventMarkedAbsent,
		OccurredAt: time.Now(),
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
