package commands

import (
	"context"
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"
)

// maxAssignAttempts bounds the optimistic-concurrency retry loop. Two
// operators scanning the same parcel is the common race; more than a couple
// of retries means something else is wrong.
const maxAssignAttempts = 3

// AssignCourierCommandHandler orchestrates the hand-off of a parcel to a
// courier. The delivery update and the ledger entry commit in one
// transaction. On a version conflict the handler re-reads and retries only
// when the parcel's assignment state is unchanged; if a rival assignment got
// in first, the loser surfaces Conflict instead of silently reassigning over
// the winner.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory)
//	cmd, _ := NewAssignCourierCommand(deliveryID, courierID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("assignment failed: %v", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// assignSnapshot captures the assignment state an attempt acted on, so a
// retry can tell a harmless version bump from a rival assignment.
type assignSnapshot struct {
	status  delivery.Status
	courier *kernel.UUID
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
// Requires a DeliveryUoWFactory for coordinating the delivery and ledger writes.
func NewAssignCourierCommandHandler(uowFactory DeliveryUoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the courier assignment command.
// Loads the delivery, applies the assignment and appends an Assigned or
// Reassigned ledger entry depending on whether another courier already owned
// the parcel. Retries up to maxAssignAttempts times on version conflicts,
// but only while the re-read assignment state still matches what the first
// attempt saw; a changed courier or status means a rival operation won and
// the command fails with Conflict.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var observed *assignSnapshot
	var retriable bool
	var lastErr error
	for attempt := 0; attempt < maxAssignAttempts; attempt++ {
		observed, retriable, lastErr = h.assign(ctx, cmd, observed)
		if !retriable {
			return lastErr
		}
	}
	return lastErr
}

func (h AssignCourierCommandHandler) assign(
	ctx context.Context, cmd AssignCourierCommand, observed *assignSnapshot,
) (*assignSnapshot, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return observed, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	d, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return observed, false, err
	}

	// A lost version race is only retriable when the rival write left the
	// assignment untouched (an address attach, for instance). If the courier
	// or status moved, a concurrent assignment won and reapplying would turn
	// the loser into a silent reassignment over the winner.
	if observed != nil && (d.Status() != observed.status || !sameCourier(d.Courier(), observed.courier)) {
		return observed, false, errs.NewConflictError("delivery", d.ID().String())
	}

	snapshot := &assignSnapshot{status: d.Status(), courier: d.Courier()}
	fromStatus := d.Status()
	previousCourier := d.Courier()

	reassigned, err := d.Assign(cmd.CourierID())
	if err != nil {
		return snapshot, false, err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return snapshot, errors.Is(err, errs.ErrConflict), err
	}

	params := history.EntryParams{
		ID:         kernel.NewUUID(),
		DeliveryID: d.ID(),
		Kind:       history.EventAssigned,
		OccurredAt: time.Now(),
		FromStatus: fromStatus,
		ToStatus:   d.Status(),
		CourierID:  d.Courier(),
	}
	if reassigned {
		params.Kind = history.EventReassigned
		params.PreviousCourierID = previousCourier
	}

	entry, err := history.NewEntry(params)
	if err != nil {
		return snapshot, false, err
	}

	if err = uow.HistoryRepository().Add(ctx, entry); err != nil {
		return snapshot, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return snapshot, false, err
	}

	return snapshot, false, nil
}

func sameCourier(a, b *kernel.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.IsEqual(*b)
}
