package commands

import (
	"context"
	"time"
)

// ReconcileSessionsCommandHandler repairs session state drift. Sessions
// still active past the cutoff are expired through the domain; rows with a
// finish instant but an active status are corrected by the repository sweep,
// since such rows violate the aggregate's invariants and cannot be loaded at
// all.
type ReconcileSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewReconcileSessionsCommandHandler creates a handler for the session sweep.
func NewReconcileSessionsCommandHandler(uowFactory SessionUoWFactory) ReconcileSessionsCommandHandler {
	return ReconcileSessionsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reconciliation command and returns how many sessions
// were corrected.
func (h ReconcileSessionsCommandHandler) Handle(ctx context.Context, cmd ReconcileSessionsCommand) (int, error) {
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

	sessionRepo := uow.SessionRepository()

	repaired, err := sessionRepo.ReconcileFinished(ctx)
	if err != nil {
		return 0, err
	}
	corrected := int(repaired)

	stale, err := sessionRepo.GetAllActiveBefore(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for _, s := range stale {
		if err = s.Expire(now); err != nil {
			return 0, err
		}
		if err = sessionRepo.Update(ctx, s); err != nil {
			return 0, err
		}
		corrected++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return corrected, nil
}
