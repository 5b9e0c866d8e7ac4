package commands

import (
	"context"
)

// ReorderStopsCommandHandler applies a manual reorder of the remaining stops.
type ReorderStopsCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewReorderStopsCommandHandler creates a handler for manual reorders.
func NewReorderStopsCommandHandler(uowFactory SessionUoWFactory) ReorderStopsCommandHandler {
	return ReorderStopsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reorder command.
func (h ReorderStopsCommandHandler) Handle(ctx context.Context, cmd ReorderStopsCommand) error {
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

	sessionRepo := uow.SessionRepository()

	s, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = s.Reorder(cmd.Remaining()); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
