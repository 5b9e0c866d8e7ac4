package commands

import (
	"context"
)

// FinishSessionCommandHandler closes an active session at the given instant.
type FinishSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewFinishSessionCommandHandler creates a handler for session finishes.
func NewFinishSessionCommandHandler(uowFactory SessionUoWFactory) FinishSessionCommandHandler {
	return FinishSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the finish command.
func (h FinishSessionCommandHandler) Handle(ctx context.Context, cmd FinishSessionCommand) error {
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

	if err = s.Finish(cmd.At()); err != nil {
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
