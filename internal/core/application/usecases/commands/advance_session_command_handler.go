package commands

import (
	"context"
)

// AdvanceSessionCommandHandler moves a session's cursor past one stop.
// Both the domain compare-and-set and the repository's version check guard
// the advance; either mismatch surfaces as a conflict and the device must
// re-read the session.
type AdvanceSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewAdvanceSessionCommandHandler creates a handler for session advances.
func NewAdvanceSessionCommandHandler(uowFactory SessionUoWFactory) AdvanceSessionCommandHandler {
	return AdvanceSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advance command. Returns true when the advance visited
// the last stop and closed the session.
func (h AdvanceSessionCommandHandler) Handle(ctx context.Context, cmd AdvanceSessionCommand) (finished bool, err error) {
	if err = cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	s, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return false, err
	}

	finished, err = s.Advance(cmd.ExpectedIndex(), cmd.At())
	if err != nil {
		return false, err
	}

	if err = sessionRepo.Update(ctx, s); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return finished, nil
}
