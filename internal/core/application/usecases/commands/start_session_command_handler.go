package commands

import (
	"context"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/domain/model/session"
	"tracksaidas/internal/pkg/errs"
)

// StartSessionCommandHandler starts a route session for a courier.
// Stops are validated against the courier's deliveries for the operating day:
// a stop pointing at someone else's parcel (or at nothing) fails with an
// invalid-reference error before the session exists. The repository enforces
// one active session per courier per day.
type StartSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewStartSessionCommandHandler creates a handler for session starts.
func NewStartSessionCommandHandler(uowFactory SessionUoWFactory) StartSessionCommandHandler {
	return StartSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the session start command.
func (h StartSessionCommandHandler) Handle(ctx context.Context, cmd StartSessionCommand) error {
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

	deliveries, err := uow.DeliveryRepository().GetAllForCourierOnDate(ctx, cmd.CourierID(), cmd.Date())
	if err != nil {
		return err
	}

	owned := make(map[kernel.UUID]struct{}, len(deliveries))
	for _, d := range deliveries {
		owned[d.ID()] = struct{}{}
	}
	for _, stop := range cmd.StopOrder() {
		if _, ok := owned[stop]; !ok {
			return errs.NewInvalidReferenceError("stopOrder", stop.String())
		}
	}

	s, err := session.NewRouteSession(
		cmd.SessionID(), cmd.CourierID(), cmd.Date(), cmd.StopOrder(), cmd.StartedAt())
	if err != nil {
		return err
	}

	if err = uow.SessionRepository().Add(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
