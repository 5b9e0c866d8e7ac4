package commands

import (
	"context"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/domain/services"
)

// OptimizeRouteCommandHandler reorders the unvisited stops of a session using
// the route planner. Stops without a geocoded address keep their relative
// position at the end of the route; the visited prefix is never touched.
//
// Example:
//
//	handler := NewOptimizeRouteCommandHandler(uowFactory)
//	cmd, _ := NewOptimizeRouteCommand(sessionID)
//	order, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("optimization failed: %v", err)
//	}
type OptimizeRouteCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewOptimizeRouteCommandHandler creates a handler for route optimization.
func NewOptimizeRouteCommandHandler(uowFactory SessionUoWFactory) OptimizeRouteCommandHandler {
	return OptimizeRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the optimization command and returns the new order of the
// remaining stops.
func (h OptimizeRouteCommandHandler) Handle(ctx context.Context, cmd OptimizeRouteCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	deliveryRepo := uow.DeliveryRepository()

	s, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}

	remaining := s.StopOrder()[s.NextIndex():]
	stops := make([]services.Stop, 0, len(remaining))
	for _, deliveryID := range remaining {
		d, getErr := deliveryRepo.Get(ctx, deliveryID)
		if getErr != nil {
			return nil, getErr
		}
		stops = append(stops, services.Stop{
			DeliveryID: d.ID(),
			Point:      d.Point(),
		})
	}

	optimized, err := services.NewRoutePlanner().Optimize(stops)
	if err != nil {
		return nil, err
	}

	order := make([]kernel.UUID, len(optimized))
	for i, stop := range optimized {
		order[i] = stop.DeliveryID
	}

	if err = s.Reorder(order); err != nil {
		return nil, err
	}

	if err = sessionRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
