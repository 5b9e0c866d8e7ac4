package commands

import (
	"context"

	"tracksaidas/internal/core/domain/model/kernel"
)

// AttachAddressCommandHandler applies a captured address to a delivery.
// The domain rejects the update on terminal deliveries; corrections while the
// parcel is still in flight simply overwrite the previous capture.
type AttachAddressCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewAttachAddressCommandHandler creates a handler for address capture.
func NewAttachAddressCommandHandler(uowFactory DeliveryUoWFactory) AttachAddressCommandHandler {
	return AttachAddressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the address capture command.
func (h AttachAddressCommandHandler) Handle(ctx context.Context, cmd AttachAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	point, err := kernel.NewGeoPoint(cmd.Latitude(), cmd.Longitude())
	if err != nil {
		return err
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

	if err = d.AttachGeo(point, cmd.FormattedAddress(), cmd.Source()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
