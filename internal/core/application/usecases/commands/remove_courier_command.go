package commands

import (
	"errors"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrRemoveCourierCommandIsNotConstructed = errors.New(
	"RemoveCourierCommand must be created via NewRemoveCourierCommand constructor",
)

// RemoveCourierCommand represents taking a parcel back from its courier and
// returning it to the pending pool.
type RemoveCourierCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCourierCommand creates a command to unassign a delivery.
func NewRemoveCourierCommand(deliveryID kernel.UUID) (RemoveCourierCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return RemoveCourierCommand{}, err
	}

	return RemoveCourierCommand{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCourierCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCourierCommandIsNotConstructed)
}

// DeliveryID returns the delivery being unassigned.
func (c RemoveCourierCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}
