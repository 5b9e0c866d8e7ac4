package commands

import (
	"errors"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents the hand-off of a parcel to a courier.
// Assigning an already assigned delivery to a different courier is a
// reassignment; the ledger records it as such, with both couriers.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(deliveryID, courierID)
//	if err != nil {
//	    return err
//	}
//	handler := NewAssignCourierCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("assignment failed: %v", err)
//	}
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to hand a delivery to a courier.
func NewAssignCourierCommand(deliveryID, courierID kernel.UUID) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveryID.Validate(),
		courierID.Validate(),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	cmd.deliveryID = deliveryID
	cmd.courierID = courierID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// DeliveryID returns the delivery being handed off.
func (c AssignCourierCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the courier taking responsibility.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}
