package commands

import (
	"errors"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrMarkAbsentCommandIsNotConstructed = errors.New(
	"MarkAbsentCommand must be created via NewMarkAbsentCommand constructor",
)

// MarkAbsentCommand represents a failed delivery attempt: the recipient was
// not there, the address was wrong, the building was closed. The reason must
// reference an active row of the absence-reason catalog.
type MarkAbsentCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	reasonID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkAbsentCommand creates a command to record a failed attempt.
func NewMarkAbsentCommand(deliveryID, reasonID kernel.UUID) (MarkAbsentCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		reasonID.Validate(),
	); err != nil {
		return MarkAbsentCommand{}, err
	}

	return MarkAbsentCommand{
		deliveryID: deliveryID,
		reasonID:   reasonID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkAbsentCommand) Validate() error {
	return c.guard.Validate(ErrMarkAbsentCommandIsNotConstructed)
}

// DeliveryID returns the delivery the attempt failed for.
func (c MarkAbsentCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ReasonID returns the catalogued absence reason.
func (c MarkAbsentCommand) ReasonID() kernel.UUID {
	return c.reasonID
}
