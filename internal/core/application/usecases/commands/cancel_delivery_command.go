package commands

import (
	"errors"
	"strings"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand represents an operator override that removes a parcel
// from the operation: returned to sender, lost, or entered by mistake. The
// actor and the optional note go to the ledger; a nil actor marks an
// automated cancellation.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    *kernel.UUID
	note       string

	guard guard.ConstructorGuard
}

// NewCancelDeliveryCommand creates a command to cancel a delivery.
// actorID may be nil for automated cancellations; the note may be empty.
func NewCancelDeliveryCommand(deliveryID kernel.UUID, actorID *kernel.UUID, note string) (CancelDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return CancelDeliveryCommand{}, err
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return CancelDeliveryCommand{}, err
		}
	}

	return CancelDeliveryCommand{
		deliveryID: deliveryID,
		actorID:    actorID,
		note:       strings.TrimSpace(note),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being cancelled.
func (c CancelDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns the user behind the cancellation, or nil.
func (c CancelDeliveryCommand) Actor() *kernel.UUID {
	return c.actorID
}

// Note returns free-form operator context, or "".
func (c CancelDeliveryCommand) Note() string {
	return c.note
}
