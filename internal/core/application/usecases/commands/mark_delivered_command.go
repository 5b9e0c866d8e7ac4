package commands

import (
	"errors"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var (
	ErrMarkDeliveredCommandIsNotConstructed = errors.New(
		"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
	)
	ErrDeliveredAtIsRequired = errors.New("deliveredAt is required")
)

// MarkDeliveredCommand represents a successful handover of a parcel.
// Delivering is the billable outcome: handling it freezes the price the
// delivery is worth at that moment.
//
// Example:
//
//	cmd, err := NewMarkDeliveredCommand(deliveryID, time.Now())
//	if err != nil {
//	    return err
//	}
//	handler := NewMarkDeliveredCommandHandler(uowFactory, pricing)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("delivery confirmation failed: %v", err)
//	}
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	deliveredAt time.Time

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to confirm a handover.
func NewMarkDeliveredCommand(deliveryID kernel.UUID, deliveredAt time.Time) (MarkDeliveredCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return MarkDeliveredCommand{}, err
	}
	if deliveredAt.IsZero() {
		return MarkDeliveredCommand{}, ErrDeliveredAtIsRequired
	}

	return MarkDeliveredCommand{
		deliveryID:  deliveryID,
		deliveredAt: deliveredAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// DeliveryID returns the delivery being confirmed.
func (c MarkDeliveredCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DeliveredAt returns the handover instant.
func (c MarkDeliveredCommand) DeliveredAt() time.Time {
	return c.deliveredAt
}
