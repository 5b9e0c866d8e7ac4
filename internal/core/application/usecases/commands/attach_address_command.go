package commands

import (
	"errors"
	"strings"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var (
	ErrAttachAddressCommandIsNotConstructed = errors.New(
		"AttachAddressCommand must be created via NewAttachAddressCommand constructor",
	)
	ErrFormattedAddressIsRequired = errors.New("formattedAddress is required")
)

// AttachAddressCommand represents a request to capture or correct the
// geocoded destination of a delivery. The source records how the address was
// captured (manual, OCR, voice) so data quality can be tracked per channel.
type AttachAddressCommand struct { //nolint:recvcheck //using for validation
	deliveryID       kernel.UUID
	latitude         float64
	longitude        float64
	formattedAddress string
	source           delivery.AddressSource

	guard guard.ConstructorGuard
}

// NewAttachAddressCommand creates a command to attach an address to a
// delivery. Coordinates are validated by the domain when applied; the command
// only requires a valid delivery ID, a non-blank address and a known source.
func NewAttachAddressCommand(
	deliveryID kernel.UUID,
	latitude float64,
	longitude float64,
	formattedAddress string,
	source delivery.AddressSource,
) (AttachAddressCommand, error) {
	cmd := AttachAddressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setFormattedAddress(formattedAddress),
		source.Validate(),
	); err != nil {
		return AttachAddressCommand{}, err
	}

	cmd.latitude = latitude
	cmd.longitude = longitude
	cmd.source = source
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachAddressCommand) Validate() error {
	return c.guard.Validate(ErrAttachAddressCommandIsNotConstructed)
}

// DeliveryID returns the delivery to attach the address to.
func (c AttachAddressCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Latitude returns the destination latitude.
func (c AttachAddressCommand) Latitude() float64 {
	return c.latitude
}

// Longitude returns the destination longitude.
func (c AttachAddressCommand) Longitude() float64 {
	return c.longitude
}

// FormattedAddress returns the human-readable address text.
func (c AttachAddressCommand) FormattedAddress() string {
	return c.formattedAddress
}

// Source returns how the address was captured.
func (c AttachAddressCommand) Source() delivery.AddressSource {
	return c.source
}

func (c *AttachAddressCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AttachAddressCommand) setFormattedAddress(formattedAddress string) error {
	formattedAddress = strings.TrimSpace(formattedAddress)
	if formattedAddress == "" {
		return ErrFormattedAddressIsRequired
	}

	c.formattedAddress = formattedAddress
	return nil
}
