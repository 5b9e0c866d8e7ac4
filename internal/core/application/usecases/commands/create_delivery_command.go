package commands

import (
	"errors"
	"strings"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrCodeIsRequired = errors.New("code is required")
	ErrBaseIsRequired = errors.New("base is required")
	ErrDateIsRequired = errors.New("date is required")
)

// CreateDeliveryCommand represents a request to register one parcel that left
// a base. The service kind is derived from the free-form service label the
// way the intake sheet writes it, and marketplace references are optional:
// only auto-ingested parcels carry them.
//
// Example:
//
//	deliveryID := kernel.NewUUID()
//	cmd, err := NewCreateDeliveryCommand(deliveryID, day, "BR123456789", "shopee", "centro", "zona-sul", "", "")
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create delivery: %w", err)
//	}
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID   kernel.UUID
	date         time.Time
	code         string
	serviceLabel string
	base         string
	subBase      string
	shipmentRef  string
	orderRef     string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Validates that the delivery ID is valid and date, code and base are
// present. shipmentRef and orderRef may be empty for manually entered parcels.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	date time.Time,
	code string,
	serviceLabel string,
	base string,
	subBase string,
	shipmentRef string,
	orderRef string,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDate(date),
		cmd.setCode(code),
		cmd.setBase(base),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	cmd.serviceLabel = strings.TrimSpace(serviceLabel)
	cmd.subBase = strings.TrimSpace(subBase)
	cmd.shipmentRef = strings.TrimSpace(shipmentRef)
	cmd.orderRef = strings.TrimSpace(orderRef)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the unique identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Date returns the operating day the parcel belongs to.
func (c CreateDeliveryCommand) Date() time.Time {
	return c.date
}

// Code returns the tracking code from the parcel label.
func (c CreateDeliveryCommand) Code() string {
	return c.code
}

// ServiceKind returns the marketplace channel derived from the service label.
func (c CreateDeliveryCommand) ServiceKind() delivery.ServiceKind {
	return delivery.ServiceKindFromLabel(c.serviceLabel)
}

// Base returns the distribution base the parcel left from.
func (c CreateDeliveryCommand) Base() string {
	return c.base
}

// SubBase returns the sub-base, or "".
func (c CreateDeliveryCommand) SubBase() string {
	return c.subBase
}

// ShipmentRef returns the marketplace shipment reference, or "".
func (c CreateDeliveryCommand) ShipmentRef() string {
	return c.shipmentRef
}

// OrderRef returns the marketplace order reference, or "".
func (c CreateDeliveryCommand) OrderRef() string {
	return c.orderRef
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}

	c.date = date
	return nil
}

func (c *CreateDeliveryCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrCodeIsRequired
	}

	c.code = code
	return nil
}

func (c *CreateDeliveryCommand) setBase(base string) error {
	base = strings.TrimSpace(base)
	if base == "" {
		return ErrBaseIsRequired
	}

	c.base = base
	return nil
}
