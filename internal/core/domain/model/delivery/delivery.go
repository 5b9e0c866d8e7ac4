package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not created
	// through NewDelivery or RestoreDelivery. This ensures all deliveries are validated.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")
)

// Delivery represents one parcel that left a base and must reach a recipient.
// It is the aggregate root that manages the parcel lifecycle from creation
// through courier assignment to a terminal outcome.
//
// Delivery follows these invariants:
//   - Must have a valid unique identifier, operating date and tracking code
//   - A courier is set if and only if status is Assigned, Delivered or Absent
//   - deliveredAt is set if and only if status is Delivered
//   - absenceReasonID is set if and only if status is Absent
//   - Status transitions follow the rules of the Status state machine
//   - Can only be created through NewDelivery or RestoreDelivery
//
// The Delivery struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// date is the operating day the parcel belongs to (truncated to a day)
	date time.Time

	// code is the tracking code printed on the parcel label
	code string

	// serviceKind classifies the marketplace channel for pricing
	serviceKind ServiceKind

	// base and subBase locate the parcel in the distribution network
	base    string
	subBase string

	// status represents the current state in the delivery lifecycle
	status Status

	// courierID is the responsible courier's ID (nil while Pending/Cancelled)
	courierID *kernel.UUID

	// deliveredAt records the successful handover instant (nil unless Delivered)
	deliveredAt *time.Time

	// absenceReasonID references the catalogued absence reason (nil unless Absent)
	absenceReasonID *kernel.UUID

	// point is the geocoded destination, when an address was captured
	point            *kernel.GeoPoint
	formattedAddress string
	addressSource    AddressSource

	// shipmentRef and orderRef link back to the marketplace integration
	shipmentRef string
	orderRef    string

	// version supports optimistic concurrency control in persistence
	version int

	// isConstructed ensures the delivery was created via a constructor
	isConstructed bool
}

// NewDelivery creates a new Delivery instance with validation. This is the only
// way (besides RestoreDelivery) to obtain a valid Delivery, ensuring all
// business invariants hold from the start.
//
// Parameters:
//   - id: Unique identifier for the delivery (must be valid UUID)
//   - date: Operating day the parcel belongs to (must not be zero)
//   - code: Tracking code from the parcel label (must not be blank)
//   - serviceKind: Marketplace channel classification
//   - base: Distribution base the parcel left from (must not be blank)
//   - subBase: Sub-base within the base; may be empty for bases without subdivisions
//
// Returns:
//   - *Delivery: The created delivery if all validations pass
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	id := kernel.NewUUID()
//	d, err := NewDelivery(id, day, "BR123456789", ServiceShopee, "centro", "zona-sul")
//	if err != nil {
//	    // Handle validation error
//	}
//
// The constructor validates all inputs and creates the delivery in Pending
// status with no courier assigned and version 1.
func NewDelivery(
	id kernel.UUID,
	date time.Time,
	code string,
	serviceKind ServiceKind,
	base string,
	subBase string,
) (*Delivery, error) {
	d := &Delivery{
		status:        Pending,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setDate(date),
		d.setCode(code),
		d.setServiceKind(serviceKind),
		d.setBase(base),
	); err != nil {
		return nil, err
	}

	d.subBase = strings.TrimSpace(subBase)
	return d, nil
}

// RestoreParams carries every persisted field of a delivery for reconstruction.
type RestoreParams struct {
	ID               kernel.UUID
	Date             time.Time
	Code             string
	ServiceKind      ServiceKind
	Base             string
	SubBase          string
	Status           Status
	CourierID        *kernel.UUID
	DeliveredAt      *time.Time
	AbsenceReasonID  *kernel.UUID
	Point            *kernel.GeoPoint
	FormattedAddress string
	AddressSource    AddressSource
	ShipmentRef      string
	OrderRef         string
	Version          int
}

// RestoreDelivery reconstructs a Delivery from persistence. Unlike NewDelivery
// it accepts any lifecycle status, but it still enforces the cross-field
// invariants, so a corrupted row (a Delivered parcel without a timestamp, a
// Pending parcel with a courier) fails loudly instead of flowing downstream.
func RestoreDelivery(params RestoreParams) (*Delivery, error) {
	d := &Delivery{
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(params.ID),
		d.setDate(params.Date),
		d.setCode(params.Code),
		d.setServiceKind(params.ServiceKind),
		d.setBase(params.Base),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	d.subBase = strings.TrimSpace(params.SubBase)
	d.status = params.Status
	d.courierID = params.CourierID
	d.deliveredAt = params.DeliveredAt
	d.absenceReasonID = params.AbsenceReasonID
	d.shipmentRef = strings.TrimSpace(params.ShipmentRef)
	d.orderRef = strings.TrimSpace(params.OrderRef)

	if params.Point != nil {
		if err := params.Point.Validate(); err != nil {
			return nil, err
		}
		if err := params.AddressSource.Validate(); err != nil {
			return nil, err
		}
		d.point = params.Point
		d.formattedAddress = strings.TrimSpace(params.FormattedAddress)
		d.addressSource = params.AddressSource
	}

	if params.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("version")
	}
	d.version = params.Version

	if err := d.checkStateConsistency(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
// Call it when receiving a delivery across a port boundary.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Date returns the operating day the parcel belongs to.
func (d *Delivery) Date() time.Time {
	return d.date
}

// Code returns the tracking code from the parcel label.
func (d *Delivery) Code() string {
	return d.code
}

// ServiceKind returns the marketplace channel classification.
func (d *Delivery) ServiceKind() ServiceKind {
	return d.serviceKind
}

// Base returns the distribution base the parcel left from.
func (d *Delivery) Base() string {
	return d.base
}

// SubBase returns the sub-base, or "" when the base has no subdivisions.
func (d *Delivery) SubBase() string {
	return d.subBase
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// Courier returns the responsible courier's ID, or nil if none.
func (d *Delivery) Courier() *kernel.UUID {
	return d.courierID
}

// DeliveredAt returns the handover instant, or nil unless Delivered.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// AbsenceReason returns the absence reason ID, or nil unless Absent.
func (d *Delivery) AbsenceReason() *kernel.UUID {
	return d.absenceReasonID
}

// Point returns the geocoded destination, or nil if no address was captured.
func (d *Delivery) Point() *kernel.GeoPoint {
	return d.point
}

// FormattedAddress returns the captured address text, or "".
func (d *Delivery) FormattedAddress() string {
	return d.formattedAddress
}

// AddressSource returns how the address was captured. Meaningful only when
// Point() is non-nil.
func (d *Delivery) AddressSource() AddressSource {
	return d.addressSource
}

// ShipmentRef returns the marketplace shipment reference, or "".
func (d *Delivery) ShipmentRef() string {
	return d.shipmentRef
}

// OrderRef returns the marketplace order reference, or "".
func (d *Delivery) OrderRef() string {
	return d.orderRef
}

// Version returns the optimistic-concurrency version of the aggregate.
func (d *Delivery) Version() int {
	return d.version
}

// Assign hands the delivery to a courier and moves it to Assigned.
//
// This method enforces the following business rules:
//   - The courier ID must be valid
//   - The delivery must be Pending or already Assigned
//   - Reassignment to a different courier is allowed and reported to the caller
//   - Reassignment to the same courier is a no-op that still succeeds
//
// Parameters:
//   - courierID: The ID of the courier taking responsibility
//
// Returns:
//   - reassigned: true when the delivery was already owned by a different courier
//   - error: nil on success, or a validation/transition error
//
// The reassignment flag lets callers record a distinct audit event for
// handovers between couriers without inspecting prior state themselves.
func (d *Delivery) Assign(courierID kernel.UUID) (reassigned bool, err error) {
	if err := courierID.Validate(); err != nil {
		return false, err
	}

	newStatus, err := d.status.Assign()
	if err != nil {
		return false, err
	}

	reassigned = d.courierID != nil && !d.courierID.IsEqual(courierID)
	d.status = newStatus
	d.courierID = &courierID
	return reassigned, nil
}

// Unassign removes the courier and moves the delivery back to Pending.
// Valid only while Assigned.
func (d *Delivery) Unassign() error {
	newStatus, err := d.status.Unassign()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.courierID = nil
	return nil
}

// MarkDelivered records a successful handover at the given instant and moves
// the delivery to Delivered, a terminal status.
//
// Parameters:
//   - at: The handover instant (must not be zero)
//
// Returns:
//   - nil on success
//   - error if the instant is zero or the delivery is not Assigned
func (d *Delivery) MarkDelivered(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("deliveredAt")
	}

	newStatus, err := d.status.Deliver()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.deliveredAt = &at
	return nil
}

// MarkAbsent records a failed attempt with a catalogued reason and moves the
// delivery to Absent, a terminal status.
//
// Parameters:
//   - reasonID: The ID of the active absence reason
//
// Returns:
//   - nil on success
//   - error if the reason ID is invalid or the delivery is not Assigned
func (d *Delivery) MarkAbsent(reasonID kernel.UUID) error {
	if err := reasonID.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.MarkAbsent()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.absenceReasonID = &reasonID
	return nil
}

// Cancel applies an operator override and moves the delivery to Cancelled.
// Valid from any non-terminal status. The courier reference, if any, is kept
// for the audit trail.
func (d *Delivery) Cancel() error {
	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// AttachGeo records the geocoded destination for the delivery. Capturing or
// correcting an address is allowed in any non-terminal status; routes are
// planned before the parcel reaches an outcome.
//
// Parameters:
//   - point: Validated destination coordinates
//   - formattedAddress: Human-readable address text (must not be blank)
//   - source: How the address was captured (manual, OCR, voice)
func (d *Delivery) AttachGeo(point kernel.GeoPoint, formattedAddress string, source AddressSource) error {
	if d.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot attach an address to a %s delivery", d.status))
	}
	if err := point.Validate(); err != nil {
		return err
	}
	if err := source.Validate(); err != nil {
		return err
	}
	formattedAddress = strings.TrimSpace(formattedAddress)
	if formattedAddress == "" {
		return errs.NewValueIsRequiredError("formattedAddress")
	}

	d.point = &point
	d.formattedAddress = formattedAddress
	d.addressSource = source
	return nil
}

// LinkShipment attaches marketplace references to the delivery so downstream
// reconciliation can match it against the integration's records. References
// are write-once: relinking an already linked delivery fails.
func (d *Delivery) LinkShipment(shipmentRef, orderRef string) error {
	shipmentRef = strings.TrimSpace(shipmentRef)
	if shipmentRef == "" {
		return errs.NewValueIsRequiredError("shipmentRef")
	}
	if d.shipmentRef != "" {
		return errs.NewValueIsInvalidErrorWithCause("shipmentRef",
			fmt.Errorf("delivery is already linked to shipment %s", d.shipmentRef))
	}

	d.shipmentRef = shipmentRef
	d.orderRef = strings.TrimSpace(orderRef)
	return nil
}

// checkStateConsistency enforces the cross-field invariants between status and
// the outcome fields. Used when restoring from persistence.
func (d *Delivery) checkStateConsistency() error {
	hasCourier := d.courierID != nil
	wantCourier := d.status == Assigned || d.status == Delivered || d.status == Absent
	if wantCourier && !hasCourier {
		return errs.NewValueIsInvalidErrorWithCause("courierID",
			fmt.Errorf("a %s delivery must have a courier", d.status))
	}
	if d.status == Pending && hasCourier {
		return errs.NewValueIsInvalidErrorWithCause("courierID",
			fmt.Errorf("a %s delivery cannot have a courier", d.status))
	}

	if (d.deliveredAt != nil) != (d.status == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("deliveredAt",
			fmt.Errorf("deliveredAt must be set exactly when status is Delivered, got %s", d.status))
	}
	if (d.absenceReasonID != nil) != (d.status == Absent) {
		return errs.NewValueIsInvalidErrorWithCause("absenceReasonID",
			fmt.Errorf("absenceReasonID must be set exactly when status is Absent, got %s", d.status))
	}
	return nil
}

// setID validates and sets the delivery's unique identifier.
// This is a private method used only during construction.
func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setDate validates and sets the operating day.
// This is a private method used only during construction.
func (d *Delivery) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	d.date = date.Truncate(24 * time.Hour)
	return nil
}

// setCode validates and sets the tracking code.
// This is a private method used only during construction.
func (d *Delivery) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	d.code = code
	return nil
}

// setServiceKind validates and sets the service kind.
// This is a private method used only during construction.
func (d *Delivery) setServiceKind(kind ServiceKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	d.serviceKind = kind
	return nil
}

// setBase validates and sets the distribution base.
// This is a private method used only during construction.
func (d *Delivery) setBase(base string) error {
	base = strings.TrimSpace(base)
	if base == "" {
		return errs.NewValueIsRequiredError("base")
	}
	d.base = base
	return nil
}
