package closure

import (
	"errors"
	"strings"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"
)

var (
	// ErrBillingItemIsNotConstructed is returned when a BillingItem instance was
	// not created through NewBillingItem.
	ErrBillingItemIsNotConstructed = errors.New("BillingItem must be created via NewBillingItem constructor")
)

// BillingItem is the financial record of one delivered parcel. It is written
// in the same transaction as the delivery outcome and priced at that moment,
// so later price-table changes never rewrite already-billed work.
//
// Billing items are never deleted. Voiding a billed delivery flips the
// cancelled flag; closure math subtracts voided items instead of pretending
// they never existed, which keeps "never delivered" distinguishable from
// "delivered then voided".
type BillingItem struct {
	// id is the unique identifier for the item
	id kernel.UUID

	// deliveryID is the delivery this item bills
	deliveryID kernel.UUID

	// courierID is the courier who executed the delivery
	courierID kernel.UUID

	// date is the operating day the item accrues to
	date time.Time

	// serviceKind selects the price row the item was priced with
	serviceKind delivery.ServiceKind

	// base and subBase scope the item for per-base closures
	base    string
	subBase string

	// unitPrice is the amount billed for this delivery, frozen at write time
	unitPrice kernel.Money

	// cancelled marks a voided item; it stays in the table for auditing
	cancelled bool

	// isConstructed ensures the item was created via NewBillingItem
	isConstructed bool
}

// BillingItemParams carries the fields of a billing item for construction.
type BillingItemParams struct {
	ID          kernel.UUID
	DeliveryID  kernel.UUID
	CourierID   kernel.UUID
	Date        time.Time
	ServiceKind delivery.ServiceKind
	Base        string
	SubBase     string
	UnitPrice   kernel.Money
	Cancelled   bool
}

// NewBillingItem creates a validated billing item. Also used when restoring
// from persistence, since items have no lifecycle beyond the cancelled flag.
func NewBillingItem(params BillingItemParams) (*BillingItem, error) {
	item := &BillingItem{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(params.ID),
		item.setDeliveryID(params.DeliveryID),
		item.setCourierID(params.CourierID),
		item.setDate(params.Date),
		item.setServiceKind(params.ServiceKind),
		item.setBase(params.Base),
	); err != nil {
		return nil, err
	}

	item.subBase = strings.TrimSpace(params.SubBase)
	item.unitPrice = params.UnitPrice
	item.cancelled = params.Cancelled
	return item, nil
}

// Validate ensures the BillingItem instance was properly constructed.
func (b *BillingItem) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBillingItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (b *BillingItem) ID() kernel.UUID {
	return b.id
}

// DeliveryID returns the delivery this item bills.
func (b *BillingItem) DeliveryID() kernel.UUID {
	return b.deliveryID
}

// Courier returns the courier who executed the delivery.
func (b *BillingItem) Courier() kernel.UUID {
	return b.courierID
}

// Date returns the operating day the item accrues to.
func (b *BillingItem) Date() time.Time {
	return b.date
}

// ServiceKind returns the price row the item was priced with.
func (b *BillingItem) ServiceKind() delivery.ServiceKind {
	return b.serviceKind
}

// Base returns the distribution base the item is scoped to.
func (b *BillingItem) Base() string {
	return b.base
}

// SubBase returns the sub-base, or "".
func (b *BillingItem) SubBase() string {
	return b.subBase
}

// UnitPrice returns the amount billed for this delivery.
func (b *BillingItem) UnitPrice() kernel.Money {
	return b.unitPrice
}

// IsCancelled reports whether the item was voided.
func (b *BillingItem) IsCancelled() bool {
	return b.cancelled
}

// Void flags the item as cancelled. Voiding is idempotent: voiding an
// already-voided item is a no-op, since the flag carries no further state and
// cancel flows may be retried.
func (b *BillingItem) Void() {
	b.cancelled = true
}

func (b *BillingItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *BillingItem) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.deliveryID = id
	return nil
}

func (b *BillingItem) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.courierID = id
	return nil
}

func (b *BillingItem) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	b.date = date.Truncate(24 * time.Hour)
	return nil
}

func (b *BillingItem) setServiceKind(kind delivery.ServiceKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	b.serviceKind = kind
	return nil
}

func (b *BillingItem) setBase(base string) error {
	base = strings.TrimSpace(base)
	if base == "" {
		return errs.NewValueIsRequiredError("base")
	}
	b.base = base
	return nil
}
