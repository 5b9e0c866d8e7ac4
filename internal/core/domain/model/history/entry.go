package history

import (
	"errors"
	"strings"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry instance was not
	// created through NewEntry. This ensures all entries are validated.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")
)

// Entry is one immutable record in a delivery's audit ledger. Entries are
// append-only: the ledger never updates or deletes a row, so the full chain of
// custody of a parcel can always be reconstructed. An Entry captures what
// happened (the kind), when, the status change it produced and, for courier
// events, which couriers were involved.
type Entry struct {
	// id is the unique identifier for the entry
	id kernel.UUID

	// deliveryID is the delivery this entry belongs to
	deliveryID kernel.UUID

	// kind classifies what happened
	kind EventKind

	// occurredAt is the instant the event took place
	occurredAt time.Time

	// fromStatus and toStatus bracket the status change; equal for events
	// that do not change status
	fromStatus delivery.Status
	toStatus   delivery.Status

	// courierID is the courier involved after the event, when any
	courierID *kernel.UUID

	// previousCourierID is set only on reassignments and unassignments
	previousCourierID *kernel.UUID

	// actorID identifies the user behind the event; nil for automated events
	actorID *kernel.UUID

	// note is free-form operator context, may be empty
	note string

	// isConstructed ensures the entry was created via NewEntry
	isConstructed bool
}

// EntryParams carries the fields of a ledger entry for construction.
type EntryParams struct {
	ID                kernel.UUID
	DeliveryID        kernel.UUID
	Kind              EventKind
	OccurredAt        time.Time
	FromStatus        delivery.Status
	ToStatus          delivery.Status
	CourierID         *kernel.UUID
	PreviousCourierID *kernel.UUID
	ActorID           *kernel.UUID
	Note              string
}

// NewEntry creates a validated ledger entry. Courier consistency is enforced
// per kind: Assigned and Reassigned require a courier, Reassigned and
// Unassigned require a previous courier, and Created must not carry one.
func NewEntry(params EntryParams) (*Entry, error) {
	e := &Entry{
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(params.ID),
		e.setDeliveryID(params.DeliveryID),
		e.setKind(params.Kind),
		e.setOccurredAt(params.OccurredAt),
	); err != nil {
		return nil, err
	}

	// fromStatus may be Unknown only for the Created event, which has no
	// predecessor state.
	if params.Kind != EventCreated {
		if err := params.FromStatus.Validate(); err != nil {
			return nil, err
		}
	}
	if err := params.ToStatus.Validate(); err != nil {
		return nil, err
	}
	e.fromStatus = params.FromStatus
	e.toStatus = params.ToStatus

	if err := e.setCouriers(params.Kind, params.CourierID, params.PreviousCourierID); err != nil {
		return nil, err
	}

	if params.ActorID != nil {
		if err := params.ActorID.Validate(); err != nil {
			return nil, err
		}
		e.actorID = params.ActorID
	}

	e.note = strings.TrimSpace(params.Note)
	return e, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// DeliveryID returns the delivery this entry belongs to.
func (e *Entry) DeliveryID() kernel.UUID {
	return e.deliveryID
}

// Kind returns what happened.
func (e *Entry) Kind() EventKind {
	return e.kind
}

// OccurredAt returns the instant the event took place.
func (e *Entry) OccurredAt() time.Time {
	return e.occurredAt
}

// FromStatus returns the status before the event.
func (e *Entry) FromStatus() delivery.Status {
	return e.fromStatus
}

// ToStatus returns the status after the event.
func (e *Entry) ToStatus() delivery.Status {
	return e.toStatus
}

// Courier returns the courier involved after the event, or nil.
func (e *Entry) Courier() *kernel.UUID {
	return e.courierID
}

// PreviousCourier returns the courier replaced or removed by the event, or nil.
func (e *Entry) PreviousCourier() *kernel.UUID {
	return e.previousCourierID
}

// Actor returns the user behind the event, or nil for automated events.
func (e *Entry) Actor() *kernel.UUID {
	return e.actorID
}

// Note returns free-form operator context, or "".
func (e *Entry) Note() string {
	return e.note
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.deliveryID = id
	return nil
}

func (e *Entry) setKind(kind EventKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	e.kind = kind
	return nil
}

func (e *Entry) setOccurredAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	e.occurredAt = at
	return nil
}

func (e *Entry) setCouriers(kind EventKind, courierID, previousCourierID *kernel.UUID) error {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}
	if previousCourierID != nil {
		if err := previousCourierID.Validate(); err != nil {
			return err
		}
	}

	switch kind {
	case EventCreated:
		if courierID != nil || previousCourierID != nil {
			return errs.NewValueIsInvalidError("courierID")
		}
	case EventAssigned:
		if courierID == nil {
			return errs.NewValueIsRequiredError("courierID")
		}
	case EventReassigned:
		if courierID == nil {
			return errs.NewValueIsRequiredError("courierID")
		}
		if previousCourierID == nil {
			return errs.NewValueIsRequiredError("previousCourierID")
		}
	case EventUnassigned:
		if previousCourierID == nil {
			return errs.NewValueIsRequiredError("previousCourierID")
		}
	}

	e.courierID = courierID
	e.previousCourierID = previousCourierID
	return nil
}
