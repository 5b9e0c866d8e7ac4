package history

import (
	"fmt"

	"tracksaidas/internal/pkg/errs"
)

// EventKind classifies an entry in a delivery's audit ledger.
type EventKind int

const (
	// EventUnknown represents an invalid or undefined kind.
	EventUnknown EventKind = iota

	// EventCreated records the delivery entering the system.
	EventCreated

	// EventAssigned records the first courier taking responsibility.
	EventAssigned

	// EventReassigned records a handover between two couriers.
	EventReassigned

	// EventUnassigned records a courier being removed without replacement.
	EventUnassigned

	// EventDelivered records the successful handover to the recipient.
	EventDelivered

	// EventMarkedAbsent records a failed attempt with an absence reason.
	EventMarkedAbsent

	// EventCancelled records an operator override.
	EventCancelled

	// EventStatusChanged records a status correction that does not fit any
	// of the specific kinds, such as an administrative backfill.
	EventStatusChanged
)

func getEventKindStrings() map[EventKind]string {
	return map[EventKind]string{
		EventUnknown:       "Unknown",
		EventCreated:       "Created",
		EventAssigned:      "Assigned",
		EventReassigned:    "Reassigned",
		EventUnassigned:    "Unassigned",
		EventDelivered:     "Delivered",
		EventMarkedAbsent:  "MarkedAbsent",
		EventCancelled:     "Cancelled",
		EventStatusChanged: "StatusChanged",
	}
}

// Validate checks that the value is one of the defined kinds.
func (k EventKind) Validate() error {
	if k <= EventUnknown || k > EventStatusChanged {
		return errs.NewValueIsInvalidErrorWithCause("eventKind",
			fmt.Errorf("%d is not a valid event kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind. Implements fmt.Stringer.
func (k EventKind) String() string {
	if str, ok := getEventKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}
