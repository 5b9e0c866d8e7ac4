package delivery

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions so that parcels
// follow the operational workflow of the network.
//
// State transitions:
//
//	Pending ──> Assigned ──> Delivered
//	   ▲           │   │
//	   └───────────┘   └──> Absent
//	 (unassign)  (reassignment allowed)
//
//	any non-terminal ──> Cancelled   (operator override)
//
// Delivered, Absent and Cancelled are terminal: no transition leaves them.
// Replaying a terminal transition fails with ErrInvalidTransition rather
// than silently succeeding, which protects against duplicate event
// delivery from upstream collaborators.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the parcel left the base but has no
	// courier responsible for it yet.
	Pending

	// Assigned indicates a courier owns the delivery's execution.
	// Reassignment to a different courier keeps the status Assigned.
	Assigned

	// Delivered is the successful terminal outcome.
	Delivered

	// Absent is the terminal outcome for a failed attempt with a recorded
	// absence reason (recipient not home, address not found, ...).
	Absent

	// Cancelled is the terminal outcome of an operator override.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		Delivered: "Delivered",
		Absent:    "Absent",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		Delivered: "Delivered",
		Absent:    "Absent",
		Cancelled: "Cancelled",
	}
}

// Validate checks that the value is one of the defined statuses.
// Used when reconstructing deliveries from persistence or external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errInvalidStatusValue(s)
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Absent || s == Cancelled
}

// Assign transitions to Assigned. Valid from Pending (initial assignment)
// and from Assigned (reassignment to another courier). Terminal statuses
// reject assignment.
func (s Status) Assign() (Status, error) {
	if s != Pending && s != Assigned {
		return 0, invalidTransition(s, Assigned)
	}
	return Assigned, nil
}

// Unassign transitions back to Pending when the courier is removed.
// Valid only from Assigned.
func (s Status) Unassign() (Status, error) {
	if s != Assigned {
		return 0, invalidTransition(s, Pending)
	}
	return Pending, nil
}

// Deliver transitions to Delivered. Valid only from Assigned: a parcel
// cannot be delivered by nobody, and a terminal parcel cannot be delivered
// again.
func (s Status) Deliver() (Status, error) {
	if s != Assigned {
		return 0, invalidTransition(s, Delivered)
	}
	return Delivered, nil
}

// MarkAbsent transitions to Absent. Valid only from Assigned.
func (s Status) MarkAbsent() (Status, error) {
	if s != Assigned {
		return 0, invalidTransition(s, Absent)
	}
	return Absent, nil
}

// Cancel transitions to Cancelled. Valid from any non-terminal status;
// cancelling an already-terminal delivery fails.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, invalidTransition(s, Cancelled)
	}
	return Cancelled, nil
}
