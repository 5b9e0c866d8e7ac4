package session

import (
	"fmt"

	"tracksaidas/internal/pkg/errs"
)

// Status represents the lifecycle state of a route session.
//
// State transitions:
//
//	Active ──> Finished   (courier completes or abandons the run)
//	Active ──> Expired    (reconciliation closes a stale session)
//
// Finished and Expired are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Active is a session the courier is currently driving.
	Active

	// Finished is a session closed by the courier.
	Finished

	// Expired is a session closed administratively after going stale.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Active:   "Active",
		Finished: "Finished",
		Expired:  "Expired",
	}
}

// Validate checks that the value is one of the defined statuses.
func (s Status) Validate() error {
	switch s {
	case Active, Finished, Expired:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid session status", s))
	}
}

// String returns the human-readable name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == Finished || s == Expired
}

// Finish transitions to Finished. Valid only from Active.
func (s Status) Finish() (Status, error) {
	if s != Active {
		return 0, errs.NewInvalidTransitionError(s.String(), Finished.String())
	}
	return Finished, nil
}

// Expire transitions to Expired. Valid only from Active.
func (s Status) Expire() (Status, error) {
	if s != Active {
		return 0, errs.NewInvalidTransitionError(s.String(), Expired.String())
	}
	return Expired, nil
}
