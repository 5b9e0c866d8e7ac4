package closure

import (
	"fmt"

	"tracksaidas/internal/pkg/errs"
)

// Status represents the state of a closure record. Closures are never
// regenerated in place: a correction produces a new closure and marks the old
// one Readjusted so auditors can tell which record supersedes which.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusGenerated is a freshly produced closure.
	StatusGenerated

	// StatusReadjusted marks a closure superseded by a correction.
	StatusReadjusted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusGenerated:  "Generated",
		StatusReadjusted: "Readjusted",
	}
}

// Validate checks that the value is one of the defined statuses.
func (s Status) Validate() error {
	switch s {
	case StatusGenerated, StatusReadjusted:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid closure status", s))
	}
}

// String returns the human-readable name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
