package delivery

import (
	"fmt"

	"tracksaidas/internal/pkg/errs"
)

// invalidTransition builds the typed error for a forbidden status change.
func invalidTransition(from, to Status) error {
	return errs.NewInvalidTransitionError(from.String(), to.String())
}

// errInvalidStatusValue reports a status value outside the defined enum.
func errInvalidStatusValue(s Status) error {
	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%d is not a valid status", s))
}
