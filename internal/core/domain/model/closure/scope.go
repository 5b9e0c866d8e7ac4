package closure

import (
	"fmt"

	"tracksaidas/internal/pkg/errs"
)

// Scope selects which dimension a closure rolls up over.
type Scope int

const (
	// ScopeUnknown represents an invalid or undefined scope.
	ScopeUnknown Scope = iota

	// ScopeCourier rolls up every delivery executed by one courier.
	ScopeCourier

	// ScopeBase rolls up every delivery that left one base.
	ScopeBase
)

func getScopeStrings() map[Scope]string {
	return map[Scope]string{
		ScopeUnknown: "Unknown",
		ScopeCourier: "Courier",
		ScopeBase:    "Base",
	}
}

// Validate checks that the value is one of the defined scopes.
func (s Scope) Validate() error {
	switch s {
	case ScopeCourier, ScopeBase:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("scope",
			fmt.Errorf("%d is not a valid scope", s))
	}
}

// String returns the human-readable name of the scope. Implements fmt.Stringer.
func (s Scope) String() string {
	if str, ok := getScopeStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
