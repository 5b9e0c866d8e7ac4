package delivery

import (
	"fmt"

	"tracksaidas/internal/pkg/errs"
)

// AddressSource records how a delivery's geocoded address was captured.
// The capture flows themselves (typing, label OCR, voice dictation) live
// outside the core; only their provenance is kept here for auditing.
type AddressSource int

const (
	// AddressSourceUnknown represents an invalid or undefined source.
	AddressSourceUnknown AddressSource = iota

	// AddressSourceManual marks an address typed in by a dispatcher.
	AddressSourceManual

	// AddressSourceOCR marks an address extracted from a parcel label photo.
	AddressSourceOCR

	// AddressSourceVoice marks an address captured by voice dictation.
	AddressSourceVoice
)

func getAddressSourceStrings() map[AddressSource]string {
	return map[AddressSource]string{
		AddressSourceUnknown: "Unknown",
		AddressSourceManual:  "Manual",
		AddressSourceOCR:     "OCR",
		AddressSourceVoice:   "Voice",
	}
}

// Validate checks that the value is one of the defined sources.
func (a AddressSource) Validate() error {
	switch a {
	case AddressSourceManual, AddressSourceOCR, AddressSourceVoice:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("addressSource",
			fmt.Errorf("%d is not a valid address source", a))
	}
}

// String returns the human-readable name of the source. Implements fmt.Stringer.
func (a AddressSource) String() string {
	if str, ok := getAddressSourceStrings()[a]; ok {
		return str
	}
	return "Unknown"
}
