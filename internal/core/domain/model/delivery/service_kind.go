package delivery

import (
	"fmt"
	"strings"

	"tracksaidas/internal/pkg/errs"
)

// ServiceKind classifies a delivery by the marketplace channel it came
// from. The kind drives pricing: the billing catalog holds one price per
// kind per sub-base.
type ServiceKind int

const (
	// ServiceUnknown represents an invalid or undefined kind.
	ServiceUnknown ServiceKind = iota

	// ServiceStandard is a walk-in parcel outside any marketplace
	// integration ("avulso").
	ServiceStandard

	// ServiceShopee is a parcel ingested from the Shopee integration.
	ServiceShopee

	// ServiceFlex is a parcel ingested from the Mercado Livre Flex
	// integration.
	ServiceFlex
)

func getServiceKindStrings() map[ServiceKind]string {
	return map[ServiceKind]string{
		ServiceUnknown:  "Unknown",
		ServiceStandard: "Standard",
		ServiceShopee:   "Shopee",
		ServiceFlex:     "Flex",
	}
}

// Validate checks that the value is one of the defined kinds.
func (k ServiceKind) Validate() error {
	switch k {
	case ServiceStandard, ServiceShopee, ServiceFlex:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("serviceKind",
			fmt.Errorf("%d is not a valid service kind", k))
	}
}

// String returns the human-readable name of the kind. Implements fmt.Stringer.
func (k ServiceKind) String() string {
	if str, ok := getServiceKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// ServiceKindFromLabel normalizes a free-form service label from imports
// into a ServiceKind. Labels mentioning Shopee map to ServiceShopee,
// Mercado Livre / ML / Flex to ServiceFlex, anything else to
// ServiceStandard. Imports declare services inconsistently ("shopee
// express", "ML flex", "padrao"), so matching is substring-based.
func ServiceKindFromLabel(label string) ServiceKind {
	s := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(s, "shopee"):
		return ServiceShopee
	case strings.Contains(s, "mercado"), strings.Contains(s, "ml"), strings.Contains(s, "flex"):
		return ServiceFlex
	default:
		return ServiceStandard
	}
}
