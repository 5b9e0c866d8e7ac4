package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"tracksaidas/internal/pkg/errs"
)

// Money represents a monetary amount in integer cents. Billing math in the
// core (per-delivery pricing, closure gross/cancelled/net values) stays in
// cents end to end; formatting to a decimal string happens only at the edge.
// Negative amounts are valid: a closure's net value may go below zero when
// cancellations outweigh deliveries in a period.
type Money int64

// NewMoneyFromCents wraps a cent amount.
func NewMoneyFromCents(cents int64) Money {
	return Money(cents)
}

// MoneyFromString parses a decimal amount such as "12.50" or "-3.07" into
// cents. At most two fractional digits are accepted.
func MoneyFromString(s string) (Money, error) {
	neg := false
	rest := s
	if len(rest) > 0 && (rest[0] == '-' || rest[0] == '+') {
		neg = rest[0] == '-'
		rest = rest[1:]
	}

	unitsPart, fracPart, hasFrac := strings.Cut(rest, ".")
	units, err := strconv.ParseInt(unitsPart, 10, 64)
	if err != nil || units < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q is not a decimal amount", s))
	}

	var frac int64
	if hasFrac {
		if len(fracPart) == 0 || len(fracPart) > 2 {
			return 0, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q has an invalid fractional part", s))
		}
		if len(fracPart) == 1 {
			fracPart += "0"
		}
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil || frac < 0 {
			return 0, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q has an invalid fractional part", s))
		}
	}

	cents := units*100 + frac
	if neg {
		cents = -cents
	}
	return Money(cents), nil
}

// Cents returns the raw cent amount.
func (m Money) Cents() int64 {
	return int64(m)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// MulCount returns the amount multiplied by a unit count, used when pricing
// n deliveries of the same service kind.
func (m Money) MulCount(count int) Money {
	return m * Money(count)
}

// String renders the amount with two decimal places, e.g. "1234.50".
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
