package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnitExp is the number of fractional digits in a currency amount.
const MinorUnitExp = 2

var minorUnitsPerMajor = decimal.New(1, MinorUnitExp)

// ParseAmount converts user text such as "100", "100.5" or "$1,250.00" into
// minor units. It rejects anything that is not a number or that carries
// more fractional digits than a minor unit can hold. Sign is preserved so
// that the ledger, not the parser, decides whether an amount is acceptable.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("ParseAmount: empty: %w", ErrMalformedInput)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("ParseAmount: %q: %w", s, ErrMalformedInput)
	}

	minor := d.Mul(minorUnitsPerMajor)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("ParseAmount: %q has more than %d decimal places: %w", s, MinorUnitExp, ErrMalformedInput)
	}
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("ParseAmount: %q out of range: %w", s, ErrMalformedInput)
	}
	return minor.IntPart(), nil
}

// FormatAmount renders minor units as a dollar string, e.g. 10200 -> "$102.00".
func FormatAmount(minor int64) string {
	d := decimal.New(minor, -MinorUnitExp)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(MinorUnitExp)
	}
	return "$" + d.StringFixed(MinorUnitExp)
}
