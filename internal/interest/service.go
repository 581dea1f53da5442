package interest

import (
	"fmt"
	"strings"

	"github.com/josh-kwaku/atm-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculator computes simple interest on minor-unit balances.
type Calculator struct {
	defaultRate decimal.Decimal
}

func NewCalculator(defaultRatePct float64) *Calculator {
	return &Calculator{defaultRate: decimal.NewFromFloat(defaultRatePct)}
}

func (c *Calculator) DefaultRate() decimal.Decimal {
	return c.defaultRate
}

// Compute returns balance * ratePct / 100 rounded half away from zero to the
// nearest minor unit.
func (c *Calculator) Compute(balance int64, ratePct decimal.Decimal) (int64, error) {
	if balance < 0 {
		return 0, fmt.Errorf("Compute: negative balance %d: %w", balance, domain.ErrInvalidAmount)
	}

	raw := decimal.NewFromInt(balance).Mul(ratePct).Div(hundred).Round(0)
	if !raw.BigInt().IsInt64() {
		return 0, fmt.Errorf("Compute: interest out of range: %w", domain.ErrInvalidAmount)
	}
	return raw.IntPart(), nil
}

// ParseRate parses a percentage typed by the user. Empty input selects the
// default rate. A trailing percent sign is accepted.
func (c *Calculator) ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return c.defaultRate, nil
	}
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ParseRate: %q: %w", s, domain.ErrMalformedInput)
	}
	return rate, nil
}
