// Package money holds BRL amounts as integer centavos so wallet math never
// touches binary floating point. shopspring/decimal is used only at the
// parse/format boundary.
package money

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in minor units (centavos).
type Amount int64

// MaxBalance is the account balance cap: 1,000,000.00 BRL.
const MaxBalance Amount = 100_000_000

var (
	ErrMalformed  = errors.New("malformed amount")
	ErrTooPrecise = errors.New("amount has more than 2 decimal places")
	ErrOutOfRange = errors.New("amount out of range")
)

var hundred = decimal.NewFromInt(100)

// Parse converts a decimal string like "80", "80.5" or "80.50" into centavos.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrMalformed
	}
	return FromDecimal(d)
}

// FromDecimal converts a decimal value into centavos, rejecting anything
// finer than 2 fractional digits.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	m := d.Mul(hundred)
	if !m.IsInteger() {
		return 0, ErrTooPrecise
	}
	if !m.BigInt().IsInt64() {
		return 0, ErrOutOfRange
	}
	return Amount(m.IntPart()), nil
}

// Decimal returns the amount as an exact 2-dp decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String renders the amount with exactly two fractional digits, e.g. "80.00".
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as an exact 2-dp JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and strings ("80.5" / 80.5).
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		return fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
