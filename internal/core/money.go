// Package core provides the domain types of the bookkeeping ledger:
// exact monetary values, transactions, categories, counterparties and the
// reconciliation matcher.
//
// Money is backed by decimal arithmetic so that amounts never pick up
// binary floating-point rounding error. Construct values from strings or
// integer cents, never from a float.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact signed decimal amount. Positive values are income,
// negative values are expenses.
type Money struct {
	d decimal.Decimal
}

// NewMoney parses an exact decimal string such as "123.45" or "-40".
// Returns ErrInvalidAmount for anything that is not a plain decimal.
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{d: d}, nil
}

// MustMoney is NewMoney for literals in tests and defaults; it panics on
// malformed input.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic("core: invalid money literal " + s)
	}
	return m
}

// ParseAmount parses user or file input. It trims surrounding space and
// normalizes a locale decimal comma to a period before exact parsing, so
// "123,45" parses identically to "123.45".
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	return NewMoney(strings.ReplaceAll(s, ",", "."))
}

// MoneyFromCents builds a Money from an integer number of cents.
func MoneyFromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -2)}
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }
func (m Money) Neg() Money        { return Money{d: m.d.Neg()} }
func (m Money) Abs() Money        { return Money{d: m.d.Abs()} }

// Cmp returns -1, 0 or 1 comparing m against o.
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

func (m Money) Sign() int    { return m.d.Sign() }
func (m Money) IsZero() bool { return m.d.IsZero() }

// Quantize rounds half away from zero to the given number of fractional
// digits. Quantizing an already quantized value at the same precision is a
// no-op.
func (m Money) Quantize(places int32) Money {
	return Money{d: m.d.Round(places)}
}

// String returns the exact decimal representation.
func (m Money) String() string { return m.d.String() }

// StringFixed renders the amount with exactly two fractional digits, the
// precision used for storage and exports.
func (m Money) StringFixed() string { return m.d.StringFixed(2) }
