package kernel

import (
	"fmt"

	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places kept for every amount (cents).
const MinorUnitPlaces = 2

var hundred = decimal.NewFromInt(100)

// Money is a non-negative currency amount held at MinorUnitPlaces precision.
// Every constructor and arithmetic result is rounded half-to-even, so two
// amounts that print the same always compare equal.
//
// The zero value is a valid amount of 0.00.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney rounds d to minor units and rejects negative amounts.
func NewMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%s is negative", d.String()),
		)
	}
	return Money{amount: d.RoundBank(MinorUnitPlaces)}, nil
}

// MoneyFromString parses a decimal string such as "12.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d)
}

// MoneyFromCents builds an amount from an integer number of minor units.
func MoneyFromCents(cents int64) (Money, error) {
	return NewMoney(decimal.New(cents, -MinorUnitPlaces))
}

// Decimal exposes the rounded amount for persistence and transport.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two decimals ("40.00").
func (m Money) String() string {
	return m.amount.StringFixed(MinorUnitPlaces)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// SubFloor returns m - other, or zero when other exceeds m.
func (m Money) SubFloor(other Money) Money {
	if other.amount.GreaterThan(m.amount) {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Sub(other.amount)}
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other.amount.LessThan(m.amount) {
		return other
	}
	return m
}

// Percent returns percent/100 of m, rounded half-to-even to minor units.
func (m Money) Percent(percent decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(percent).Div(hundred).RoundBank(MinorUnitPlaces)}
}

// LessThan reports m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan reports m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsEqual compares amounts numerically.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}
