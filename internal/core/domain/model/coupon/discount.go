package coupon

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DiscountType selects how a coupon's discount value is interpreted.
type DiscountType int

const (
	// UnknownDiscountType catches uninitialized values.
	UnknownDiscountType DiscountType = iota
	// Fixed takes a flat amount off the order.
	Fixed
	// Percentage takes a share of the order amount, optionally capped.
	Percentage
)

// PercentScale is the number of fractional digits a percentage may carry.
const PercentScale = 4

var (
	maxPercent       = decimal.NewFromInt(100)
	discountTypeName = map[DiscountType]string{
		Fixed:      "fixed",
		Percentage: "percentage",
	}
)

// ParseDiscountType maps "fixed" and "percentage" to their DiscountType.
func ParseDiscountType(s string) (DiscountType, error) {
	for t, name := range discountTypeName {
		if name == s {
			return t, nil
		}
	}
	return UnknownDiscountType, errs.NewValueIsInvalidErrorWithCause(
		"discount type",
		fmt.Errorf("%q is not one of fixed, percentage", s),
	)
}

// String returns the persisted name of the type, or "unknown".
func (t DiscountType) String() string {
	if name, ok := discountTypeName[t]; ok {
		return name
	}
	return "unknown"
}

// Discount is the pricing rule of a coupon. Fixed discounts carry an amount;
// percentage discounts carry a percent in (0, 100] and an optional cap.
// A cap can only be attached to a percentage discount.
type Discount struct {
	discountType DiscountType
	value        decimal.Decimal
	maxDiscount  *kernel.Money
}

// NewFixedDiscount creates a flat discount. The amount must be positive.
func NewFixedDiscount(amount kernel.Money) (Discount, error) {
	if amount.IsZero() {
		return Discount{}, errs.NewValueIsInvalidErrorWithCause(
			"discount",
			fmt.Errorf("fixed discount %s is not greater than 0", amount),
		)
	}
	return Discount{discountType: Fixed, value: amount.Decimal()}, nil
}

// NewPercentageDiscount creates a percentage discount in (0, 100] with at most
// PercentScale fractional digits and an optional cap.
func NewPercentageDiscount(percent decimal.Decimal, maxDiscount *kernel.Money) (Discount, error) {
	if !percent.IsPositive() || percent.GreaterThan(maxPercent) {
		return Discount{}, errs.NewValueIsOutOfRangeError("percentage discount", percent.String(), "0 (exclusive)", 100)
	}
	if !percent.Equal(percent.Truncate(PercentScale)) {
		return Discount{}, errs.NewValueIsInvalidErrorWithCause(
			"percentage discount",
			fmt.Errorf("%s has more than %d fractional digits", percent, PercentScale),
		)
	}
	if maxDiscount != nil && maxDiscount.IsZero() {
		return Discount{}, errs.NewValueIsInvalidErrorWithCause(
			"max discount",
			fmt.Errorf("cap %s is not greater than 0", maxDiscount),
		)
	}
	return Discount{discountType: Percentage, value: percent, maxDiscount: maxDiscount}, nil
}

// NewDiscount rebuilds a discount from its persisted columns.
func NewDiscount(discountType DiscountType, value decimal.Decimal, maxDiscount *kernel.Money) (Discount, error) {
	switch discountType {
	case Fixed:
		if maxDiscount != nil {
			return Discount{}, errs.NewValueIsInvalidErrorWithCause(
				"max discount",
				errors.New("only percentage coupons can be capped"),
			)
		}
		amount, err := kernel.NewMoney(value)
		if err != nil {
			return Discount{}, err
		}
		return NewFixedDiscount(amount)
	case Percentage:
		return NewPercentageDiscount(value, maxDiscount)
	case UnknownDiscountType:
	}
	return Discount{}, errs.NewValueIsInvalidErrorWithCause(
		"discount type",
		fmt.Errorf("%d is not a valid discount type", discountType),
	)
}

// Type returns the discount type.
func (d Discount) Type() DiscountType {
	return d.discountType
}

// Value returns the flat amount (fixed) or the percent (percentage).
func (d Discount) Value() decimal.Decimal {
	return d.value
}

// MaxDiscount returns the cap of a percentage discount, or nil.
func (d Discount) MaxDiscount() *kernel.Money {
	return d.maxDiscount
}

// Apply computes the discount granted on orderAmount.
//
//   - fixed: min(value, orderAmount), so the order never goes below zero
//   - percentage: orderAmount*value/100 rounded half-to-even, then min(…, maxDiscount)
//
// The result never exceeds orderAmount.
func (d Discount) Apply(orderAmount kernel.Money) kernel.Money {
	switch d.discountType {
	case Fixed:
		flat, _ := kernel.NewMoney(d.value)
		return flat.Min(orderAmount)
	case Percentage:
		discount := orderAmount.Percent(d.value)
		if d.maxDiscount != nil {
			discount = discount.Min(*d.maxDiscount)
		}
		return discount.Min(orderAmount)
	case UnknownDiscountType:
	}
	return kernel.ZeroMoney()
}
