package commands_test

import (
	"testing"
	"time"

	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2025, 8, 1, 20, 15, 0, 0, time.UTC)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

// save20Coupon is 20% off capped at 50 with a minimum order of 100, two uses overall.
func save20Coupon(t *testing.T) *coupon.Coupon {
	t.Helper()
	maxCap := money(t, "50")
	discount, err := coupon.NewPercentageDiscount(decimal.NewFromInt(20), &maxCap)
	require.NoError(t, err)
	minOrder := money(t, "100")
	limit := 2

	c, err := coupon.NewCoupon(kernel.NewUUID(), "SAVE20", discount,
		coupon.Limits{MinOrder: &minOrder, UsageLimit: &limit},
		coupon.Window{}, coupon.Restrictions{})
	require.NoError(t, err)
	return c
}
