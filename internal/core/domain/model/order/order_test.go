package order_test

import (
	"testing"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2025, 6, 1, 19, 30, 0, 0, time.UTC)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func createValidOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		money(t, "120"), money(t, "24"), "SAVE20", placedAt)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		userID := kernel.NewUUID()
		restaurantID := kernel.NewUUID()

		o, err := order.NewOrder(id, userID, restaurantID, money(t, "120"), money(t, "24"), "SAVE20", placedAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.UserID().IsEqual(userID))
		assert.True(t, o.RestaurantID().IsEqual(restaurantID))
		assert.Equal(t, "120.00", o.Subtotal().String())
		assert.Equal(t, "24.00", o.Discount().String())
		assert.Equal(t, "96.00", o.Total().String())
		assert.Equal(t, "SAVE20", o.CouponCode())
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.Partner())
		assert.Equal(t, placedAt, o.CreatedAt())
	})

	t.Run("should accept order without coupon", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			money(t, "10"), kernel.ZeroMoney(), "", placedAt)

		require.NoError(t, err)
		assert.Equal(t, "10.00", o.Total().String())
	})

	t.Run("should fail when discount exceeds subtotal", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			money(t, "10"), money(t, "10.01"), "BIG", placedAt)

		require.ErrorIs(t, err, order.ErrDiscountExceedsSubtotal)
	})

	t.Run("should fail when discount has no coupon", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			money(t, "10"), money(t, "1"), "", placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, kernel.NewUUID(), invalidID, money(t, "10"), kernel.ZeroMoney(), "", time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Contains(t, err.Error(), "created at")
	})
}

func TestRestoreOrder(t *testing.T) {
	partnerID := kernel.NewUUID()

	t.Run("should restore assigned order", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			money(t, "50"), kernel.ZeroMoney(), "", order.Assigned, &partnerID, placedAt)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Partner())
		assert.True(t, o.Partner().IsEqual(partnerID))
	})

	t.Run("should reject assigned order without partner", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			money(t, "50"), kernel.ZeroMoney(), "", order.Assigned, nil, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject created order with partner", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			money(t, "50"), kernel.ZeroMoney(), "", order.Created, &partnerID, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		o := &order.Order{}
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	o1 := createValidOrder(t)
	o2 := createValidOrder(t)

	assert.True(t, o1.IsEqual(o1))
	assert.False(t, o1.IsEqual(o2))
	assert.False(t, o1.IsEqual(nil))
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should assign and complete", func(t *testing.T) {
		o := createValidOrder(t)
		partnerID := kernel.NewUUID()

		require.NoError(t, o.Assign(partnerID))
		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.Partner().IsEqual(partnerID))

		require.NoError(t, o.Complete())
		assert.Equal(t, order.Completed, o.Status())

		require.ErrorIs(t, o.Assign(kernel.NewUUID()), order.ErrOrderNotAssignable)
	})

	t.Run("should refuse a second live assignment", func(t *testing.T) {
		o := createValidOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, o.Assign(first))

		err := o.Assign(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrOrderNotAssignable)
		assert.True(t, o.Partner().IsEqual(first))
	})

	t.Run("should release back to created and be assignable again", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))

		require.NoError(t, o.Release())
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.Partner())

		require.NoError(t, o.Assign(kernel.NewUUID()))
	})

	t.Run("should fail to assign with invalid partner ID", func(t *testing.T) {
		o := createValidOrder(t)
		var invalidID kernel.UUID

		require.ErrorIs(t, o.Assign(invalidID), kernel.ErrUUIDIsNotConstructed)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("should not expose internal partner pointer", func(t *testing.T) {
		o := createValidOrder(t)
		partnerID := kernel.NewUUID()
		require.NoError(t, o.Assign(partnerID))

		returned := o.Partner()
		*returned = kernel.NewUUID()

		assert.True(t, o.Partner().IsEqual(partnerID))
	})
}
