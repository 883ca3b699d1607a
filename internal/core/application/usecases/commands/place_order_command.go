package commands

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand places an order, optionally redeeming a coupon.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), userID, restaurantID, subtotal,
//	    categoryIDs, "SAVE20", time.Now())
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Println(result.Total) // subtotal minus the coupon discount
type PlaceOrderCommand struct {
	orderID      kernel.UUID
	userID       kernel.UUID
	restaurantID kernel.UUID
	subtotal     kernel.Money
	categoryIDs  []kernel.UUID
	couponCode   string
	placedAt     time.Time

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the order input. couponCode may be empty.
func NewPlaceOrderCommand(
	orderID, userID, restaurantID kernel.UUID,
	subtotal kernel.Money,
	categoryIDs []kernel.UUID,
	couponCode string,
	placedAt time.Time,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		subtotal:   subtotal,
		couponCode: couponCode,
		placedAt:   placedAt,
		guard:      guard.NewConstructorGuard(),
	}

	categoryErrs := make([]error, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		categoryErrs = append(categoryErrs, id.Validate())
	}

	if err := errors.Join(
		orderID.Validate(),
		userID.Validate(),
		restaurantID.Validate(),
		errors.Join(categoryErrs...),
		requireTime("placed at", placedAt),
	); err != nil {
		return PlaceOrderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.userID = userID
	cmd.restaurantID = restaurantID
	cmd.categoryIDs = append([]kernel.UUID(nil), categoryIDs...)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c PlaceOrderCommand) UserID() kernel.UUID       { return c.userID }
func (c PlaceOrderCommand) RestaurantID() kernel.UUID { return c.restaurantID }
func (c PlaceOrderCommand) Subtotal() kernel.Money    { return c.subtotal }
func (c PlaceOrderCommand) CouponCode() string        { return c.couponCode }
func (c PlaceOrderCommand) PlacedAt() time.Time       { return c.placedAt }

// CategoryIDs returns the menu categories in the order.
func (c PlaceOrderCommand) CategoryIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.categoryIDs...)
}
