package order

import (
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderNotAssignable is returned when dispatching an order that already has a
	// live assignment or is completed.
	ErrOrderNotAssignable = errors.New("order cannot be assigned")

	// ErrDiscountExceedsSubtotal is returned when the discount is larger than the subtotal.
	ErrDiscountExceedsSubtotal = errors.New("discount exceeds order subtotal")
)

// Order represents a placed food order. It is the aggregate root the coupon
// engine prices and the dispatch workflow assigns.
//
// Order follows these invariants:
//   - Must have valid order, user and restaurant identifiers
//   - Discount never exceeds the subtotal, so Total is never negative
//   - A coupon code is recorded only together with the discount it granted
//   - Status and partner stay consistent (see Status.ValidateCanHavePartner)
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// userID is the customer who placed the order
	userID kernel.UUID

	// restaurantID is the restaurant preparing the order
	restaurantID kernel.UUID

	// subtotal is the sum of the items before discount
	subtotal kernel.Money

	// discount is the coupon discount applied at placement
	discount kernel.Money

	// couponCode is the redeemed coupon, empty when none
	couponCode string

	// status represents the current state in the order lifecycle
	status Status

	// partnerID is the delivery partner of the live assignment (nil if unassigned)
	partnerID *kernel.UUID

	// createdAt is when the order was placed
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Created status.
//
// Parameters:
//   - id, userID, restaurantID: identifiers (must be valid UUIDs)
//   - subtotal: order amount before discount
//   - discount: approved coupon discount, zero without a coupon
//   - couponCode: redeemed code, empty without a coupon
//   - createdAt: placement time
//
// Example:
//
//	subtotal, _ := kernel.MoneyFromString("120")
//	o, err := order.NewOrder(kernel.NewUUID(), userID, restaurantID, subtotal, kernel.ZeroMoney(), "", time.Now())
func NewOrder(
	id, userID, restaurantID kernel.UUID,
	subtotal, discount kernel.Money,
	couponCode string,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, userID, restaurantID, subtotal, discount, couponCode, Created, nil, createdAt)
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(
	id, userID, restaurantID kernel.UUID,
	subtotal, discount kernel.Money,
	couponCode string,
	status Status,
	partnerID *kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setIDs(id, userID, restaurantID),
		order.setPricing(subtotal, discount, couponCode),
		order.setStatus(status, partnerID),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}

	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// RestaurantID returns the restaurant preparing the order.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Subtotal returns the amount before discount.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// Discount returns the coupon discount.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// Total returns subtotal minus discount.
func (o *Order) Total() kernel.Money {
	return o.subtotal.SubFloor(o.discount)
}

// CouponCode returns the redeemed coupon code, or "".
func (o *Order) CouponCode() string {
	return o.couponCode
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Partner returns the assigned partner's ID, or nil.
func (o *Order) Partner() *kernel.UUID {
	if o.partnerID == nil {
		return nil
	}
	id := *o.partnerID
	return &id
}

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Assign records partnerID as the delivery partner and moves the order to Assigned.
// Returns ErrOrderNotAssignable unless the order is Created.
func (o *Order) Assign(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.partnerID = &partnerID
	return nil
}

// Complete marks the order as delivered.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Release detaches the partner after a cancelled assignment so the order can be
// dispatched again.
func (o *Order) Release() error {
	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.partnerID = nil
	return nil
}

func (o *Order) setIDs(id, userID, restaurantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), userID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	o.id = id
	o.userID = userID
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setPricing(subtotal, discount kernel.Money, couponCode string) error {
	if discount.GreaterThan(subtotal) {
		return fmt.Errorf("%w: %s > %s", ErrDiscountExceedsSubtotal, discount, subtotal)
	}
	if couponCode == "" && !discount.IsZero() {
		return errs.NewValueIsRequiredErrorWithCause(
			"coupon code",
			fmt.Errorf("discount %s without a coupon", discount),
		)
	}
	o.subtotal = subtotal
	o.discount = discount
	o.couponCode = couponCode
	return nil
}

func (o *Order) setStatus(status Status, partnerID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHavePartner(partnerID != nil); err != nil {
		return err
	}
	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return err
		}
		id := *partnerID
		o.partnerID = &id
	}
	o.status = status
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}
