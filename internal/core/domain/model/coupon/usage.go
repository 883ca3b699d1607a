package coupon

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// ErrUsedAtIsRequired is returned when a usage has no timestamp.
var ErrUsedAtIsRequired = errs.NewValueIsRequiredError("used at")

// Usage records one successful redemption of a coupon by a user.
// Usages are append-only: once written they are never changed or deleted.
type Usage struct {
	id             kernel.UUID
	couponID       kernel.UUID
	userID         kernel.UUID
	orderID        *kernel.UUID
	discountAmount kernel.Money
	usedAt         time.Time
}

// NewUsage creates a usage record. orderID may be nil for redemptions committed
// outside an order.
func NewUsage(
	id, couponID, userID kernel.UUID,
	orderID *kernel.UUID,
	discountAmount kernel.Money,
	usedAt time.Time,
) (*Usage, error) {
	u := &Usage{
		discountAmount: discountAmount,
	}

	if err := errors.Join(
		id.Validate(),
		couponID.Validate(),
		userID.Validate(),
		u.setOrderID(orderID),
		u.setUsedAt(usedAt),
	); err != nil {
		return nil, err
	}
	u.id = id
	u.couponID = couponID
	u.userID = userID

	return u, nil
}

func (u *Usage) ID() kernel.UUID              { return u.id }
func (u *Usage) CouponID() kernel.UUID        { return u.couponID }
func (u *Usage) UserID() kernel.UUID          { return u.userID }
func (u *Usage) OrderID() *kernel.UUID        { return u.orderID }
func (u *Usage) DiscountAmount() kernel.Money { return u.discountAmount }
func (u *Usage) UsedAt() time.Time            { return u.usedAt }

func (u *Usage) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	u.orderID = &id
	return nil
}

func (u *Usage) setUsedAt(usedAt time.Time) error {
	if usedAt.IsZero() {
		return ErrUsedAtIsRequired
	}
	u.usedAt = usedAt
	return nil
}
