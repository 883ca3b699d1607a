package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrCreateCouponCommandIsNotConstructed = errors.New(
	"CreateCouponCommand must be created via NewCreateCouponCommand constructor",
)

// CreateCouponCommand registers a new coupon. The discount, limits, window and
// restrictions are validated as domain values before the command is built, so
// the handler only checks the code's uniqueness.
type CreateCouponCommand struct {
	couponID     kernel.UUID
	code         string
	discount     coupon.Discount
	limits       coupon.Limits
	window       coupon.Window
	restrictions coupon.Restrictions

	guard guard.ConstructorGuard
}

// NewCreateCouponCommand validates the coupon definition by building it once.
func NewCreateCouponCommand(
	couponID kernel.UUID,
	code string,
	discount coupon.Discount,
	limits coupon.Limits,
	window coupon.Window,
	restrictions coupon.Restrictions,
) (CreateCouponCommand, error) {
	if _, err := coupon.NewCoupon(couponID, code, discount, limits, window, restrictions); err != nil {
		return CreateCouponCommand{}, err
	}

	return CreateCouponCommand{
		couponID:     couponID,
		code:         code,
		discount:     discount,
		limits:       limits,
		window:       window,
		restrictions: restrictions,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCouponCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouponCommandIsNotConstructed)
}

func (c CreateCouponCommand) CouponID() kernel.UUID             { return c.couponID }
func (c CreateCouponCommand) Code() string                      { return c.code }
func (c CreateCouponCommand) Discount() coupon.Discount         { return c.discount }
func (c CreateCouponCommand) Limits() coupon.Limits             { return c.limits }
func (c CreateCouponCommand) Window() coupon.Window             { return c.window }
func (c CreateCouponCommand) Restrictions() coupon.Restrictions { return c.restrictions }
