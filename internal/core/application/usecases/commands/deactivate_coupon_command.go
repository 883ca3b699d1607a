package commands

import (
	"errors"

	"foodorder/internal/pkg/guard"
)

var ErrDeactivateCouponCommandIsNotConstructed = errors.New(
	"DeactivateCouponCommand must be created via NewDeactivateCouponCommand constructor",
)

// DeactivateCouponCommand soft-deletes a coupon by its code.
type DeactivateCouponCommand struct {
	code  string
	guard guard.ConstructorGuard
}

// NewDeactivateCouponCommand requires a non-empty code.
func NewDeactivateCouponCommand(code string) (DeactivateCouponCommand, error) {
	if err := requireCode(code); err != nil {
		return DeactivateCouponCommand{}, err
	}
	return DeactivateCouponCommand{code: code, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateCouponCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateCouponCommandIsNotConstructed)
}

// Code returns the coupon code.
func (c DeactivateCouponCommand) Code() string {
	return c.code
}
