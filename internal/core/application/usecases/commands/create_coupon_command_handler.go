package commands

import (
	"context"

	"foodorder/internal/core/domain/model/coupon"
)

// CreateCouponCommandHandler persists new coupons.
type CreateCouponCommandHandler struct {
	uowFactory CouponUoWFactory
}

// NewCreateCouponCommandHandler creates a handler for coupon creation.
func NewCreateCouponCommandHandler(uowFactory CouponUoWFactory) CreateCouponCommandHandler {
	return CreateCouponCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the coupon. Returns coupon.ErrCodeAlreadyExists for a duplicate code.
func (h CreateCouponCommandHandler) Handle(ctx context.Context, cmd CreateCouponCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := coupon.NewCoupon(cmd.CouponID(), cmd.Code(), cmd.Discount(), cmd.Limits(), cmd.Window(), cmd.Restrictions())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CouponRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
