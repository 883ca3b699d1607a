package commands

import (
	"context"
)

// DeactivateCouponCommandHandler flips a coupon's active flag off. Usages and
// the coupon row are kept. Deactivating an inactive coupon is a no-op.
type DeactivateCouponCommandHandler struct {
	uowFactory CouponUoWFactory
}

// NewDeactivateCouponCommandHandler creates a handler for coupon deactivation.
func NewDeactivateCouponCommandHandler(uowFactory CouponUoWFactory) DeactivateCouponCommandHandler {
	return DeactivateCouponCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deactivates the coupon. Returns errs.ErrObjectNotFound for unknown codes.
func (h DeactivateCouponCommandHandler) Handle(ctx context.Context, cmd DeactivateCouponCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couponRepo := uow.CouponRepository()

	c, err := couponRepo.GetByCode(ctx, cmd.Code())
	if err != nil {
		return err
	}
	if !c.IsActive() {
		return nil
	}

	c.Deactivate()
	if err = couponRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
