package commands

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// CommitCouponCommandHandler increments the coupon's usage counter and appends
// the usage row in one transaction.
//
// Example:
//
//	handler := NewCommitCouponCommandHandler(uowFactory)
//	usageID, err := handler.Handle(ctx, cmd)
//	switch coupon.RejectionOf(err) {
//	case coupon.ConcurrentLimitExceeded:
//	    // the last redemption was taken by someone else
//	case coupon.UserLimitReached:
//	    // the user already used the coupon
//	}
type CommitCouponCommandHandler struct {
	uowFactory CouponUoWFactory
}

// NewCommitCouponCommandHandler creates a handler for standalone redemptions.
func NewCommitCouponCommandHandler(uowFactory CouponUoWFactory) CommitCouponCommandHandler {
	return CommitCouponCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle commits the redemption and returns the usage ID. Rejections are
// returned as *coupon.RejectedError; nothing is persisted on any error.
func (h CommitCouponCommandHandler) Handle(ctx context.Context, cmd CommitCouponCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couponRepo := uow.CouponRepository()

	c, err := couponRepo.GetByCode(ctx, cmd.Code())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, coupon.NewRejectedError(cmd.Code(), coupon.NotFound)
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	usage, err := redeemCoupon(ctx, couponRepo, c, cmd.UserID(), cmd.OrderID(), cmd.DiscountAmount(), cmd.UsedAt())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return usage.ID(), nil
}
