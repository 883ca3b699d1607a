package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
)

// redeemCoupon records one redemption of c inside the caller's transaction.
//
// The conditional increment is the only place the global limit is enforced
// under concurrency. It also locks the coupon row, so the per-user count read
// right after it cannot race with another redemption of the same coupon.
func redeemCoupon(
	ctx context.Context,
	repo ports.CouponRepository,
	c *coupon.Coupon,
	userID kernel.UUID,
	orderID *kernel.UUID,
	discount kernel.Money,
	usedAt time.Time,
) (*coupon.Usage, error) {
	incremented, err := repo.TryIncrementUsage(ctx, c.ID())
	if err != nil {
		return nil, err
	}
	if !incremented {
		return nil, coupon.NewRejectedError(c.Code(), coupon.ConcurrentLimitExceeded)
	}

	userUsages, err := repo.CountUsages(ctx, c.ID(), userID)
	if err != nil {
		return nil, err
	}
	if c.IsExhaustedFor(userUsages) {
		return nil, coupon.NewRejectedError(c.Code(), coupon.UserLimitReached)
	}

	usage, err := coupon.NewUsage(kernel.NewUUID(), c.ID(), userID, orderID, discount, usedAt)
	if err != nil {
		return nil, err
	}

	if err = repo.AddUsage(ctx, usage); err != nil {
		return nil, err
	}

	return usage, nil
}
