package ports

import (
	"context"

	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"
)

// CouponRepository defines the persistence contract for coupons and their usages.
//
// The usage counter is never written through Update: it only changes through
// TryIncrementUsage, which is the linearization point of the global limit.
type CouponRepository interface {
	// Add persists a new coupon. Returns coupon.ErrCodeAlreadyExists when the
	// code is taken.
	Add(ctx context.Context, aggregate *coupon.Coupon) error

	// Update persists the mutable administrative fields (the active flag).
	Update(ctx context.Context, aggregate *coupon.Coupon) error

	// GetByCode retrieves a coupon by exact, case-sensitive code.
	// Returns errs.ErrObjectNotFound when no coupon has that code.
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// CountUsages returns the number of usage rows of userID for couponID.
	CountUsages(ctx context.Context, couponID, userID kernel.UUID) (int, error)

	// TryIncrementUsage increments the usage counter unless the usage limit is
	// already reached, in a single conditional statement. It reports whether a
	// row was updated. Inside a transaction the updated row stays locked until
	// commit or rollback.
	TryIncrementUsage(ctx context.Context, couponID kernel.UUID) (bool, error)

	// AddUsage appends a usage row.
	AddUsage(ctx context.Context, usage *coupon.Usage) error
}
