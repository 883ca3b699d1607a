package services

import (
	"time"

	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"
)

// Redemption describes the order a coupon is being priced against.
type Redemption struct {
	UserID       kernel.UUID
	OrderAmount  kernel.Money
	RestaurantID kernel.UUID
	CategoryIDs  []kernel.UUID
	Now          time.Time
}

// CouponEvaluator is a domain service that decides whether a coupon applies to
// an order and how much it takes off.
//
// Business rules, checked in this order (the first failure wins):
//  1. the coupon exists (NotFound)
//  2. it is active (Inactive)
//  3. its start, when set, is not after now (NotStarted)
//  4. its expiry, when set, is not before now (Expired)
//  5. the global usage limit, when set, is not exhausted (GlobalLimitReached)
//  6. the user has fewer usages than the per-user limit (UserLimitReached)
//  7. the order meets the minimum amount, when set (BelowMinimumOrder)
//  8. the restaurant is eligible, when restricted (RestaurantNotEligible)
//  9. at least one category is eligible, when restricted (CategoryNotEligible)
//
// When every check passes the discount is computed by the coupon and returned
// as an approval. The evaluator never mutates the coupon.
//
// Example usage:
//
//	evaluator := NewCouponEvaluator()
//	decision := evaluator.Evaluate(c, userUsages, Redemption{
//	    UserID:       userID,
//	    OrderAmount:  amount,
//	    RestaurantID: restaurantID,
//	    Now:          time.Now(),
//	})
//	if !decision.IsApproved() {
//	    return decision.Err(code)
//	}
type CouponEvaluator struct{}

// NewCouponEvaluator creates a new CouponEvaluator instance.
func NewCouponEvaluator() CouponEvaluator {
	return CouponEvaluator{}
}

// Evaluate runs the validation sequence for c. A nil coupon means the code did
// not match any row. userUsages is the number of usage rows the user already
// has for c.
func (e CouponEvaluator) Evaluate(c *coupon.Coupon, userUsages int, r Redemption) coupon.Decision {
	if reason := e.check(c, userUsages, r); reason != coupon.NoRejection {
		return coupon.Rejected(reason)
	}
	return coupon.Approved(c.CalculateDiscount(r.OrderAmount))
}

func (e CouponEvaluator) check(c *coupon.Coupon, userUsages int, r Redemption) coupon.Rejection {
	switch {
	case c == nil || c.Validate() != nil:
		return coupon.NotFound
	case !c.IsActive():
		return coupon.Inactive
	case !c.HasStarted(r.Now):
		return coupon.NotStarted
	case c.HasExpired(r.Now):
		return coupon.Expired
	case c.IsGloballyExhausted():
		return coupon.GlobalLimitReached
	case c.IsExhaustedFor(userUsages):
		return coupon.UserLimitReached
	case !c.MeetsMinimumOrder(r.OrderAmount):
		return coupon.BelowMinimumOrder
	case !c.AcceptsRestaurant(r.RestaurantID):
		return coupon.RestaurantNotEligible
	case !c.AcceptsCategories(r.CategoryIDs):
		return coupon.CategoryNotEligible
	default:
		return coupon.NoRejection
	}
}
