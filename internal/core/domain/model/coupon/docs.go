// Package coupon models discount coupons and their redemptions.
//
// The package includes:
//   - Coupon: the aggregate holding the discount rule, usage limits, validity
//     window and restaurant/category restrictions
//   - Discount: fixed or percentage pricing, with an optional cap on percentages
//   - Usage: the append-only record of one redemption
//   - Rejection and Decision: the closed set of refusal reasons and the outcome
//     of an evaluation
//
// Coupons are never deleted; Deactivate flips the active flag instead.
package coupon
