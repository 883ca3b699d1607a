// Package services provides domain services that implement business rules
// spanning more than one value of the domain model.
//
// The package includes:
//   - CouponEvaluator: the coupon validation sequence and discount pricing
package services
