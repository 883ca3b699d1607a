// Package order provides the Order aggregate of the food-ordering service.
//
// The package includes:
//   - Order: identity, pricing (subtotal, coupon discount, total) and dispatch state
//   - Status: a state machine that enforces valid order status transitions
//
// Key business rules:
//   - Order status follows Created -> Assigned -> Completed
//   - An Assigned order goes back to Created when its assignment is cancelled
//   - An order has at most one live assignment
//   - Total = Subtotal - Discount and is never negative
package order
