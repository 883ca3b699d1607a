// Package partner provides the delivery partner aggregate.
//
// The package includes:
//   - Partner: identity, eligibility flags, delivery counter and running rating
//
// Key business rules:
//   - Only partners that are both active and online can receive new assignments
//   - The delivery counter grows by exactly one per delivered assignment
//   - Ratings are whole scores from 1 to 5 averaged with two decimals
//
// Partners are written by administrative callers (availability) and by the
// assignment workflow (counter, rating); nothing else mutates them.
package partner
