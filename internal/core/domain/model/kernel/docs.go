// Package kernel provides the shared value objects of the food-ordering core.
//
// The package includes:
//   - UUID: the opaque identifier of every entity, comparable and map-key friendly
//   - Money: a non-negative amount kept at two decimal places with round-half-even
//
// Both are immutable and safe for concurrent use.
package kernel
