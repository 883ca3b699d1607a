// Package assignment implements the delivery assignment lifecycle: a five-state
// machine (assigned, accepted, picked_up, delivered, cancelled) where every
// transition is timestamped and timestamps never go backwards.
//
// Terminal assignments reject every transition with ErrIllegalTransition.
// Side effects on partners and orders belong to the application layer.
package assignment
