// Package guard offers ConstructorGuard, a marker embedded in commands, queries
// and aggregates so that zero values built without their constructor are rejected.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the owning value went through its constructor.
// The zero value is "not constructed".
//
// Example:
//
//	type TransitionAssignmentCommand struct {
//	    assignmentID kernel.UUID
//	    guard        guard.ConstructorGuard
//	}
//
//	func (c TransitionAssignmentCommand) Validate() error {
//	    return c.guard.Validate(ErrTransitionAssignmentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
