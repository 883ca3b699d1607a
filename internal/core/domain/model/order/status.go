package order

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Created ──> Assigned ──> Completed
//	   ^           │
//	   └───────────┘
//	 (released when the assignment is cancelled)
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is placed.
	// Orders in this status are waiting for a delivery partner.
	Created

	// Assigned indicates a live delivery assignment exists for the order.
	Assigned

	// Completed indicates the order was delivered.
	// This is a final state with no further transitions allowed.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Created:   "created",
		Assigned:  "assigned",
		Completed: "completed",
	}
}

// ParseStatus maps a persisted name back to its Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, Assigned, Completed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s < Created || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateAssign checks if the status allows assignment without performing the transition.
// Only Created orders can be assigned; a second live assignment is refused.
func (s Status) ValidateAssign() error {
	if s != Created {
		return fmt.Errorf("%w: %s order cannot be assigned", ErrOrderNotAssignable, s)
	}
	return nil
}

// ValidateCanHavePartner validates the consistency between order status and partner assignment.
//
// Business Rules:
//   - Created orders must not have a partner
//   - Assigned and Completed orders must have a partner
func (s Status) ValidateCanHavePartner(partner bool) error {
	if partner && s != Assigned && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a partner", s.String()),
		)
	}

	if !partner && (s == Assigned || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no partner", s.String()),
		)
	}

	return nil
}

// Assign transitions Created -> Assigned.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}

	return Assigned, nil
}

// Complete transitions Assigned -> Completed.
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Release transitions Assigned -> Created so the order can be dispatched again.
func (s Status) Release() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to release", s.String()),
		)
	}

	return Created, nil
}
