package assignment

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery assignment.
//
// State transitions:
//
//	Assigned ──> Accepted ──> PickedUp ──> Delivered
//	    │            │            │
//	    └────────────┴────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Assigned is the initial status: a partner was picked for the order.
	Assigned

	// Accepted means the partner confirmed the job.
	Accepted

	// PickedUp means the partner collected the order from the restaurant.
	PickedUp

	// Delivered means the order reached the customer. Terminal.
	Delivered

	// Cancelled means the assignment was abandoned. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Assigned:  "assigned",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// edges lists every legal transition. Anything missing is illegal.
var edges = map[Status][]Status{
	Assigned: {Accepted, Cancelled},
	Accepted: {PickedUp, Cancelled},
	PickedUp: {Delivered, Cancelled},
}

// ParseStatus maps a persisted or wire name ("picked_up") to its Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid assignment status", s),
	)
}

// Validate checks if the Status value is one of the five known states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used in storage and on the wire.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether s -> target is a legal edge.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range edges[s] {
		if next == target {
			return true
		}
	}
	return false
}
