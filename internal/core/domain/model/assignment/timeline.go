package assignment

import (
	"fmt"
	"time"

	"foodorder/internal/pkg/errs"
)

// Timeline holds one timestamp per status the assignment has entered.
// A nil pointer means the status was never reached.
type Timeline struct {
	AssignedAt  time.Time
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// At returns the timestamp recorded for status, or nil.
func (t Timeline) At(status Status) *time.Time {
	switch status {
	case Assigned:
		if t.AssignedAt.IsZero() {
			return nil
		}
		at := t.AssignedAt
		return &at
	case Accepted:
		return t.AcceptedAt
	case PickedUp:
		return t.PickedUpAt
	case Delivered:
		return t.DeliveredAt
	case Cancelled:
		return t.CancelledAt
	case Unknown:
	}
	return nil
}

func (t *Timeline) set(status Status, at time.Time) {
	switch status {
	case Assigned:
		t.AssignedAt = at
	case Accepted:
		t.AcceptedAt = &at
	case PickedUp:
		t.PickedUpAt = &at
	case Delivered:
		t.DeliveredAt = &at
	case Cancelled:
		t.CancelledAt = &at
	case Unknown:
	}
}

// validateFor checks that exactly the statuses on a path ending in status carry a
// timestamp and that those timestamps never go backwards.
func (t Timeline) validateFor(status Status) error {
	if t.AssignedAt.IsZero() {
		return errs.NewValueIsRequiredError("assigned at")
	}

	path := []Status{Assigned}
	switch status {
	case Accepted:
		path = append(path, Accepted)
	case PickedUp:
		path = append(path, Accepted, PickedUp)
	case Delivered:
		path = append(path, Accepted, PickedUp, Delivered)
	case Cancelled:
		if t.AcceptedAt != nil {
			path = append(path, Accepted)
			if t.PickedUpAt != nil {
				path = append(path, PickedUp)
			}
		}
		path = append(path, Cancelled)
	case Assigned, Unknown:
	}

	entered := make(map[Status]bool, len(path))
	var prev time.Time
	for _, s := range path {
		at := t.At(s)
		if at == nil {
			return errs.NewValueIsRequiredError(fmt.Sprintf("%s timestamp", s))
		}
		if at.Before(prev) {
			return fmt.Errorf("%w: %s at %s precedes previous state at %s",
				ErrNonMonotonicTimestamp, s, at.Format(time.RFC3339Nano), prev.Format(time.RFC3339Nano))
		}
		prev = *at
		entered[s] = true
	}

	for _, s := range []Status{Accepted, PickedUp, Delivered, Cancelled} {
		if !entered[s] && t.At(s) != nil {
			return errs.NewValueIsInvalidErrorWithCause(
				"timeline",
				fmt.Errorf("%s timestamp is set but the status was never entered", s),
			)
		}
	}
	return nil
}
