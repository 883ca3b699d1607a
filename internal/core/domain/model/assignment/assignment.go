package assignment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment was not created via a constructor.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

	// ErrIllegalTransition is returned for any edge outside the state machine,
	// including every attempt to leave a terminal state.
	ErrIllegalTransition = errors.New("illegal assignment transition")

	// ErrNonMonotonicTimestamp is returned when a transition is dated before the
	// timestamp of the state it leaves.
	ErrNonMonotonicTimestamp = errors.New("transition timestamp precedes current state")

	// ErrTipNotAllowed is returned when tipping an assignment that is not picked up or delivered.
	ErrTipNotAllowed = errors.New("tips are only accepted once the order is picked up")

	// ErrRatingNotAllowed is returned when rating an assignment that was not delivered.
	ErrRatingNotAllowed = errors.New("only delivered assignments can be rated")

	// ErrAlreadyRated is returned on a second rating of the same assignment.
	ErrAlreadyRated = errors.New("assignment is already rated")

	ErrCancellationReasonIsRequired = errs.NewValueIsRequiredError("cancellation reason")
)

// Assignment tracks one delivery partner's handling of one order, from dispatch
// until it is delivered or cancelled. Once terminal it only accepts tips
// (when delivered) and a single rating.
type Assignment struct {
	id                 kernel.UUID
	orderID            kernel.UUID
	partnerID          kernel.UUID
	status             Status
	timeline           Timeline
	cancellationReason string
	deliveryFee        kernel.Money
	tips               kernel.Money
	notes              string
	rating             *int
	guard              guard.ConstructorGuard
}

// NewAssignment creates an assignment in the Assigned state, stamped at now.
// Partner eligibility is checked by the caller before construction.
func NewAssignment(
	id, orderID, partnerID kernel.UUID,
	deliveryFee kernel.Money,
	notes string,
	now time.Time,
) (*Assignment, error) {
	return RestoreAssignment(id, orderID, partnerID, Assigned, Timeline{AssignedAt: now},
		"", deliveryFee, kernel.ZeroMoney(), notes, nil)
}

// RestoreAssignment rebuilds an assignment from persistence and re-checks the
// timeline against the status.
func RestoreAssignment(
	id, orderID, partnerID kernel.UUID,
	status Status,
	timeline Timeline,
	cancellationReason string,
	deliveryFee kernel.Money,
	tips kernel.Money,
	notes string,
	rating *int,
) (*Assignment, error) {
	a := &Assignment{
		cancellationReason: cancellationReason,
		deliveryFee:        deliveryFee,
		tips:               tips,
		notes:              notes,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setIDs(id, orderID, partnerID),
		a.setState(status, timeline, cancellationReason),
		a.setRating(rating),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the assignment was built through a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID            { return a.id }
func (a *Assignment) OrderID() kernel.UUID       { return a.orderID }
func (a *Assignment) PartnerID() kernel.UUID     { return a.partnerID }
func (a *Assignment) Status() Status             { return a.status }
func (a *Assignment) Timeline() Timeline         { return a.timeline }
func (a *Assignment) CancellationReason() string { return a.cancellationReason }
func (a *Assignment) DeliveryFee() kernel.Money  { return a.deliveryFee }
func (a *Assignment) Tips() kernel.Money         { return a.tips }
func (a *Assignment) Notes() string              { return a.notes }

// Rating returns the customer's score, or nil when not rated yet.
func (a *Assignment) Rating() *int {
	if a.rating == nil {
		return nil
	}
	r := *a.rating
	return &r
}

// IsTerminal reports whether the assignment is delivered or cancelled.
func (a *Assignment) IsTerminal() bool {
	return a.status.IsTerminal()
}

// Transition moves the assignment to target at now.
//
// Rules, checked in order:
//   - target must be a legal edge from the current status (ErrIllegalTransition)
//   - a move to Cancelled needs a non-blank reason
//   - now must not precede the timestamp of the current status (ErrNonMonotonicTimestamp)
//
// On failure the assignment is left unchanged.
func (a *Assignment) Transition(target Status, now time.Time, reason string) error {
	if !a.status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.status, target)
	}

	reason = strings.TrimSpace(reason)
	if target == Cancelled && reason == "" {
		return ErrCancellationReasonIsRequired
	}

	if current := a.timeline.At(a.status); current != nil && now.Before(*current) {
		return fmt.Errorf("%w: %s at %s is before %s at %s",
			ErrNonMonotonicTimestamp,
			target, now.Format(time.RFC3339Nano),
			a.status, current.Format(time.RFC3339Nano))
	}

	a.timeline.set(target, now)
	a.status = target
	if target == Cancelled {
		a.cancellationReason = reason
	}
	return nil
}

// RecordTip adds amount to the accumulated tips. Re-submissions are not deduplicated.
func (a *Assignment) RecordTip(amount kernel.Money) error {
	if a.status != PickedUp && a.status != Delivered {
		return fmt.Errorf("%w: assignment is %s", ErrTipNotAllowed, a.status)
	}
	a.tips = a.tips.Add(amount)
	return nil
}

// Rate stores the customer's score for a delivered assignment. It can be set once.
func (a *Assignment) Rate(score int) error {
	if a.status != Delivered {
		return fmt.Errorf("%w: assignment is %s", ErrRatingNotAllowed, a.status)
	}
	if a.rating != nil {
		return ErrAlreadyRated
	}
	if err := validateScore(score); err != nil {
		return err
	}
	a.rating = &score
	return nil
}

func (a *Assignment) setIDs(id, orderID, partnerID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), partnerID.Validate()); err != nil {
		return err
	}
	a.id = id
	a.orderID = orderID
	a.partnerID = partnerID
	return nil
}

func (a *Assignment) setState(status Status, timeline Timeline, reason string) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := timeline.validateFor(status); err != nil {
		return err
	}
	if status == Cancelled && strings.TrimSpace(reason) == "" {
		return ErrCancellationReasonIsRequired
	}
	a.status = status
	a.timeline = timeline
	return nil
}

func (a *Assignment) setRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if a.status != Delivered {
		return fmt.Errorf("%w: assignment is %s", ErrRatingNotAllowed, a.status)
	}
	if err := validateScore(*rating); err != nil {
		return err
	}
	r := *rating
	a.rating = &r
	return nil
}

func validateScore(score int) error {
	if score < MinRating || score > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", score, MinRating, MaxRating)
	}
	return nil
}
