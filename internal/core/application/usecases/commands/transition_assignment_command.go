package commands

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrTransitionAssignmentCommandIsNotConstructed = errors.New(
	"TransitionAssignmentCommand must be created via NewTransitionAssignmentCommand constructor",
)

// TransitionAssignmentCommand moves an assignment along its state machine.
// At is the time reported by the partner's client; it must not precede the
// timestamp of the current state.
type TransitionAssignmentCommand struct {
	assignmentID kernel.UUID
	target       assignment.Status
	at           time.Time
	reason       string

	guard guard.ConstructorGuard
}

// NewTransitionAssignmentCommand validates the identifier, the target status
// and the timestamp, which is truncated to TimePrecision. Edge legality is
// decided by the aggregate.
func NewTransitionAssignmentCommand(
	assignmentID kernel.UUID,
	target assignment.Status,
	at time.Time,
	reason string,
) (TransitionAssignmentCommand, error) {
	if err := errors.Join(
		assignmentID.Validate(),
		target.Validate(),
		requireTime("at", at),
	); err != nil {
		return TransitionAssignmentCommand{}, err
	}

	return TransitionAssignmentCommand{
		assignmentID: assignmentID,
		target:       target,
		at:           at.Truncate(TimePrecision),
		reason:       reason,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionAssignmentCommandIsNotConstructed)
}

func (c TransitionAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c TransitionAssignmentCommand) Target() assignment.Status { return c.target }
func (c TransitionAssignmentCommand) At() time.Time             { return c.at }
func (c TransitionAssignmentCommand) Reason() string            { return c.reason }
