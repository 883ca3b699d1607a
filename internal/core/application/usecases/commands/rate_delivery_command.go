package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrRateDeliveryCommandIsNotConstructed = errors.New(
	"RateDeliveryCommand must be created via NewRateDeliveryCommand constructor",
)

// RateDeliveryCommand stores the customer's score for a delivered assignment.
// The score range is checked by the aggregate.
type RateDeliveryCommand struct {
	assignmentID kernel.UUID
	score        int

	guard guard.ConstructorGuard
}

// NewRateDeliveryCommand validates the assignment ID.
func NewRateDeliveryCommand(assignmentID kernel.UUID, score int) (RateDeliveryCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return RateDeliveryCommand{}, err
	}
	return RateDeliveryCommand{
		assignmentID: assignmentID,
		score:        score,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateDeliveryCommandIsNotConstructed)
}

func (c RateDeliveryCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c RateDeliveryCommand) Score() int                { return c.score }
