package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrRecordTipCommandIsNotConstructed = errors.New(
	"RecordTipCommand must be created via NewRecordTipCommand constructor",
)

// RecordTipCommand adds a tip to an assignment. Amounts are non-negative by
// construction of kernel.Money.
type RecordTipCommand struct {
	assignmentID kernel.UUID
	amount       kernel.Money

	guard guard.ConstructorGuard
}

// NewRecordTipCommand validates the assignment ID.
func NewRecordTipCommand(assignmentID kernel.UUID, amount kernel.Money) (RecordTipCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return RecordTipCommand{}, err
	}
	return RecordTipCommand{
		assignmentID: assignmentID,
		amount:       amount,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordTipCommand) Validate() error {
	return c.guard.Validate(ErrRecordTipCommandIsNotConstructed)
}

func (c RecordTipCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c RecordTipCommand) Amount() kernel.Money      { return c.amount }
