package commands

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrCreateAssignmentCommandIsNotConstructed = errors.New(
	"CreateAssignmentCommand must be created via NewCreateAssignmentCommand constructor",
)

// CreateAssignmentCommand dispatches an order to a delivery partner chosen by
// the caller.
//
// Example:
//
//	cmd, err := NewCreateAssignmentCommand(kernel.NewUUID(), orderID, partnerID, fee, "ring twice", time.Now())
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, partner.ErrPartnerUnavailable) {
//	    // pick another partner
//	}
type CreateAssignmentCommand struct {
	assignmentID kernel.UUID
	orderID      kernel.UUID
	partnerID    kernel.UUID
	deliveryFee  kernel.Money
	notes        string
	assignedAt   time.Time

	guard guard.ConstructorGuard
}

// NewCreateAssignmentCommand validates identifiers and the assignment time.
func NewCreateAssignmentCommand(
	assignmentID, orderID, partnerID kernel.UUID,
	deliveryFee kernel.Money,
	notes string,
	assignedAt time.Time,
) (CreateAssignmentCommand, error) {
	if err := errors.Join(
		assignmentID.Validate(),
		orderID.Validate(),
		partnerID.Validate(),
		requireTime("assigned at", assignedAt),
	); err != nil {
		return CreateAssignmentCommand{}, err
	}

	return CreateAssignmentCommand{
		assignmentID: assignmentID,
		orderID:      orderID,
		partnerID:    partnerID,
		deliveryFee:  deliveryFee,
		notes:        notes,
		assignedAt:   assignedAt.Truncate(TimePrecision),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAssignmentCommandIsNotConstructed)
}

func (c CreateAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c CreateAssignmentCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CreateAssignmentCommand) PartnerID() kernel.UUID    { return c.partnerID }
func (c CreateAssignmentCommand) DeliveryFee() kernel.Money { return c.deliveryFee }
func (c CreateAssignmentCommand) Notes() string             { return c.notes }
func (c CreateAssignmentCommand) AssignedAt() time.Time     { return c.assignedAt }
