package commands

import (
	"context"

	"foodorder/internal/core/domain/model/assignment"
)

// CreateAssignmentCommandHandler creates an assignment in the assigned state.
//
// Business rules:
//   - the partner must be active and online at call time (partner.ErrPartnerUnavailable)
//   - the order must not have a live assignment (order.ErrOrderNotAssignable)
//
// The order row is locked so two dispatchers cannot assign the same order.
type CreateAssignmentCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewCreateAssignmentCommandHandler creates a handler for assignment creation.
func NewCreateAssignmentCommandHandler(uowFactory DispatchUoWFactory) CreateAssignmentCommandHandler {
	return CreateAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the assignment and moves the order to assigned.
func (h CreateAssignmentCommandHandler) Handle(ctx context.Context, cmd CreateAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.PartnerRepository().Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}
	if err = p.ValidateAvailable(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.Assign(p.ID()); err != nil {
		return err
	}

	a, err := assignment.NewAssignment(cmd.AssignmentID(), o.ID(), p.ID(), cmd.DeliveryFee(), cmd.Notes(), cmd.AssignedAt())
	if err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Add(ctx, a); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
