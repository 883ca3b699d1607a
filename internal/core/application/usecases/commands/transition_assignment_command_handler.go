package commands

import (
	"context"

	"foodorder/internal/core/domain/model/assignment"
)

// TransitionAssignmentCommandHandler applies one state machine step.
//
// Side effects in the same transaction:
//   - delivered: the partner's delivery counter grows by one and the order completes
//   - cancelled: the order goes back to created for another dispatch
//
// The assignment row is locked first. A concurrent transition of the same
// assignment waits, then sees the new status and fails with
// assignment.ErrIllegalTransition.
//
// Example:
//
//	cmd, _ := NewTransitionAssignmentCommand(id, assignment.Delivered, reportedAt, "")
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, assignment.ErrIllegalTransition):
//	    // stale client state
//	case errors.Is(err, assignment.ErrNonMonotonicTimestamp):
//	    // client clock skew
//	}
type TransitionAssignmentCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewTransitionAssignmentCommandHandler creates a handler for assignment transitions.
func NewTransitionAssignmentCommandHandler(uowFactory DispatchUoWFactory) TransitionAssignmentCommandHandler {
	return TransitionAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle performs the transition. On any error nothing is written.
func (h TransitionAssignmentCommandHandler) Handle(ctx context.Context, cmd TransitionAssignmentCommand) error {
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

	assignmentRepo := uow.AssignmentRepository()

	a, err := assignmentRepo.GetForUpdate(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}

	if err = a.Transition(cmd.Target(), cmd.At(), cmd.Reason()); err != nil {
		return err
	}

	switch a.Status() {
	case assignment.Delivered:
		err = h.completeDelivery(ctx, uow, a)
	case assignment.Cancelled:
		err = h.releaseOrder(ctx, uow, a)
	case assignment.Unknown, assignment.Assigned, assignment.Accepted, assignment.PickedUp:
	}
	if err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h TransitionAssignmentCommandHandler) completeDelivery(ctx context.Context, uow DispatchUoW, a *assignment.Assignment) error {
	partnerRepo := uow.PartnerRepository()
	p, err := partnerRepo.GetForUpdate(ctx, a.PartnerID())
	if err != nil {
		return err
	}
	p.CompleteDelivery()
	if err = partnerRepo.Update(ctx, p); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, a.OrderID())
	if err != nil {
		return err
	}
	if err = o.Complete(); err != nil {
		return err
	}
	return orderRepo.Update(ctx, o)
}

func (h TransitionAssignmentCommandHandler) releaseOrder(ctx context.Context, uow DispatchUoW, a *assignment.Assignment) error {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, a.OrderID())
	if err != nil {
		return err
	}
	if err = o.Release(); err != nil {
		return err
	}
	return orderRepo.Update(ctx, o)
}
