package commands

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
)

// RecordTipCommandHandler adds tips to picked up or delivered assignments.
// Re-submitting the same tip adds it again.
type RecordTipCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewRecordTipCommandHandler creates a handler for tips.
func NewRecordTipCommandHandler(uowFactory DispatchUoWFactory) RecordTipCommandHandler {
	return RecordTipCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the tip and returns the new tips total.
func (h RecordTipCommandHandler) Handle(ctx context.Context, cmd RecordTipCommand) (kernel.Money, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.Money{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.Money{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()

	a, err := assignmentRepo.GetForUpdate(ctx, cmd.AssignmentID())
	if err != nil {
		return kernel.Money{}, err
	}

	if err = a.RecordTip(cmd.Amount()); err != nil {
		return kernel.Money{}, err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return kernel.Money{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.Money{}, err
	}

	return a.Tips(), nil
}
