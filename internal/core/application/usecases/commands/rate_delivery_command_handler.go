package commands

import (
	"context"
)

// RateDeliveryCommandHandler rates a delivered assignment once and folds the
// score into the partner's running average in the same transaction.
type RateDeliveryCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewRateDeliveryCommandHandler creates a handler for delivery ratings.
func NewRateDeliveryCommandHandler(uowFactory DispatchUoWFactory) RateDeliveryCommandHandler {
	return RateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the rating.
func (h RateDeliveryCommandHandler) Handle(ctx context.Context, cmd RateDeliveryCommand) error {
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
	partnerRepo := uow.PartnerRepository()

	a, err := assignmentRepo.GetForUpdate(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}
	if err = a.Rate(cmd.Score()); err != nil {
		return err
	}

	p, err := partnerRepo.GetForUpdate(ctx, a.PartnerID())
	if err != nil {
		return err
	}
	if err = p.Rate(cmd.Score()); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return err
	}
	if err = partnerRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
