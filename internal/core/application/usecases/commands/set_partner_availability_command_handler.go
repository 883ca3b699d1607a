package commands

import (
	"context"
)

// SetPartnerAvailabilityCommandHandler updates partner eligibility. Existing
// assignments are not affected: eligibility is only read when an assignment
// is created.
type SetPartnerAvailabilityCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewSetPartnerAvailabilityCommandHandler creates a handler for availability changes.
func NewSetPartnerAvailabilityCommandHandler(uowFactory PartnerUoWFactory) SetPartnerAvailabilityCommandHandler {
	return SetPartnerAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the flags. Returns errs.ErrObjectNotFound for unknown partners.
func (h SetPartnerAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetPartnerAvailabilityCommand) error {
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

	partnerRepo := uow.PartnerRepository()

	p, err := partnerRepo.GetForUpdate(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	p.SetAvailability(cmd.Online(), cmd.Active())
	if err = partnerRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
