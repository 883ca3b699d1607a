package commands

import (
	"context"

	"foodorder/internal/core/domain/model/partner"
)

// CreatePartnerCommandHandler registers delivery partners. New partners are
// active; the command decides whether they start online.
type CreatePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewCreatePartnerCommandHandler creates a handler for partner registration.
func NewCreatePartnerCommandHandler(uowFactory PartnerUoWFactory) CreatePartnerCommandHandler {
	return CreatePartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists the new partner.
func (h CreatePartnerCommandHandler) Handle(ctx context.Context, cmd CreatePartnerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := partner.NewPartner(cmd.PartnerID(), cmd.Name())
	if err != nil {
		return err
	}
	p.SetAvailability(cmd.Online(), true)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PartnerRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
