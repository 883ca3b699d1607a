package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/pkg/guard"
)

var ErrCreatePartnerCommandIsNotConstructed = errors.New(
	"CreatePartnerCommand must be created via NewCreatePartnerCommand constructor",
)

// CreatePartnerCommand represents a request to register a new delivery partner.
//
// Example:
//
//	cmd, err := NewCreatePartnerCommand(kernel.NewUUID(), "John Doe", true)
//	if err != nil {
//	    return fmt.Errorf("invalid partner data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreatePartnerCommand struct {
	partnerID kernel.UUID
	name      string
	online    bool

	guard guard.ConstructorGuard
}

// NewCreatePartnerCommand creates a command with validated partner identity.
func NewCreatePartnerCommand(partnerID kernel.UUID, name string, online bool) (CreatePartnerCommand, error) {
	cmd := CreatePartnerCommand{
		online: online,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setName(name),
	); err != nil {
		return CreatePartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrCreatePartnerCommandIsNotConstructed)
}

// PartnerID returns the identifier of the new partner.
func (c CreatePartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Name returns the partner's name.
func (c CreatePartnerCommand) Name() string {
	return c.name
}

// Online reports whether the partner starts online.
func (c CreatePartnerCommand) Online() bool {
	return c.online
}

func (c *CreatePartnerCommand) setPartnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.partnerID = id
	return nil
}

func (c *CreatePartnerCommand) setName(name string) error {
	if name == "" {
		return partner.ErrNameIsRequired
	}
	c.name = name
	return nil
}
