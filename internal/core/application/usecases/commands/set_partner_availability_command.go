package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrSetPartnerAvailabilityCommandIsNotConstructed = errors.New(
	"SetPartnerAvailabilityCommand must be created via NewSetPartnerAvailabilityCommand constructor",
)

// SetPartnerAvailabilityCommand sets the online and active flags of a partner.
type SetPartnerAvailabilityCommand struct {
	partnerID kernel.UUID
	online    bool
	active    bool

	guard guard.ConstructorGuard
}

// NewSetPartnerAvailabilityCommand validates the partner ID.
func NewSetPartnerAvailabilityCommand(partnerID kernel.UUID, online, active bool) (SetPartnerAvailabilityCommand, error) {
	if err := partnerID.Validate(); err != nil {
		return SetPartnerAvailabilityCommand{}, err
	}
	return SetPartnerAvailabilityCommand{
		partnerID: partnerID,
		online:    online,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetPartnerAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetPartnerAvailabilityCommandIsNotConstructed)
}

func (c SetPartnerAvailabilityCommand) PartnerID() kernel.UUID { return c.partnerID }
func (c SetPartnerAvailabilityCommand) Online() bool           { return c.online }
func (c SetPartnerAvailabilityCommand) Active() bool           { return c.active }
