package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetAllPartnersQueryIsNotConstructed = errors.New(
		"GetAllPartnersQuery must be created via NewGetAllPartnersQuery constructor",
	)
)

// GetAllPartnersQuery lists every delivery partner with availability and
// performance figures, for dispatch screens.
//
// Example:
//
//	query := NewGetAllPartnersQuery()
//	handler := NewGetAllPartnersQueryHandler(db)
//
//	partners, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve partners: %w", err)
//	}
type GetAllPartnersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllPartnersQuery creates a query to retrieve all partners.
func NewGetAllPartnersQuery() GetAllPartnersQuery {
	return GetAllPartnersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllPartnersQueryIsNotConstructed if validation fails.
func (q GetAllPartnersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllPartnersQueryIsNotConstructed)
}

// GetAllPartnersQueryResponse is the read model of one partner.
type GetAllPartnersQueryResponse struct {
	ID              kernel.UUID
	Name            string
	Online          bool
	Active          bool
	Rating          decimal.Decimal
	TotalDeliveries int
}
