package queries

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAllPartnersQueryHandler retrieves partners with a direct SQL query.
type GetAllPartnersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllPartnersQueryHandler creates a handler for partner listing.
func NewGetAllPartnersQueryHandler(db *gorm.DB) GetAllPartnersQueryHandler {
	return GetAllPartnersQueryHandler{db: db}
}

// Handle returns all partners sorted by name.
func (h GetAllPartnersQueryHandler) Handle(
	ctx context.Context,
	query GetAllPartnersQuery,
) ([]GetAllPartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partners := make([]GetAllPartnersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			online,
			active,
			rating,
			total_deliveries
		FROM partners
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, errs.NewUnavailableError("list partners", err)
	}
	defer rows.Close()

	for rows.Next() {
		var partner GetAllPartnersQueryResponse
		var id uuid.UUID
		var rating decimal.Decimal

		err = rows.Scan(
			&id,
			&partner.Name,
			&partner.Online,
			&partner.Active,
			&rating,
			&partner.TotalDeliveries,
		)
		if err != nil {
			return nil, errs.NewUnavailableError("list partners", err)
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		partner.ID = partnerID
		partner.Rating = rating
		partners = append(partners, partner)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewUnavailableError("list partners", err)
	}

	return partners, nil
}
