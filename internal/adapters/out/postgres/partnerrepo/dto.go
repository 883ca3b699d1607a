// Package partnerrepo provides data transfer objects and mapping functions for delivery partner persistence.
package partnerrepo

import (
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerDTO represents the database structure for persisting partner aggregates.
type PartnerDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Online          bool            `gorm:"not null"`
	Active          bool            `gorm:"not null"`
	Rating          decimal.Decimal `gorm:"type:numeric(3,2);not null"`
	RatingsSum      int             `gorm:"not null;default:0"`
	RatingsCount    int             `gorm:"not null"`
	TotalDeliveries int             `gorm:"not null"`
}

// TableName specifies the database table name for partner entities.
func (PartnerDTO) TableName() string {
	return "partners"
}

func fromDomain(p *partner.Partner) PartnerDTO {
	return PartnerDTO{
		ID:              p.ID().Bytes(),
		Name:            p.Name(),
		Online:          p.IsOnline(),
		Active:          p.IsActive(),
		Rating:          p.Rating(),
		RatingsSum:      p.RatingsSum(),
		RatingsCount:    p.RatingsCount(),
		TotalDeliveries: p.TotalDeliveries(),
	}
}

func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return partner.RestorePartner(
		id,
		dto.Name,
		dto.Online,
		dto.Active,
		dto.RatingsSum,
		dto.RatingsCount,
		dto.TotalDeliveries,
	)
}
