// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status and partner for the dispatch queries.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Discount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CouponCode   *string         `gorm:"size:64"`
	Status       int             `gorm:"not null;index"`
	PartnerID    *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt    time.Time       `gorm:"type:timestamptz;not null;autoCreateTime:false"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional partner assignment.
func fromDomain(o *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := o.Partner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	var couponCode *string
	if code := o.CouponCode(); code != "" {
		couponCode = &code
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		UserID:       o.UserID().Bytes(),
		RestaurantID: o.RestaurantID().Bytes(),
		Subtotal:     o.Subtotal().Decimal(),
		Discount:     o.Discount().Decimal(),
		CouponCode:   couponCode,
		Status:       int(o.Status()),
		PartnerID:    partnerID,
		CreatedAt:    o.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}

		partnerID = &pID
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}

	var couponCode string
	if dto.CouponCode != nil {
		couponCode = *dto.CouponCode
	}

	return order.RestoreOrder(
		id, userID, restaurantID,
		subtotal, discount, couponCode,
		order.Status(dto.Status), partnerID,
		dto.CreatedAt,
	)
}
