// Package couponrepo persists coupons and their usage rows.
//
// Restriction sets are stored as JSONB arrays of UUIDs. The usage counter is
// only ever changed by a conditional UPDATE, which is what keeps concurrent
// redemptions from overshooting the global limit.
package couponrepo

import (
	"time"

	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CouponDTO is the row of the coupons table.
type CouponDTO struct {
	ID             uuid.UUID                      `gorm:"type:uuid;primaryKey"`
	Code           string                         `gorm:"size:64;not null;uniqueIndex:idx_coupons_code"`
	DiscountType   string                         `gorm:"size:16;not null"`
	DiscountValue  decimal.Decimal                `gorm:"type:numeric(14,4);not null"`
	MaxDiscount    decimal.NullDecimal            `gorm:"type:numeric(14,2)"`
	MinOrder       decimal.NullDecimal            `gorm:"type:numeric(14,2)"`
	UsageLimit     *int                           `gorm:"check:chk_coupons_usage_limit,usage_limit IS NULL OR usage_limit > 0"`
	UsageCount     int                            `gorm:"not null;default:0;check:chk_coupons_usage_count,usage_limit IS NULL OR usage_count <= usage_limit"`
	UserUsageLimit int                            `gorm:"not null"`
	Active         bool                           `gorm:"not null"`
	StartsAt       *time.Time                     `gorm:"type:timestamptz"`
	ExpiresAt      *time.Time                     `gorm:"type:timestamptz"`
	Restaurants    datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb"`
	Categories     datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming.
func (CouponDTO) TableName() string {
	return "coupons"
}

// CouponUsageDTO is one row of the append-only coupon_usages table.
type CouponUsageDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CouponID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_coupon_usages_coupon_user,priority:1"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_coupon_usages_coupon_user,priority:2"`
	OrderID        *uuid.UUID      `gorm:"type:uuid;index"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	UsedAt         time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName overrides GORM's default naming.
func (CouponUsageDTO) TableName() string {
	return "coupon_usages"
}

func fromDomain(c *coupon.Coupon) CouponDTO {
	return CouponDTO{
		ID:             c.ID().Bytes(),
		Code:           c.Code(),
		DiscountType:   c.Discount().Type().String(),
		DiscountValue:  c.Discount().Value(),
		MaxDiscount:    nullMoney(c.Discount().MaxDiscount()),
		MinOrder:       nullMoney(c.MinOrder()),
		UsageLimit:     c.UsageLimit(),
		UsageCount:     c.UsageCount(),
		UserUsageLimit: c.UserUsageLimit(),
		Active:         c.IsActive(),
		StartsAt:       c.StartsAt(),
		ExpiresAt:      c.ExpiresAt(),
		Restaurants:    rawIDs(c.ApplicableRestaurants().Slice()),
		Categories:     rawIDs(c.ApplicableCategories().Slice()),
	}
}

func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	discountType, err := coupon.ParseDiscountType(dto.DiscountType)
	if err != nil {
		return nil, err
	}

	maxDiscount, err := moneyOrNil(dto.MaxDiscount)
	if err != nil {
		return nil, err
	}

	discount, err := coupon.NewDiscount(discountType, dto.DiscountValue, maxDiscount)
	if err != nil {
		return nil, err
	}

	minOrder, err := moneyOrNil(dto.MinOrder)
	if err != nil {
		return nil, err
	}

	restaurants, err := idSet(dto.Restaurants)
	if err != nil {
		return nil, err
	}

	categories, err := idSet(dto.Categories)
	if err != nil {
		return nil, err
	}

	return coupon.RestoreCoupon(
		id,
		dto.Code,
		discount,
		coupon.Limits{MinOrder: minOrder, UsageLimit: dto.UsageLimit, UserUsageLimit: dto.UserUsageLimit},
		coupon.Window{StartsAt: dto.StartsAt, ExpiresAt: dto.ExpiresAt},
		coupon.Restrictions{Restaurants: restaurants, Categories: categories},
		dto.UsageCount,
		dto.Active,
	)
}

func usageFromDomain(u *coupon.Usage) CouponUsageDTO {
	var orderID *uuid.UUID
	if id := u.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return CouponUsageDTO{
		ID:             u.ID().Bytes(),
		CouponID:       u.CouponID().Bytes(),
		UserID:         u.UserID().Bytes(),
		OrderID:        orderID,
		DiscountAmount: u.DiscountAmount().Decimal(),
		UsedAt:         u.UsedAt(),
	}
}

func nullMoney(m *kernel.Money) decimal.NullDecimal {
	if m == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(m.Decimal())
}

func moneyOrNil(d decimal.NullDecimal) (*kernel.Money, error) {
	if !d.Valid {
		return nil, nil
	}
	m, err := kernel.NewMoney(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func rawIDs(ids []kernel.UUID) datatypes.JSONSlice[uuid.UUID] {
	out := make(datatypes.JSONSlice[uuid.UUID], 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}

func idSet(raw datatypes.JSONSlice[uuid.UUID]) (coupon.IDSet, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return coupon.IDSet{}, err
		}
		ids = append(ids, id)
	}
	return coupon.NewIDSet(ids...)
}
