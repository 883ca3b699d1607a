package http

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/go-playground/validator/v10"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx response. Reason is set only for
// coupon rejections.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type NewCoupon struct {
	Code           string               `json:"code" validate:"required,max=64"`
	DiscountType   string               `json:"discountType" validate:"required,oneof=fixed percentage"`
	DiscountValue  string               `json:"discountValue" validate:"required,numeric"`
	MaxDiscount    *string              `json:"maxDiscount" validate:"omitempty,numeric"`
	MinOrder       *string              `json:"minOrder" validate:"omitempty,numeric"`
	UsageLimit     *int                 `json:"usageLimit" validate:"omitempty,min=1"`
	UserUsageLimit int                  `json:"userUsageLimit" validate:"omitempty,min=1"`
	StartsAt       *time.Time           `json:"startsAt"`
	ExpiresAt      *time.Time           `json:"expiresAt"`
	RestaurantIDs  []openapi_types.UUID `json:"restaurantIds" validate:"omitempty,dive,required"`
	CategoryIDs    []openapi_types.UUID `json:"categoryIds" validate:"omitempty,dive,required"`
}

type CouponCreated struct {
	ID   openapi_types.UUID `json:"id"`
	Code string             `json:"code"`
}

type EvaluateCoupon struct {
	UserID       openapi_types.UUID   `json:"userId" validate:"required"`
	OrderAmount  string               `json:"orderAmount" validate:"required,numeric"`
	RestaurantID openapi_types.UUID   `json:"restaurantId" validate:"required"`
	CategoryIDs  []openapi_types.UUID `json:"categoryIds" validate:"omitempty,dive,required"`
}

type Evaluation struct {
	Code     string `json:"code"`
	Discount string `json:"discount"`
}

type NewRedemption struct {
	UserID         openapi_types.UUID  `json:"userId" validate:"required"`
	OrderID        *openapi_types.UUID `json:"orderId"`
	DiscountAmount string              `json:"discountAmount" validate:"required,numeric"`
	UsedAt         *time.Time          `json:"usedAt"`
}

type Redemption struct {
	UsageID openapi_types.UUID `json:"usageId"`
}

type NewOrder struct {
	UserID       openapi_types.UUID   `json:"userId" validate:"required"`
	RestaurantID openapi_types.UUID   `json:"restaurantId" validate:"required"`
	Subtotal     string               `json:"subtotal" validate:"required,numeric"`
	CategoryIDs  []openapi_types.UUID `json:"categoryIds" validate:"omitempty,dive,required"`
	CouponCode   string               `json:"couponCode" validate:"max=64"`
}

type PlacedOrder struct {
	OrderID  openapi_types.UUID `json:"orderId"`
	Subtotal string             `json:"subtotal"`
	Discount string             `json:"discount"`
	Total    string             `json:"total"`
}

type NewPartner struct {
	Name   string `json:"name" validate:"required,max=128"`
	Online bool   `json:"online"`
}

type Created struct {
	ID openapi_types.UUID `json:"id"`
}

type Availability struct {
	Online *bool `json:"online" validate:"required"`
	Active *bool `json:"active" validate:"required"`
}

type Partner struct {
	ID              openapi_types.UUID `json:"id"`
	Name            string             `json:"name"`
	Online          bool               `json:"online"`
	Active          bool               `json:"active"`
	Rating          string             `json:"rating"`
	TotalDeliveries int                `json:"totalDeliveries"`
}

type NewAssignment struct {
	OrderID     openapi_types.UUID `json:"orderId" validate:"required"`
	PartnerID   openapi_types.UUID `json:"partnerId" validate:"required"`
	DeliveryFee string             `json:"deliveryFee" validate:"required,numeric"`
	Notes       string             `json:"notes" validate:"max=500"`
}

type Assignment struct {
	ID          openapi_types.UUID `json:"id"`
	OrderID     openapi_types.UUID `json:"orderId"`
	PartnerID   openapi_types.UUID `json:"partnerId"`
	Status      string             `json:"status"`
	AssignedAt  time.Time          `json:"assignedAt"`
	StatusSince time.Time          `json:"statusSince"`
	DeliveryFee string             `json:"deliveryFee"`
	Tips        string             `json:"tips"`
}

type Transition struct {
	Status string     `json:"status" validate:"required,oneof=accepted picked_up delivered cancelled"`
	At     *time.Time `json:"at"`
	Reason string     `json:"reason" validate:"max=500"`
}

type NewTip struct {
	Amount string `json:"amount" validate:"required,numeric"`
}

type Tips struct {
	Tips string `json:"tips"`
}

type NewRating struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

// RequestValidator adapts go-playground/validator to echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelUUIDs(ids []openapi_types.UUID) ([]kernel.UUID, error) {
	result := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		kid, err := toKernelUUID(id)
		if err != nil {
			return nil, err
		}
		result = append(result, kid)
	}
	return result, nil
}

func toMoneyPtr(s *string) (*kernel.Money, error) {
	if s == nil {
		return nil, nil
	}
	m, err := kernel.MoneyFromString(*s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
