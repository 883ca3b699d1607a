package queries

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"
)

// CouponReader is the read side of the coupon store.
type CouponReader interface {
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)
	CountUsages(ctx context.Context, couponID, userID kernel.UUID) (int, error)
}

// EvaluateCouponQueryHandler runs the coupon validation sequence against the
// current store state.
type EvaluateCouponQueryHandler struct {
	reader    CouponReader
	evaluator services.CouponEvaluator
}

// NewEvaluateCouponQueryHandler creates a handler reading through reader.
func NewEvaluateCouponQueryHandler(reader CouponReader, evaluator services.CouponEvaluator) EvaluateCouponQueryHandler {
	return EvaluateCouponQueryHandler{
		reader:    reader,
		evaluator: evaluator,
	}
}

// Handle returns the decision. The error is non-nil only for an invalid query
// or a store failure; business rejections are carried by the decision.
func (h EvaluateCouponQueryHandler) Handle(ctx context.Context, query EvaluateCouponQuery) (coupon.Decision, error) {
	if err := query.Validate(); err != nil {
		return coupon.Decision{}, err
	}

	redemption := services.Redemption{
		UserID:       query.UserID(),
		OrderAmount:  query.OrderAmount(),
		RestaurantID: query.RestaurantID(),
		CategoryIDs:  query.CategoryIDs(),
		Now:          query.Now(),
	}

	c, err := h.reader.GetByCode(ctx, query.Code())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.evaluator.Evaluate(nil, 0, redemption), nil
	}
	if err != nil {
		return coupon.Decision{}, err
	}

	userUsages, err := h.reader.CountUsages(ctx, c.ID(), query.UserID())
	if err != nil {
		return coupon.Decision{}, err
	}

	return h.evaluator.Evaluate(c, userUsages, redemption), nil
}
