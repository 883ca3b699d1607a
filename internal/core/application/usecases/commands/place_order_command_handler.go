package commands

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// PlaceOrderResult is the priced order.
type PlaceOrderResult struct {
	OrderID  kernel.UUID
	Subtotal kernel.Money
	Discount kernel.Money
	Total    kernel.Money
}

// PlaceOrderCommandHandler prices the order with the coupon, inserts it and
// commits the coupon redemption in one transaction. If any step fails, neither
// the order nor the usage persists.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	evaluator  services.CouponEvaluator
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, evaluator services.CouponEvaluator) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		evaluator:  evaluator,
	}
}

// Handle places the order. Coupon refusals are returned as *coupon.RejectedError
// carrying the specific reason.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couponRepo := uow.CouponRepository()

	var (
		applied  *coupon.Coupon
		discount = kernel.ZeroMoney()
	)
	if cmd.CouponCode() != "" {
		c, decision, err := h.evaluate(ctx, couponRepo, cmd)
		if err != nil {
			return PlaceOrderResult{}, err
		}
		if err = decision.Err(cmd.CouponCode()); err != nil {
			return PlaceOrderResult{}, err
		}
		applied = c
		discount = decision.Discount()
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.UserID(), cmd.RestaurantID(),
		cmd.Subtotal(), discount, cmd.CouponCode(), cmd.PlacedAt())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return PlaceOrderResult{}, err
	}

	if applied != nil {
		orderID := o.ID()
		if _, err = redeemCoupon(ctx, couponRepo, applied, cmd.UserID(), &orderID, discount, cmd.PlacedAt()); err != nil {
			return PlaceOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	return PlaceOrderResult{
		OrderID:  o.ID(),
		Subtotal: o.Subtotal(),
		Discount: o.Discount(),
		Total:    o.Total(),
	}, nil
}

func (h PlaceOrderCommandHandler) evaluate(
	ctx context.Context,
	repo ports.CouponRepository,
	cmd PlaceOrderCommand,
) (*coupon.Coupon, coupon.Decision, error) {
	redemption := services.Redemption{
		UserID:       cmd.UserID(),
		OrderAmount:  cmd.Subtotal(),
		RestaurantID: cmd.RestaurantID(),
		CategoryIDs:  cmd.CategoryIDs(),
		Now:          cmd.PlacedAt(),
	}

	c, err := repo.GetByCode(ctx, cmd.CouponCode())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, h.evaluator.Evaluate(nil, 0, redemption), nil
	}
	if err != nil {
		return nil, coupon.Decision{}, err
	}

	userUsages, err := repo.CountUsages(ctx, c.ID(), cmd.UserID())
	if err != nil {
		return nil, coupon.Decision{}, err
	}

	return c, h.evaluator.Evaluate(c, userUsages, redemption), nil
}
