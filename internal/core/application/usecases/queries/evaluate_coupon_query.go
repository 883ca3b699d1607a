// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries never write and never open a transaction.
package queries

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrEvaluateCouponQueryIsNotConstructed = errors.New(
	"EvaluateCouponQuery must be created via NewEvaluateCouponQuery constructor",
)

// EvaluateCouponQuery asks whether a coupon applies to a prospective order
// and how much it would take off. Nothing is reserved: a later commit may
// still lose to a concurrent redemption.
//
// Example:
//
//	query, err := NewEvaluateCouponQuery("SAVE20", userID, amount, restaurantID, categoryIDs, time.Now())
//	decision, err := handler.Handle(ctx, query)
//	if decision.IsApproved() {
//	    fmt.Println("discount", decision.Discount())
//	}
type EvaluateCouponQuery struct {
	code         string
	userID       kernel.UUID
	orderAmount  kernel.Money
	restaurantID kernel.UUID
	categoryIDs  []kernel.UUID
	now          time.Time

	guard guard.ConstructorGuard
}

// NewEvaluateCouponQuery validates identifiers and the evaluation time. An empty code is allowed and
// evaluates to NotFound.
func NewEvaluateCouponQuery(
	code string,
	userID kernel.UUID,
	orderAmount kernel.Money,
	restaurantID kernel.UUID,
	categoryIDs []kernel.UUID,
	now time.Time,
) (EvaluateCouponQuery, error) {
	validations := []error{userID.Validate(), restaurantID.Validate()}
	if now.IsZero() {
		validations = append(validations, errs.NewValueIsRequiredError("now"))
	}
	for _, id := range categoryIDs {
		validations = append(validations, id.Validate())
	}
	if err := errors.Join(validations...); err != nil {
		return EvaluateCouponQuery{}, err
	}

	return EvaluateCouponQuery{
		code:         code,
		userID:       userID,
		orderAmount:  orderAmount,
		restaurantID: restaurantID,
		categoryIDs:  append([]kernel.UUID(nil), categoryIDs...),
		now:          now,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q EvaluateCouponQuery) Validate() error {
	return q.guard.Validate(ErrEvaluateCouponQueryIsNotConstructed)
}

func (q EvaluateCouponQuery) Code() string              { return q.code }
func (q EvaluateCouponQuery) UserID() kernel.UUID       { return q.userID }
func (q EvaluateCouponQuery) OrderAmount() kernel.Money { return q.orderAmount }
func (q EvaluateCouponQuery) RestaurantID() kernel.UUID { return q.restaurantID }
func (q EvaluateCouponQuery) Now() time.Time            { return q.now }

// CategoryIDs returns a copy of the order's category identifiers.
func (q EvaluateCouponQuery) CategoryIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), q.categoryIDs...)
}
