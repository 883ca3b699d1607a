package commands

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrCommitCouponCommandIsNotConstructed = errors.New(
	"CommitCouponCommand must be created via NewCommitCouponCommand constructor",
)

// CommitCouponCommand records a redemption of a previously evaluated coupon.
// Order placement does the same inside its own transaction; this command is
// for callers that persist the order elsewhere.
//
// Example:
//
//	cmd, err := NewCommitCouponCommand("SAVE20", userID, &orderID, discount, time.Now())
//	if err != nil {
//	    return err
//	}
//	usageID, err := handler.Handle(ctx, cmd)
type CommitCouponCommand struct {
	code           string
	userID         kernel.UUID
	orderID        *kernel.UUID
	discountAmount kernel.Money
	usedAt         time.Time

	guard guard.ConstructorGuard
}

// NewCommitCouponCommand validates the redemption input. orderID may be nil.
func NewCommitCouponCommand(
	code string,
	userID kernel.UUID,
	orderID *kernel.UUID,
	discountAmount kernel.Money,
	usedAt time.Time,
) (CommitCouponCommand, error) {
	cmd := CommitCouponCommand{
		code:           code,
		orderID:        orderID,
		discountAmount: discountAmount,
		usedAt:         usedAt.Truncate(TimePrecision),
		guard:          guard.NewConstructorGuard(),
	}

	var orderErr error
	if orderID != nil {
		orderErr = orderID.Validate()
	}

	if err := errors.Join(
		requireCode(code),
		userID.Validate(),
		orderErr,
		requireTime("used at", usedAt),
	); err != nil {
		return CommitCouponCommand{}, err
	}
	cmd.userID = userID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CommitCouponCommand) Validate() error {
	return c.guard.Validate(ErrCommitCouponCommandIsNotConstructed)
}

func (c CommitCouponCommand) Code() string                 { return c.code }
func (c CommitCouponCommand) UserID() kernel.UUID          { return c.userID }
func (c CommitCouponCommand) OrderID() *kernel.UUID        { return c.orderID }
func (c CommitCouponCommand) DiscountAmount() kernel.Money { return c.discountAmount }
func (c CommitCouponCommand) UsedAt() time.Time            { return c.usedAt }

func requireCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	return nil
}

// TimePrecision is the resolution timestamps are stored with. Commands
// truncate to it so the aggregate validates the instant that gets persisted.
const TimePrecision = time.Microsecond

func requireTime(name string, at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
