package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

const (
	// DefaultUserUsageLimit is applied when a coupon does not specify how often one user may redeem it.
	DefaultUserUsageLimit = 1
	maxCodeLength         = 64
)

var (
	// ErrCouponIsNotConstructed is returned when a Coupon was not created via NewCoupon or RestoreCoupon.
	ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon constructor")
	// ErrCodeIsRequired is returned for a blank coupon code.
	ErrCodeIsRequired = errs.NewValueIsRequiredError("code")
	// ErrCodeAlreadyExists is returned when creating a coupon with a code in use.
	ErrCodeAlreadyExists = errors.New("coupon code already exists")
)

// Limits groups the usage constraints of a coupon. A nil pointer means "no limit".
type Limits struct {
	MinOrder       *kernel.Money
	UsageLimit     *int
	UserUsageLimit int
}

// Window is the optional validity period of a coupon, inclusive on both ends.
type Window struct {
	StartsAt  *time.Time
	ExpiresAt *time.Time
}

// Restrictions narrows a coupon to restaurants and/or menu categories.
type Restrictions struct {
	Restaurants IDSet
	Categories  IDSet
}

// Coupon is a discount rule identified by a unique, case-sensitive code.
//
// Invariants:
//   - discount > 0; percentage discounts in (0, 100]; caps only on percentages
//   - usageLimit > 0 when set, and 0 <= usageCount <= usageLimit
//   - userUsageLimit >= 1
//   - startsAt <= expiresAt when both are set
//
// The usage counter is owned by the store: the coupon only reads it, the
// repository increments it with a conditional update.
type Coupon struct {
	id           kernel.UUID
	code         string
	discount     Discount
	limits       Limits
	window       Window
	restrictions Restrictions
	usageCount   int
	active       bool
	guard        guard.ConstructorGuard
}

// NewCoupon creates an active coupon with no recorded usage.
// A zero UserUsageLimit is replaced with DefaultUserUsageLimit.
//
// Example:
//
//	maxCap, _ := kernel.MoneyFromString("50")
//	discount, _ := coupon.NewPercentageDiscount(decimal.NewFromInt(20), &maxCap)
//	minOrder, _ := kernel.MoneyFromString("100")
//	limit := 2
//	c, err := coupon.NewCoupon(kernel.NewUUID(), "SAVE20", discount,
//	    coupon.Limits{MinOrder: &minOrder, UsageLimit: &limit},
//	    coupon.Window{}, coupon.Restrictions{})
func NewCoupon(
	id kernel.UUID,
	code string,
	discount Discount,
	limits Limits,
	window Window,
	restrictions Restrictions,
) (*Coupon, error) {
	if limits.UserUsageLimit == 0 {
		limits.UserUsageLimit = DefaultUserUsageLimit
	}
	return RestoreCoupon(id, code, discount, limits, window, restrictions, 0, true)
}

// RestoreCoupon rebuilds a coupon from persistence, including its usage count and active flag.
func RestoreCoupon(
	id kernel.UUID,
	code string,
	discount Discount,
	limits Limits,
	window Window,
	restrictions Restrictions,
	usageCount int,
	active bool,
) (*Coupon, error) {
	c := &Coupon{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setCode(code),
		c.setDiscount(discount),
		c.setLimits(limits, usageCount),
		c.setWindow(window),
	); err != nil {
		return nil, err
	}
	c.restrictions = restrictions

	return c, nil
}

// Validate ensures the coupon was built through a constructor.
func (c *Coupon) Validate() error {
	if c == nil {
		return ErrCouponIsNotConstructed
	}
	return c.guard.Validate(ErrCouponIsNotConstructed)
}

func (c *Coupon) ID() kernel.UUID              { return c.id }
func (c *Coupon) Code() string                 { return c.code }
func (c *Coupon) Discount() Discount           { return c.discount }
func (c *Coupon) Limits() Limits               { return c.limits }
func (c *Coupon) Window() Window               { return c.window }
func (c *Coupon) Restrictions() Restrictions   { return c.restrictions }
func (c *Coupon) UsageCount() int              { return c.usageCount }
func (c *Coupon) IsActive() bool               { return c.active }
func (c *Coupon) UserUsageLimit() int          { return c.limits.UserUsageLimit }
func (c *Coupon) MinOrder() *kernel.Money      { return c.limits.MinOrder }
func (c *Coupon) UsageLimit() *int             { return c.limits.UsageLimit }
func (c *Coupon) StartsAt() *time.Time         { return c.window.StartsAt }
func (c *Coupon) ExpiresAt() *time.Time        { return c.window.ExpiresAt }
func (c *Coupon) ApplicableRestaurants() IDSet { return c.restrictions.Restaurants }
func (c *Coupon) ApplicableCategories() IDSet  { return c.restrictions.Categories }

// Deactivate soft-deletes the coupon. Coupons with usage rows are never removed.
func (c *Coupon) Deactivate() {
	c.active = false
}

// HasStarted reports whether now is at or after startsAt (always true without a start).
func (c *Coupon) HasStarted(now time.Time) bool {
	return c.window.StartsAt == nil || !now.Before(*c.window.StartsAt)
}

// HasExpired reports whether now is strictly after expiresAt.
func (c *Coupon) HasExpired(now time.Time) bool {
	return c.window.ExpiresAt != nil && now.After(*c.window.ExpiresAt)
}

// IsGloballyExhausted reports usageCount >= usageLimit for limited coupons.
func (c *Coupon) IsGloballyExhausted() bool {
	return c.limits.UsageLimit != nil && c.usageCount >= *c.limits.UsageLimit
}

// IsExhaustedFor reports whether a user with userUsages redemptions may not redeem again.
func (c *Coupon) IsExhaustedFor(userUsages int) bool {
	return userUsages >= c.limits.UserUsageLimit
}

// MeetsMinimumOrder reports orderAmount >= minOrder (always true without a minimum).
func (c *Coupon) MeetsMinimumOrder(orderAmount kernel.Money) bool {
	return c.limits.MinOrder == nil || !orderAmount.LessThan(*c.limits.MinOrder)
}

// AcceptsRestaurant reports whether restaurantID passes the restaurant restriction.
func (c *Coupon) AcceptsRestaurant(restaurantID kernel.UUID) bool {
	return c.restrictions.Restaurants.IsEmpty() || c.restrictions.Restaurants.Contains(restaurantID)
}

// AcceptsCategories reports whether any of categoryIDs passes the category restriction.
func (c *Coupon) AcceptsCategories(categoryIDs []kernel.UUID) bool {
	return c.restrictions.Categories.IsEmpty() || c.restrictions.Categories.ContainsAny(categoryIDs)
}

// CalculateDiscount applies the discount rule to orderAmount.
func (c *Coupon) CalculateDiscount(orderAmount kernel.Money) kernel.Money {
	return c.discount.Apply(orderAmount)
}

func (c *Coupon) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Coupon) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}
	if len(code) > maxCodeLength {
		return errs.NewValueIsOutOfRangeError("code length", len(code), 1, maxCodeLength)
	}
	if strings.IndexFunc(code, unicode.IsSpace) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q contains whitespace", code))
	}
	c.code = code
	return nil
}

func (c *Coupon) setDiscount(discount Discount) error {
	if discount.Type() == UnknownDiscountType {
		return errs.NewValueIsRequiredError("discount")
	}
	c.discount = discount
	return nil
}

func (c *Coupon) setLimits(limits Limits, usageCount int) error {
	if limits.UserUsageLimit < 1 {
		return errs.NewValueIsOutOfRangeError("user usage limit", limits.UserUsageLimit, 1, "unbounded")
	}
	if usageCount < 0 {
		return errs.NewValueIsOutOfRangeError("usage count", usageCount, 0, "usage limit")
	}
	if limits.UsageLimit != nil {
		if *limits.UsageLimit < 1 {
			return errs.NewValueIsOutOfRangeError("usage limit", *limits.UsageLimit, 1, "unbounded")
		}
		if usageCount > *limits.UsageLimit {
			return errs.NewValueIsOutOfRangeError("usage count", usageCount, 0, *limits.UsageLimit)
		}
	}
	c.limits = limits
	c.usageCount = usageCount
	return nil
}

func (c *Coupon) setWindow(window Window) error {
	if window.StartsAt != nil && window.ExpiresAt != nil && window.ExpiresAt.Before(*window.StartsAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"validity window",
			fmt.Errorf("expiry %s precedes start %s",
				window.ExpiresAt.Format(time.RFC3339), window.StartsAt.Format(time.RFC3339)),
		)
	}
	c.window = window
	return nil
}
