package coupon

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
)

// ErrCouponRejected is the sentinel every *RejectedError unwraps to.
var ErrCouponRejected = errors.New("coupon rejected")

// Rejection is the closed set of reasons a redemption can be refused for.
// The order matches the evaluation sequence; the first failing check wins.
type Rejection int

const (
	// NoRejection is the zero value and never describes a refusal.
	NoRejection Rejection = iota
	NotFound
	Inactive
	NotStarted
	Expired
	GlobalLimitReached
	UserLimitReached
	BelowMinimumOrder
	RestaurantNotEligible
	CategoryNotEligible
	// ConcurrentLimitExceeded is raised by commit when the conditional usage
	// increment affected no row. Callers handle it like GlobalLimitReached.
	ConcurrentLimitExceeded
)

var rejectionNames = map[Rejection]string{
	NoRejection:             "None",
	NotFound:                "NotFound",
	Inactive:                "Inactive",
	NotStarted:              "NotStarted",
	Expired:                 "Expired",
	GlobalLimitReached:      "GlobalLimitReached",
	UserLimitReached:        "UserLimitReached",
	BelowMinimumOrder:       "BelowMinimumOrder",
	RestaurantNotEligible:   "RestaurantNotEligible",
	CategoryNotEligible:     "CategoryNotEligible",
	ConcurrentLimitExceeded: "ConcurrentLimitExceeded",
}

// String returns the wire name of the reason, e.g. "UserLimitReached".
func (r Rejection) String() string {
	if name, ok := rejectionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rejection(%d)", int(r))
}

// IsLimitExhausted reports whether the global usage limit caused the rejection,
// whether detected before commit or by the conditional update itself.
func (r Rejection) IsLimitExhausted() bool {
	return r == GlobalLimitReached || r == ConcurrentLimitExceeded
}

// RejectedError carries a Rejection through error returns.
type RejectedError struct {
	Code   string
	Reason Rejection
}

// NewRejectedError creates the error form of a rejection for coupon code.
func NewRejectedError(code string, reason Rejection) *RejectedError {
	return &RejectedError{Code: code, Reason: reason}
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %q: %s", ErrCouponRejected, e.Code, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return ErrCouponRejected
}

// RejectionOf extracts the reason from err, or NoRejection.
func RejectionOf(err error) Rejection {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason
	}
	return NoRejection
}

// Decision is the outcome of evaluating a coupon: Approved with a discount, or
// Rejected with a reason.
type Decision struct {
	reason   Rejection
	discount kernel.Money
}

// Approved builds a positive decision.
func Approved(discount kernel.Money) Decision {
	return Decision{discount: discount}
}

// Rejected builds a negative decision.
func Rejected(reason Rejection) Decision {
	return Decision{reason: reason}
}

// IsApproved reports whether the coupon applies.
func (d Decision) IsApproved() bool {
	return d.reason == NoRejection
}

// Discount is the approved amount; zero for rejections.
func (d Decision) Discount() kernel.Money {
	return d.discount
}

// Reason is the rejection reason; NoRejection for approvals.
func (d Decision) Reason() Rejection {
	return d.reason
}

// Err returns nil for approvals and a *RejectedError otherwise.
func (d Decision) Err(code string) error {
	if d.IsApproved() {
		return nil
	}
	return NewRejectedError(code, d.reason)
}
