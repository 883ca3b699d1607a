package http

import (
	"errors"
	"net/http"

	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var conflicts = []error{
	assignment.ErrIllegalTransition,
	assignment.ErrNonMonotonicTimestamp,
	assignment.ErrTipNotAllowed,
	assignment.ErrAlreadyRated,
	assignment.ErrRatingNotAllowed,
	partner.ErrPartnerUnavailable,
	order.ErrOrderNotAssignable,
	coupon.ErrCodeAlreadyExists,
}

var invalid = []error{
	errs.ErrValueIsInvalid,
	errs.ErrValueIsOutOfRange,
	errs.ErrValueIsRequired,
}

// statusOf maps an application error to its HTTP status.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, coupon.ErrCouponRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable
	}

	for _, target := range conflicts {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	for _, target := range invalid {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// fail writes err as an Error body. Server errors are logged and their
// details are kept out of the response.
func (s *Server) fail(c echo.Context, err error) error {
	status := statusOf(err)

	body := Error{Code: status, Message: err.Error()}
	switch {
	case status == http.StatusUnprocessableEntity:
		body.Reason = coupon.RejectionOf(err).String()
	case status >= http.StatusInternalServerError:
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", status,
			"error", err,
		)
		body.Message = http.StatusText(status)
	}

	return c.JSON(status, body)
}
