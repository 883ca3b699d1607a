package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// CommandHandler runs a use case that produces no value.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// Handler runs a use case that produces a value.
type Handler[C, R any] interface {
	Handle(ctx context.Context, in C) (R, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Coupons
	CreateCoupon     CommandHandler[commands.CreateCouponCommand]
	DeactivateCoupon CommandHandler[commands.DeactivateCouponCommand]
	EvaluateCoupon   Handler[queries.EvaluateCouponQuery, coupon.Decision]
	CommitCoupon     Handler[commands.CommitCouponCommand, kernel.UUID]

	// Orders
	PlaceOrder Handler[commands.PlaceOrderCommand, commands.PlaceOrderResult]

	// Partners
	CreatePartner          CommandHandler[commands.CreatePartnerCommand]
	SetPartnerAvailability CommandHandler[commands.SetPartnerAvailabilityCommand]
	GetAllPartners         Handler[queries.GetAllPartnersQuery, []queries.GetAllPartnersQueryResponse]

	// Assignments
	CreateAssignment     CommandHandler[commands.CreateAssignmentCommand]
	GetActiveAssignments Handler[queries.GetActiveAssignmentsQuery, []queries.GetActiveAssignmentsQueryResponse]
	TransitionAssignment CommandHandler[commands.TransitionAssignmentCommand]
	RecordTip            Handler[commands.RecordTipCommand, kernel.Money]
	RateDelivery         CommandHandler[commands.RateDeliveryCommand]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates a server over the given use cases.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// bind decodes and validates the request body into dst.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

// CreateCoupon handles POST /api/v1/coupons.
func (s *Server) CreateCoupon(c echo.Context) error {
	var req NewCoupon
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	discountType, err := coupon.ParseDiscountType(req.DiscountType)
	if err != nil {
		return s.fail(c, err)
	}
	value, err := decimal.NewFromString(req.DiscountValue)
	if err != nil {
		return s.fail(c, err)
	}
	maxDiscount, err := toMoneyPtr(req.MaxDiscount)
	if err != nil {
		return s.fail(c, err)
	}
	discount, err := coupon.NewDiscount(discountType, value, maxDiscount)
	if err != nil {
		return s.fail(c, err)
	}

	minOrder, err := toMoneyPtr(req.MinOrder)
	if err != nil {
		return s.fail(c, err)
	}
	restrictions, err := toRestrictions(req.RestaurantIDs, req.CategoryIDs)
	if err != nil {
		return s.fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateCouponCommand(
		id,
		req.Code,
		discount,
		coupon.Limits{MinOrder: minOrder, UsageLimit: req.UsageLimit, UserUsageLimit: req.UserUsageLimit},
		coupon.Window{StartsAt: req.StartsAt, ExpiresAt: req.ExpiresAt},
		restrictions,
	)
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.handlers.CreateCoupon.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CouponCreated{ID: id.Bytes(), Code: req.Code})
}

// DeactivateCoupon handles POST /api/v1/coupons/{code}/deactivate.
func (s *Server) DeactivateCoupon(c echo.Context, code string) error {
	cmd, err := commands.NewDeactivateCouponCommand(code)
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.handlers.DeactivateCoupon.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// EvaluateCoupon handles POST /api/v1/coupons/{code}/evaluate. A rejected
// coupon is answered with 422 and the rejection reason.
func (s *Server) EvaluateCoupon(c echo.Context, code string) error {
	var req EvaluateCoupon
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	userID, err := toKernelUUID(req.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	restaurantID, err := toKernelUUID(req.RestaurantID)
	if err != nil {
		return s.fail(c, err)
	}
	categoryIDs, err := toKernelUUIDs(req.CategoryIDs)
	if err != nil {
		return s.fail(c, err)
	}
	amount, err := kernel.MoneyFromString(req.OrderAmount)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewEvaluateCouponQuery(code, userID, amount, restaurantID, categoryIDs, s.now())
	if err != nil {
		return s.fail(c, err)
	}

	decision, err := s.handlers.EvaluateCoupon.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	if err := decision.Err(code); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, Evaluation{Code: code, Discount: decision.Discount().String()})
}

// CommitCoupon handles POST /api/v1/coupons/{code}/redemptions.
func (s *Server) CommitCoupon(c echo.Context, code string) error {
	var req NewRedemption
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	userID, err := toKernelUUID(req.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	var orderID *kernel.UUID
	if req.OrderID != nil {
		id, err := toKernelUUID(*req.OrderID)
		if err != nil {
			return s.fail(c, err)
		}
		orderID = &id
	}
	amount, err := kernel.MoneyFromString(req.DiscountAmount)
	if err != nil {
		return s.fail(c, err)
	}
	usedAt := s.now()
	if req.UsedAt != nil {
		usedAt = *req.UsedAt
	}

	cmd, err := commands.NewCommitCouponCommand(code, userID, orderID, amount, usedAt)
	if err != nil {
		return s.fail(c, err)
	}

	usageID, err := s.handlers.CommitCoupon.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Redemption{UsageID: usageID.Bytes()})
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	var req NewOrder
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	userID, err := toKernelUUID(req.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	restaurantID, err := toKernelUUID(req.RestaurantID)
	if err != nil {
		return s.fail(c, err)
	}
	categoryIDs, err := toKernelUUIDs(req.CategoryIDs)
	if err != nil {
		return s.fail(c, err)
	}
	subtotal, err := kernel.MoneyFromString(req.Subtotal)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), userID, restaurantID, subtotal, categoryIDs, req.CouponCode, s.now(),
	)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, PlacedOrder{
		OrderID:  result.OrderID.Bytes(),
		Subtotal: result.Subtotal.String(),
		Discount: result.Discount.String(),
		Total:    result.Total.String(),
	})
}

// GetPartners handles GET /api/v1/partners.
func (s *Server) GetPartners(c echo.Context) error {
	partners, err := s.handlers.GetAllPartners.Handle(c.Request().Context(), queries.NewGetAllPartnersQuery())
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Partner, len(partners))
	for i, p := range partners {
		response[i] = Partner{
			ID:              p.ID.Bytes(),
			Name:            p.Name,
			Online:          p.Online,
			Active:          p.Active,
			Rating:          p.Rating.StringFixed(2),
			TotalDeliveries: p.TotalDeliveries,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// CreatePartner handles POST /api/v1/partners.
func (s *Server) CreatePartner(c echo.Context) error {
	var req NewPartner
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePartnerCommand(id, req.Name, req.Online)
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.handlers.CreatePartner.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// SetPartnerAvailability handles PUT /api/v1/partners/{partnerId}/availability.
func (s *Server) SetPartnerAvailability(c echo.Context, partnerID kernel.UUID) error {
	var req Availability
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSetPartnerAvailabilityCommand(partnerID, *req.Online, *req.Active)
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.handlers.SetPartnerAvailability.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateAssignment handles POST /api/v1/assignments.
func (s *Server) CreateAssignment(c echo.Context) error {
	var req NewAssignment
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	orderID, err := toKernelUUID(req.OrderID)
	if err != nil {
		return s.fail(c, err)
	}
	partnerID, err := toKernelUUID(req.PartnerID)
	if err != nil {
		return s.fail(c, err)
	}
	fee, err := kernel.MoneyFromString(req.DeliveryFee)
	if err != nil {
		return s.fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateAssignmentCommand(id, orderID, partnerID, fee, req.Notes, s.now())
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.handlers.CreateAssignment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// GetActiveAssignments handles GET /api/v1/assignments/active.
func (s *Server) GetActiveAssignments(c echo.Context) error {
	assignments, err := s.handlers.GetActiveAssignments.Handle(
		c.Request().Context(), queries.NewGetActiveAssignmentsQuery(),
	)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Assignment, len(assignments))
	for i, a := range assignments {
		response[i] = Assignment{
			ID:          a.ID.Bytes(),
			OrderID:     a.OrderID.Bytes(),
			PartnerID:   a.PartnerID.Bytes(),
			Status:      a.Status.String(),
			AssignedAt:  a.AssignedAt.UTC(),
			StatusSince: a.StatusSince.UTC(),
			DeliveryFee: a.DeliveryFee.String(),
			Tips:        a.Tips.String(),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// TransitionAssignment handles POST /api/v1/assignments/{assignmentId}/transitions.
// The transition time defaults to the server clock.
func (s *Server) TransitionAssignment(c echo.Context, assignmentID kernel.UUID) error {
	var req Transition
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	target, err := assignment.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, err)
	}
	at := s.now()
	if req.At != nil {
		at = *req.At
	}

	cmd, err := commands.NewTransitionAssignmentCommand(assignmentID, target, at, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.handlers.TransitionAssignment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RecordTip handles POST /api/v1/assignments/{assignmentId}/tips.
func (s *Server) RecordTip(c echo.Context, assignmentID kernel.UUID) error {
	var req NewTip
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	amount, err := kernel.MoneyFromString(req.Amount)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRecordTipCommand(assignmentID, amount)
	if err != nil {
		return s.fail(c, err)
	}

	tips, err := s.handlers.RecordTip.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, Tips{Tips: tips.String()})
}

// RateDelivery handles POST /api/v1/assignments/{assignmentId}/rating.
func (s *Server) RateDelivery(c echo.Context, assignmentID kernel.UUID) error {
	var req NewRating
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRateDeliveryCommand(assignmentID, req.Score)
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.handlers.RateDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toRestrictions(restaurantIDs, categoryIDs []openapi_types.UUID) (coupon.Restrictions, error) {
	restaurants, err := toKernelUUIDs(restaurantIDs)
	if err != nil {
		return coupon.Restrictions{}, err
	}
	categories, err := toKernelUUIDs(categoryIDs)
	if err != nil {
		return coupon.Restrictions{}, err
	}

	restaurantSet, err := coupon.NewIDSet(restaurants...)
	if err != nil {
		return coupon.Restrictions{}, err
	}
	categorySet, err := coupon.NewIDSet(categories...)
	if err != nil {
		return coupon.Restrictions{}, err
	}

	return coupon.Restrictions{Restaurants: restaurantSet, Categories: categorySet}, nil
}
