package http

import (
	"fmt"
	"net/http"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// Register mounts the health probe, the swagger UI and the validated API
// routes on e, and installs the request validator.
func Register(e *echo.Echo, s *Server, doc *openapi3.T) error {
	e.Validator = NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	validate, err := OpenAPIValidator(doc)
	if err != nil {
		return err
	}

	api := e.Group(BasePath, validate)
	w := wrapper{server: s}

	api.POST("/coupons", s.CreateCoupon)
	api.POST("/coupons/:code/deactivate", w.withCode(s.DeactivateCoupon))
	api.POST("/coupons/:code/evaluate", w.withCode(s.EvaluateCoupon))
	api.POST("/coupons/:code/redemptions", w.withCode(s.CommitCoupon))

	api.POST("/orders", s.PlaceOrder)

	api.GET("/partners", s.GetPartners)
	api.POST("/partners", s.CreatePartner)
	api.PUT("/partners/:partnerId/availability", w.withID("partnerId", s.SetPartnerAvailability))

	api.POST("/assignments", s.CreateAssignment)
	api.GET("/assignments/active", s.GetActiveAssignments)
	api.POST("/assignments/:assignmentId/transitions", w.withID("assignmentId", s.TransitionAssignment))
	api.POST("/assignments/:assignmentId/tips", w.withID("assignmentId", s.RecordTip))
	api.POST("/assignments/:assignmentId/rating", w.withID("assignmentId", s.RateDelivery))

	return nil
}

var pathParam = runtime.BindStyledParameterOptions{
	ParamLocation: runtime.ParamLocationPath,
	Explode:       false,
	Required:      true,
}

// wrapper binds path parameters before calling the server method.
type wrapper struct {
	server *Server
}

func (w wrapper) withCode(next func(echo.Context, string) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		var code string
		err := runtime.BindStyledParameterWithOptions("simple", "code", c.Param("code"), &code, pathParam)
		if err != nil {
			return w.server.fail(c, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter code: %s", err)))
		}
		return next(c, code)
	}
}

func (w wrapper) withID(name string, next func(echo.Context, kernel.UUID) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		var raw openapi_types.UUID
		err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, pathParam)
		if err != nil {
			return w.server.fail(c, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err)))
		}

		id, err := toKernelUUID(raw)
		if err != nil {
			return w.server.fail(c, err)
		}
		return next(c, id)
	}
}
