package travel

import (
	"errors"
	"net/http"
	"travel-assistant/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler exposes the travel aggregator as a plain REST endpoint for
// non-chat clients.
type Handler struct {
	service  ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new travel handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// CreatePlan handles POST /api/travel/plan.
func (h *Handler) CreatePlan(c echo.Context) error {
	var req models.PlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	plan, err := h.service.Plan(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnsupportedTravelMode):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		case errors.Is(err, models.ErrCoordinatesNotFound), errors.Is(err, models.ErrNoRoutes):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: err.Error()})
		default:
			c.Logger().Error("Handler.CreatePlan: ", err)
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: "Failed to build the travel plan"})
		}
	}

	return c.JSON(http.StatusOK, plan)
}
