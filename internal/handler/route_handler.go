package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wisatatrek/tour-booking-service/internal/dto"
	"github.com/wisatatrek/tour-booking-service/internal/service"
)

// RouteHandler serves the public read-side: active routes and per-date
// availability.
type RouteHandler struct {
	routeSvc   service.RouteService
	bookingSvc service.BookingService
}

func NewRouteHandler(routeSvc service.RouteService, bookingSvc service.BookingService) *RouteHandler {
	return &RouteHandler{routeSvc: routeSvc, bookingSvc: bookingSvc}
}

func (h *RouteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListRoutes)
	g.GET("/:id", h.GetRoute)
	g.GET("/:id/availability", h.GetAvailability)
}

func (h *RouteHandler) ListRoutes(c echo.Context) error {
	routes, err := h.routeSvc.ListRoutes(c.Request().Context(), true)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.RouteResponse, len(routes))
	for i := range routes {
		resp[i] = dto.ToRouteResponse(&routes[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RouteHandler) GetRoute(c echo.Context) error {
	route, err := h.routeSvc.GetRoute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, dto.ToRouteResponse(route))
}

func (h *RouteHandler) GetAvailability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required")
	}

	remaining, err := h.bookingSvc.RemainingSlots(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return bookingErrorToHTTP(err)
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		RouteID:        c.Param("id"),
		Date:           date,
		RemainingSlots: remaining,
	})
}
