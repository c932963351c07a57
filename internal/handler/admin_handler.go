package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wisatatrek/tour-booking-service/internal/dto"
	"github.com/wisatatrek/tour-booking-service/internal/models"
	"github.com/wisatatrek/tour-booking-service/internal/service"
)

// AdminHandler exposes the back-office surface: booking oversight,
// capacity management and route CRUD.
type AdminHandler struct {
	bookingSvc service.BookingService
	routeSvc   service.RouteService
}

func NewAdminHandler(bookingSvc service.BookingService, routeSvc service.RouteService) *AdminHandler {
	return &AdminHandler{bookingSvc: bookingSvc, routeSvc: routeSvc}
}

// RegisterRoutes wires the admin endpoints onto a group that already
// carries Auth + admin role middleware.
func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/bookings", h.ListBookings)
	g.PUT("/bookings/:id/status", h.UpdateBookingStatus)

	g.GET("/capacities", h.ListCapacities)
	g.POST("/capacities", h.SetCapacity)

	g.GET("/routes", h.ListRoutes)
	g.POST("/routes", h.CreateRoute)
	g.PUT("/routes/:id", h.UpdateRoute)
	g.DELETE("/routes/:id", h.DeleteRoute)
}

func (h *AdminHandler) ListBookings(c echo.Context) error {
	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.bookingSvc.ListAllBookings(c.Request().Context(), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	var req dto.UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	next := models.BookingStatus(req.Status)
	switch next {
	case models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	booking, err := h.bookingSvc.UpdateBookingStatus(c.Request().Context(), c.Param("id"), next)
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *AdminHandler) ListCapacities(c echo.Context) error {
	capacities, err := h.bookingSvc.ListCapacities(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CapacityResponse, len(capacities))
	for i := range capacities {
		resp[i] = dto.ToCapacityResponse(&capacities[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) SetCapacity(c echo.Context) error {
	var req dto.SetCapacityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RouteID == "" || req.Date == "" || req.MaxCapacity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "route_id, date and max_capacity (>0) are required")
	}

	entry, err := h.bookingSvc.SetMaxCapacity(c.Request().Context(), req.RouteID, req.Date, req.MaxCapacity)
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, dto.ToCapacityResponse(entry))
}

func (h *AdminHandler) ListRoutes(c echo.Context) error {
	routes, err := h.routeSvc.ListRoutes(c.Request().Context(), false)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.RouteResponse, len(routes))
	for i := range routes {
		resp[i] = dto.ToRouteResponse(&routes[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateRoute(c echo.Context) error {
	var req dto.CreateRouteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	route := &models.Route{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DurationHours: req.DurationHours,
		Difficulty:    req.Difficulty,
		IsActive:      true,
	}
	if err := h.routeSvc.CreateRoute(c.Request().Context(), route); err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusCreated, dto.ToRouteResponse(route))
}

func (h *AdminHandler) UpdateRoute(c echo.Context) error {
	var req dto.UpdateRouteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	route, err := h.routeSvc.UpdateRoute(c.Request().Context(), c.Param("id"), service.RouteUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DurationHours: req.DurationHours,
		Difficulty:    req.Difficulty,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, dto.ToRouteResponse(route))
}

func (h *AdminHandler) DeleteRoute(c echo.Context) error {
	if err := h.routeSvc.DeleteRoute(c.Request().Context(), c.Param("id")); err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "route deleted"})
}
