package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wisatatrek/tour-booking-service/internal/dto"
	"github.com/wisatatrek/tour-booking-service/internal/middleware"
	"github.com/wisatatrek/tour-booking-service/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// RegisterRoutes wires the customer-facing booking endpoints onto a group
// that already carries Auth + customer role middleware.
func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateBooking)
	g.GET("", h.ListMyBookings)
	g.GET("/:id", h.GetBooking)
	g.DELETE("/:id", h.CancelBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RouteID == "" || req.BookingDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "route_id and booking_date are required")
	}

	booking, err := h.svc.CreateBooking(
		c.Request().Context(),
		middleware.UserID(c),
		req.RouteID,
		req.BookingDate,
		req.NumberOfPeople,
		req.Notes,
	)
	if err != nil {
		return bookingErrorToHTTP(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	bookings, err := h.svc.ListUserBookings(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	booking, err := h.svc.CancelBooking(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return bookingErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// bookingErrorToHTTP maps the service error taxonomy onto distinct HTTP
// statuses. SystemBusy (503) deliberately differs from
// InsufficientCapacity (409) so clients can tell "try again" apart from
// "pick another date".
func bookingErrorToHTTP(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRouteNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInsufficientCapacity):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotCancellable):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSystemBusy):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrRouteHasBookings):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
