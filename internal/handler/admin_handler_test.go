package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/wisatatrek/tour-booking-service/internal/dto"
	"github.com/wisatatrek/tour-booking-service/internal/models"
	"github.com/wisatatrek/tour-booking-service/internal/service"
)

// --- Mock RouteService ---

type mockRouteService struct {
	createFn func(ctx context.Context, route *models.Route) error
	getFn    func(ctx context.Context, id string) (*models.Route, error)
	listFn   func(ctx context.Context, activeOnly bool) ([]models.Route, error)
	updateFn func(ctx context.Context, id string, update service.RouteUpdate) (*models.Route, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockRouteService) CreateRoute(ctx context.Context, route *models.Route) error {
	return m.createFn(ctx, route)
}
func (m *mockRouteService) GetRoute(ctx context.Context, id string) (*models.Route, error) {
	return m.getFn(ctx, id)
}
func (m *mockRouteService) ListRoutes(ctx context.Context, activeOnly bool) ([]models.Route, error) {
	return m.listFn(ctx, activeOnly)
}
func (m *mockRouteService) UpdateRoute(ctx context.Context, id string, update service.RouteUpdate) (*models.Route, error) {
	return m.updateFn(ctx, id, update)
}
func (m *mockRouteService) DeleteRoute(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func newAdminContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUpdateBookingStatus_Handler_Confirm(t *testing.T) {
	svc := &mockBookingService{
		updateStatusFn: func(ctx context.Context, bookingID string, next models.BookingStatus) (*models.Booking, error) {
			return &models.Booking{ID: bookingID, Status: next}, nil
		},
	}

	e := echo.New()
	c, rec := newAdminContext(e, http.MethodPut, "/api/v1/admin/bookings/b-1/status", `{"status":"CONFIRMED"}`)
	c.SetParamNames("id")
	c.SetParamValues("b-1")

	err := NewAdminHandler(svc, nil).UpdateBookingStatus(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusConfirmed, resp.Status)
}

func TestUpdateBookingStatus_Handler_UnknownStatus(t *testing.T) {
	e := echo.New()
	c, _ := newAdminContext(e, http.MethodPut, "/api/v1/admin/bookings/b-1/status", `{"status":"SHIPPED"}`)
	c.SetParamNames("id")
	c.SetParamValues("b-1")

	err := NewAdminHandler(nil, nil).UpdateBookingStatus(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdateBookingStatus_Handler_InvalidTransition(t *testing.T) {
	svc := &mockBookingService{
		updateStatusFn: func(ctx context.Context, bookingID string, next models.BookingStatus) (*models.Booking, error) {
			return nil, service.ErrInvalidTransition
		},
	}

	e := echo.New()
	c, _ := newAdminContext(e, http.MethodPut, "/api/v1/admin/bookings/b-1/status", `{"status":"COMPLETED"}`)
	c.SetParamNames("id")
	c.SetParamValues("b-1")

	err := NewAdminHandler(svc, nil).UpdateBookingStatus(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestSetCapacity_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		setMaxFn: func(ctx context.Context, routeID, date string, value int) (*models.DailyCapacity, error) {
			return &models.DailyCapacity{ID: 1, RouteID: routeID, Date: date, MaxCapacity: value}, nil
		},
	}

	e := echo.New()
	body := `{"route_id":"route-1","date":"2030-06-01","max_capacity":80}`
	c, rec := newAdminContext(e, http.MethodPost, "/api/v1/admin/capacities", body)

	err := NewAdminHandler(svc, nil).SetCapacity(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CapacityResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 80, resp.MaxCapacity)
	assert.Equal(t, 80, resp.RemainingSlots)
}

func TestSetCapacity_Handler_Validation(t *testing.T) {
	e := echo.New()
	h := NewAdminHandler(nil, nil)

	for _, body := range []string{
		`{"date":"2030-06-01","max_capacity":80}`,
		`{"route_id":"route-1","max_capacity":80}`,
		`{"route_id":"route-1","date":"2030-06-01","max_capacity":0}`,
	} {
		c, _ := newAdminContext(e, http.MethodPost, "/api/v1/admin/capacities", body)
		err := h.SetCapacity(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok, "body=%s", body)
		assert.Equal(t, http.StatusBadRequest, he.Code, "body=%s", body)
	}
}

func TestDeleteRoute_Handler_BlockedByBookings(t *testing.T) {
	routeSvc := &mockRouteService{
		deleteFn: func(ctx context.Context, id string) error {
			return service.ErrRouteHasBookings
		},
	}

	e := echo.New()
	c, _ := newAdminContext(e, http.MethodDelete, "/api/v1/admin/routes/route-1", "")
	c.SetParamNames("id")
	c.SetParamValues("route-1")

	err := NewAdminHandler(nil, routeSvc).DeleteRoute(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateRoute_Handler_Success(t *testing.T) {
	routeSvc := &mockRouteService{
		createFn: func(ctx context.Context, route *models.Route) error {
			route.ID = "route-1"
			return nil
		},
	}

	e := echo.New()
	body := `{"name":"Sunrise Volcano Trek","price":350,"duration_hours":6,"difficulty":"moderate"}`
	c, rec := newAdminContext(e, http.MethodPost, "/api/v1/admin/routes", body)

	err := NewAdminHandler(nil, routeSvc).CreateRoute(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.RouteResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "route-1", resp.ID)
	assert.True(t, resp.IsActive)
}

func TestGetAvailability_Handler(t *testing.T) {
	svc := &mockBookingService{
		remainingFn: func(ctx context.Context, routeID, date string) (int, error) {
			return 17, nil
		},
	}

	e := echo.New()
	c, rec := newAdminContext(e, http.MethodGet, "/api/v1/routes/route-1/availability?date=2030-06-01", "")
	c.SetParamNames("id")
	c.SetParamValues("route-1")

	err := NewRouteHandler(&mockRouteService{}, svc).GetAvailability(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AvailabilityResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 17, resp.RemainingSlots)
	assert.Equal(t, "2030-06-01", resp.Date)
}

func TestGetAvailability_Handler_MissingDate(t *testing.T) {
	e := echo.New()
	c, _ := newAdminContext(e, http.MethodGet, "/api/v1/routes/route-1/availability", "")
	c.SetParamNames("id")
	c.SetParamValues("route-1")

	err := NewRouteHandler(&mockRouteService{}, nil).GetAvailability(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetRoute_Handler_NotFound(t *testing.T) {
	routeSvc := &mockRouteService{
		getFn: func(ctx context.Context, id string) (*models.Route, error) {
			return nil, service.ErrRouteNotFound
		},
	}

	e := echo.New()
	c, _ := newAdminContext(e, http.MethodGet, "/api/v1/routes/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := NewRouteHandler(routeSvc, nil).GetRoute(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
