package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wisatatrek/tour-booking-service/internal/models"
	"github.com/wisatatrek/tour-booking-service/internal/repository"
	"gorm.io/gorm"
)

type RouteService interface {
	CreateRoute(ctx context.Context, route *models.Route) error
	GetRoute(ctx context.Context, id string) (*models.Route, error)
	ListRoutes(ctx context.Context, activeOnly bool) ([]models.Route, error)
	UpdateRoute(ctx context.Context, id string, update RouteUpdate) (*models.Route, error)
	DeleteRoute(ctx context.Context, id string) error
}

// RouteUpdate carries the admin-editable fields; nil means "leave as is".
type RouteUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	DurationHours *int
	Difficulty    *string
	IsActive      *bool
}

type routeService struct {
	routeRepo    repository.RouteRepository
	bookingRepo  repository.BookingRepository
	capacityRepo repository.CapacityRepository
}

func NewRouteService(routeRepo repository.RouteRepository, bookingRepo repository.BookingRepository, capacityRepo repository.CapacityRepository) RouteService {
	return &routeService{routeRepo: routeRepo, bookingRepo: bookingRepo, capacityRepo: capacityRepo}
}

func (s *routeService) CreateRoute(ctx context.Context, route *models.Route) error {
	if route.Name == "" || route.Price < 0 || route.DurationHours < 1 {
		return ErrInvalidInput
	}
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return fmt.Errorf("create route: %w", err)
	}
	return nil
}

func (s *routeService) GetRoute(ctx context.Context, id string) (*models.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return route, nil
}

func (s *routeService) ListRoutes(ctx context.Context, activeOnly bool) ([]models.Route, error) {
	return s.routeRepo.FindAll(ctx, activeOnly)
}

func (s *routeService) UpdateRoute(ctx context.Context, id string, update RouteUpdate) (*models.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		route.Name = *update.Name
	}
	if update.Description != nil {
		route.Description = *update.Description
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, ErrInvalidInput
		}
		route.Price = *update.Price
	}
	if update.DurationHours != nil {
		if *update.DurationHours < 1 {
			return nil, ErrInvalidInput
		}
		route.DurationHours = *update.DurationHours
	}
	if update.Difficulty != nil {
		route.Difficulty = *update.Difficulty
	}
	if update.IsActive != nil {
		route.IsActive = *update.IsActive
	}

	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, fmt.Errorf("update route: %w", err)
	}
	return route, nil
}

// DeleteRoute removes a route and its capacity entries. Routes with any
// booking history are never deleted (bookings are the audit trail);
// deactivation is the supported way to retire them.
func (s *routeService) DeleteRoute(ctx context.Context, id string) error {
	if _, err := s.routeRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRouteNotFound
		}
		return err
	}

	hasBookings, err := s.bookingRepo.ExistsForRoute(ctx, id)
	if err != nil {
		return err
	}
	if hasBookings {
		return ErrRouteHasBookings
	}

	return s.capacityRepo.Transact(ctx, func(tx *gorm.DB) error {
		if err := s.capacityRepo.DeleteByRoute(ctx, tx, id); err != nil {
			return err
		}
		return s.routeRepo.Delete(ctx, tx, id)
	})
}
