package repository

import (
	"context"

	"github.com/wisatatrek/tour-booking-service/internal/models"
	"gorm.io/gorm"
)

type RouteRepository interface {
	Create(ctx context.Context, route *models.Route) error
	FindByID(ctx context.Context, id string) (*models.Route, error)
	FindActiveByID(ctx context.Context, id string) (*models.Route, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.Route, error)
	Update(ctx context.Context, route *models.Route) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type routeRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) Create(ctx context.Context, route *models.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *routeRepository) FindByID(ctx context.Context, id string) (*models.Route, error) {
	var route models.Route
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) FindActiveByID(ctx context.Context, id string) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.Route, error) {
	var routes []models.Route
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("name ASC").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) Update(ctx context.Context, route *models.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

func (r *routeRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&models.Route{}).Error
}
