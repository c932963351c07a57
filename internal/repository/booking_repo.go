package repository

import (
	"context"

	"github.com/wisatatrek/tour-booking-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	FindAll(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error)
	ExistsForRoute(ctx context.Context, routeID string) (bool, error)
	UpdateStatusIf(ctx context.Context, tx *gorm.DB, id string, expectedVersion int64, status models.BookingStatus) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Route").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Route").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Preload("Route")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ExistsForRoute(ctx context.Context, routeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("route_id = ?", routeID).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatusIf flips the booking status guarded by the booking's own
// version token, so a concurrent cancel and admin transition cannot both
// land. Returns ErrStaleVersion when the guard misses.
func (r *bookingRepository) UpdateStatusIf(ctx context.Context, tx *gorm.DB, id string, expectedVersion int64, status models.BookingStatus) error {
	res := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"status":  status,
			"version": expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	return nil
}
