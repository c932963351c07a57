package repository

import (
	"context"
	"fmt"

	"github.com/wisatatrek/tour-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CapacityRepository interface {
	GetOrCreate(ctx context.Context, routeID, date string, defaultMax int) (*models.DailyCapacity, error)
	FindByID(ctx context.Context, id uint) (*models.DailyCapacity, error)
	FindByRouteAndDate(ctx context.Context, routeID, date string) (*models.DailyCapacity, error)
	FindAll(ctx context.Context) ([]models.DailyCapacity, error)
	TryAdjustOccupancy(ctx context.Context, tx *gorm.DB, id uint, expectedVersion int64, delta int) (*models.DailyCapacity, error)
	SetMaxCapacity(ctx context.Context, routeID, date string, value int) (*models.DailyCapacity, error)
	DeleteByRoute(ctx context.Context, tx *gorm.DB, routeID string) error
	Transact(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type capacityRepository struct {
	db *gorm.DB
}

func NewCapacityRepository(db *gorm.DB) CapacityRepository {
	return &capacityRepository{db: db}
}

// GetOrCreate returns the capacity entry for (routeID, date), creating it
// with the default max capacity on first touch. Two concurrent creators are
// de-duplicated by the unique (route_id, date) index: the loser's insert is
// a no-op and both end up reading the same row.
func (r *capacityRepository) GetOrCreate(ctx context.Context, routeID, date string, defaultMax int) (*models.DailyCapacity, error) {
	entry, err := r.FindByRouteAndDate(ctx, routeID, date)
	if err == nil {
		return entry, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	fresh := &models.DailyCapacity{
		RouteID:         routeID,
		Date:            date,
		MaxCapacity:     defaultMax,
		CurrentBookings: 0,
		Version:         0,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "route_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(fresh)
	if res.Error != nil {
		return nil, fmt.Errorf("create capacity entry: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return fresh, nil
	}

	// Lost the creation race: the entry exists now, read it back.
	return r.FindByRouteAndDate(ctx, routeID, date)
}

func (r *capacityRepository) FindByID(ctx context.Context, id uint) (*models.DailyCapacity, error) {
	var entry models.DailyCapacity
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *capacityRepository) FindByRouteAndDate(ctx context.Context, routeID, date string) (*models.DailyCapacity, error) {
	var entry models.DailyCapacity
	err := r.db.WithContext(ctx).
		Where("route_id = ? AND date = ?", routeID, date).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *capacityRepository) FindAll(ctx context.Context) ([]models.DailyCapacity, error) {
	var entries []models.DailyCapacity
	err := r.db.WithContext(ctx).
		Preload("Route").
		Order("date DESC, route_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// TryAdjustOccupancy applies current_bookings += delta as a single
// conditional write: it only lands if the stored version still equals
// expectedVersion and the result stays within [0, max_capacity]. The
// version advances by one on success. When the update hits nothing, a
// fresh read distinguishes a concurrent writer (stale version, retryable)
// from a genuine bound violation (terminal).
func (r *capacityRepository) TryAdjustOccupancy(ctx context.Context, tx *gorm.DB, id uint, expectedVersion int64, delta int) (*models.DailyCapacity, error) {
	res := tx.WithContext(ctx).Exec(
		`UPDATE daily_capacities
		 SET current_bookings = current_bookings + ?, version = version + 1, updated_at = NOW()
		 WHERE id = ? AND version = ?
		   AND current_bookings + ? >= 0
		   AND current_bookings + ? <= max_capacity`,
		delta, id, expectedVersion, delta, delta,
	)
	if res.Error != nil {
		return nil, fmt.Errorf("adjust occupancy: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		var fresh models.DailyCapacity
		if err := tx.WithContext(ctx).First(&fresh, id).Error; err != nil {
			return nil, fmt.Errorf("classify failed adjust: %w", err)
		}
		if fresh.Version != expectedVersion {
			return nil, ErrStaleVersion
		}
		if delta > 0 {
			return nil, ErrCapacityExceeded
		}
		return nil, ErrOccupancyUnderflow
	}

	var updated models.DailyCapacity
	if err := tx.WithContext(ctx).First(&updated, id).Error; err != nil {
		return nil, fmt.Errorf("reload adjusted entry: %w", err)
	}
	return &updated, nil
}

// SetMaxCapacity is the administrative upsert: last writer wins on
// max_capacity, occupancy and version are left untouched.
func (r *capacityRepository) SetMaxCapacity(ctx context.Context, routeID, date string, value int) (*models.DailyCapacity, error) {
	entry := &models.DailyCapacity{
		RouteID:         routeID,
		Date:            date,
		MaxCapacity:     value,
		CurrentBookings: 0,
		Version:         0,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "route_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"max_capacity", "updated_at"}),
	}).Create(entry)
	if res.Error != nil {
		return nil, fmt.Errorf("set max capacity: %w", res.Error)
	}
	return r.FindByRouteAndDate(ctx, routeID, date)
}

func (r *capacityRepository) DeleteByRoute(ctx context.Context, tx *gorm.DB, routeID string) error {
	return tx.WithContext(ctx).
		Where("route_id = ?", routeID).
		Delete(&models.DailyCapacity{}).Error
}

// Transact runs fn inside a database transaction. The combined
// "adjust occupancy + write booking" step must go through here so both
// writes commit or neither does.
func (r *capacityRepository) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
