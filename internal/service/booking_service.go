package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/wisatatrek/tour-booking-service/internal/models"
	"github.com/wisatatrek/tour-booking-service/internal/repository"
	"github.com/wisatatrek/tour-booking-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

const (
	// maxAttempts bounds the optimistic-lock retry loop. Exhausting it
	// surfaces ErrSystemBusy; the caller resubmits.
	maxAttempts = 5

	baseRetryDelay = 5 * time.Millisecond

	dateLayout = "2006-01-02"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID, routeID, date string, numberOfPeople int, notes string) (*models.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, next models.BookingStatus) (*models.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	ListAllBookings(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error)
	RemainingSlots(ctx context.Context, routeID, date string) (int, error)
	SetMaxCapacity(ctx context.Context, routeID, date string, value int) (*models.DailyCapacity, error)
	ListCapacities(ctx context.Context) ([]models.DailyCapacity, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	capacityRepo repository.CapacityRepository
	routeRepo    repository.RouteRepository
	publisher    *rabbitmq.Publisher
	defaultMax   int
	retryDelay   time.Duration
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	capacityRepo repository.CapacityRepository,
	routeRepo repository.RouteRepository,
	publisher *rabbitmq.Publisher,
	defaultMaxCapacity int,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		capacityRepo: capacityRepo,
		routeRepo:    routeRepo,
		publisher:    publisher,
		defaultMax:   defaultMaxCapacity,
		retryDelay:   baseRetryDelay,
	}
}

// CreateBooking reserves numberOfPeople slots on (routeID, date).
//
// Each attempt re-reads the capacity entry, pre-checks availability, then
// commits "occupy slots + create booking" as one transaction keyed on the
// entry's version. A stale version means another writer got there first;
// that attempt is discarded and the whole read-check-write cycle runs
// again, up to maxAttempts.
func (s *bookingService) CreateBooking(ctx context.Context, userID, routeID, date string, numberOfPeople int, notes string) (*models.Booking, error) {
	if numberOfPeople < models.MinPartySize || numberOfPeople > models.MaxPartySize {
		return nil, ErrInvalidInput
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidInput
	}
	if date < time.Now().Format(dateLayout) {
		return nil, ErrInvalidInput
	}

	route, err := s.routeRepo.FindActiveByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ErrSystemBusy
		}

		entry, err := s.capacityRepo.GetOrCreate(ctx, routeID, date, s.defaultMax)
		if err != nil {
			return nil, err
		}

		// Cheap pre-check; the authoritative bound lives inside
		// TryAdjustOccupancy.
		if entry.RemainingSlots() < numberOfPeople {
			return nil, ErrInsufficientCapacity
		}

		var booking *models.Booking
		err = s.capacityRepo.Transact(ctx, func(tx *gorm.DB) error {
			updated, err := s.capacityRepo.TryAdjustOccupancy(ctx, tx, entry.ID, entry.Version, numberOfPeople)
			if err != nil {
				return err
			}
			b := &models.Booking{
				UserID:          userID,
				RouteID:         routeID,
				DailyCapacityID: updated.ID,
				BookingDate:     date,
				NumberOfPeople:  numberOfPeople,
				TotalPrice:      route.Price * float64(numberOfPeople),
				Notes:           notes,
				Status:          models.StatusPending,
				PaymentStatus:   models.PaymentPending,
			}
			if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
				return err
			}
			booking = b
			return nil
		})

		switch {
		case err == nil:
			booking.Route = route
			s.notify("booking.created", booking)
			return booking, nil
		case errors.Is(err, repository.ErrStaleVersion):
			s.backoff(ctx, attempt)
			continue
		case errors.Is(err, repository.ErrCapacityExceeded):
			// The slots genuinely filled between our read and write.
			return nil, ErrInsufficientCapacity
		case errors.Is(err, repository.ErrOccupancyUnderflow):
			log.Printf("[BookingService] occupancy underflow on reserve: entry=%d", entry.ID)
			return nil, ErrInvariantViolation
		default:
			return nil, err
		}
	}

	return nil, ErrSystemBusy
}

// CancelBooking releases the booking's slots and marks it CANCELLED.
// Both the booking row and the capacity entry carry their own version
// guard; a miss on either one discards the attempt and re-reads both.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return s.cancel(ctx, booking)
}

func (s *bookingService) cancel(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ErrSystemBusy
		}

		if !booking.Status.Cancellable() {
			return nil, ErrNotCancellable
		}

		entry, err := s.capacityRepo.FindByID(ctx, booking.DailyCapacityID)
		if err != nil {
			return nil, err
		}

		err = s.capacityRepo.Transact(ctx, func(tx *gorm.DB) error {
			if err := s.bookingRepo.UpdateStatusIf(ctx, tx, booking.ID, booking.Version, models.StatusCancelled); err != nil {
				return err
			}
			_, err := s.capacityRepo.TryAdjustOccupancy(ctx, tx, entry.ID, entry.Version, -booking.NumberOfPeople)
			return err
		})

		switch {
		case err == nil:
			booking.Status = models.StatusCancelled
			booking.Version++
			s.notify("booking.cancelled", booking)
			return booking, nil
		case errors.Is(err, repository.ErrStaleVersion):
			s.backoff(ctx, attempt)
			booking, err = s.bookingRepo.FindByID(ctx, booking.ID)
			if err != nil {
				return nil, err
			}
			continue
		case errors.Is(err, repository.ErrOccupancyUnderflow),
			errors.Is(err, repository.ErrCapacityExceeded):
			// A negative delta can never legitimately fail the bounds.
			log.Printf("[BookingService] invariant violated cancelling booking %s: %v", booking.ID, err)
			return nil, ErrInvariantViolation
		default:
			return nil, err
		}
	}

	return nil, ErrSystemBusy
}

// UpdateBookingStatus drives administrator transitions (confirm, complete,
// cancel). Cancellation goes through the capacity-releasing path; other
// transitions only touch the booking row.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, next models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if next == models.StatusCancelled {
		b, err := s.cancel(ctx, booking)
		if errors.Is(err, ErrNotCancellable) {
			return nil, ErrInvalidTransition
		}
		return b, err
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ErrSystemBusy
		}

		if !booking.Status.CanTransitionTo(next) {
			return nil, ErrInvalidTransition
		}

		err = s.capacityRepo.Transact(ctx, func(tx *gorm.DB) error {
			return s.bookingRepo.UpdateStatusIf(ctx, tx, booking.ID, booking.Version, next)
		})

		switch {
		case err == nil:
			booking.Status = next
			booking.Version++
			s.notify("booking.status_changed", booking)
			return booking, nil
		case errors.Is(err, repository.ErrStaleVersion):
			s.backoff(ctx, attempt)
			booking, err = s.bookingRepo.FindByID(ctx, booking.ID)
			if err != nil {
				return nil, err
			}
			continue
		default:
			return nil, err
		}
	}

	return nil, ErrSystemBusy
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookingRepo.FindByUserID(ctx, userID)
}

func (s *bookingService) ListAllBookings(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx, status)
}

// RemainingSlots reports how many slots are still bookable on
// (routeID, date). A date nobody has touched yet reports the default
// capacity without creating an entry.
func (s *bookingService) RemainingSlots(ctx context.Context, routeID, date string) (int, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return 0, ErrInvalidInput
	}
	if _, err := s.routeRepo.FindActiveByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRouteNotFound
		}
		return 0, err
	}

	entry, err := s.capacityRepo.FindByRouteAndDate(ctx, routeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultMax, nil
		}
		return 0, err
	}
	return entry.RemainingSlots(), nil
}

func (s *bookingService) SetMaxCapacity(ctx context.Context, routeID, date string, value int) (*models.DailyCapacity, error) {
	if value < 1 {
		return nil, ErrInvalidInput
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidInput
	}
	if _, err := s.routeRepo.FindByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return s.capacityRepo.SetMaxCapacity(ctx, routeID, date, value)
}

func (s *bookingService) ListCapacities(ctx context.Context) ([]models.DailyCapacity, error) {
	return s.capacityRepo.FindAll(ctx)
}

func (s *bookingService) notify(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, booking); err != nil {
		log.Printf("[BookingService] publish %s for booking %s: %v", routingKey, booking.ID, err)
	}
}

// backoff sleeps a jittered, linearly growing delay between conflict
// retries, returning early if the caller's context is done.
func (s *bookingService) backoff(ctx context.Context, attempt int) {
	d := time.Duration(attempt+1) * s.retryDelay
	d += time.Duration(rand.Int63n(int64(s.retryDelay)))
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
