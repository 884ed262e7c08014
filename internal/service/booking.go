package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
	"albaniarides/internal/validate"
)

// BookingService coordinates seat inventory between a ride's advertised
// capacity and its confirmed bookings.
//
// The availability check and the seat decrement always happen as one
// conditional UPDATE inside a transaction with the booking insert, so two
// concurrent requests racing for the last seats cannot both succeed.
type BookingService struct {
	tx          repository.TxRunner
	bookingRepo repository.BookingRepository
	rideRepo    repository.RideRepository
	userRepo    repository.UserRepository
	notifier    *NotificationService
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	tx repository.TxRunner,
	bookingRepo repository.BookingRepository,
	rideRepo repository.RideRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
) *BookingService {
	return &BookingService{
		tx:          tx,
		bookingRepo: bookingRepo,
		rideRepo:    rideRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	PassengerID string
	RideID      string
	SeatsCount  int
	Message     string // optional first chat message to the driver
}

// CreateBooking reserves seats on a ride for a passenger.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if !validate.ValidSeatCount(req.SeatsCount) {
		return nil, ErrInvalidSeatCount
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if ride.DriverID == req.PassengerID {
		return nil, ErrOwnRide
	}
	if ride.Status != domain.RideStatusActive {
		return nil, ErrRideNotActive
	}

	// Friendly pre-checks; the conditional update and the partial unique
	// index remain the source of truth under concurrency.
	if _, err := s.bookingRepo.GetConfirmed(ctx, req.RideID, req.PassengerID); err == nil {
		return nil, ErrDuplicateBooking
	} else if err != repository.ErrNotFound {
		return nil, err
	}
	if ride.SeatsAvailable < req.SeatsCount {
		return nil, ErrInsufficientSeats
	}

	booking := &domain.Booking{
		ID:          uuid.New().String(),
		RideID:      ride.ID,
		PassengerID: req.PassengerID,
		SeatsCount:  req.SeatsCount,
		TotalPrice:  req.SeatsCount * ride.PricePerSeat,
		Status:      domain.BookingStatusConfirmed,
		CreatedAt:   time.Now(),
	}

	err = s.tx.InTx(ctx, func(r repository.TxRepos) error {
		reserved, err := r.Rides.ReserveSeats(ctx, ride.ID, req.SeatsCount)
		if err != nil {
			return err
		}
		if !reserved {
			return ErrInsufficientSeats
		}

		if err := r.Bookings.Create(ctx, booking); err != nil {
			if err == repository.ErrDuplicate {
				return ErrDuplicateBooking
			}
			return err
		}

		if req.Message != "" {
			msg := &domain.Message{
				ID:         uuid.New().String(),
				BookingID:  booking.ID,
				SenderID:   req.PassengerID,
				ReceiverID: ride.DriverID,
				Content:    req.Message,
				CreatedAt:  time.Now(),
			}
			if len(msg.Content) > maxMessageLength {
				msg.Content = msg.Content[:maxMessageLength]
			}
			if err := r.Messages.Create(ctx, msg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	bookingsCreated.Inc()

	// Best-effort contact exchange; never fails the booking.
	if s.notifier != nil {
		driver, derr := s.userRepo.GetByID(ctx, ride.DriverID)
		passenger, perr := s.userRepo.GetByID(ctx, req.PassengerID)
		if derr == nil && perr == nil {
			s.notifier.NotifyBookingCreated(ctx, booking, ride, driver, passenger)
		}
	}

	return booking, nil
}

// CancelBooking cancels a single booking, restoring its seats. Either the
// passenger or the ride's driver may cancel, up to 2 hours before departure.
func (s *BookingService) CancelBooking(ctx context.Context, requesterID, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	ride, err := s.rideRepo.GetByID(ctx, booking.RideID)
	if err != nil {
		return err
	}

	byPassenger := requesterID == booking.PassengerID
	if !byPassenger && requesterID != ride.DriverID {
		return ErrNotBookingParty
	}

	if booking.Status != domain.BookingStatusConfirmed {
		return ErrBookingNotActive
	}

	now := time.Now()
	if !validate.CanCancel(now, ride.DepartureTime) {
		return ErrCancelWindowClosed
	}

	err = s.tx.InTx(ctx, func(r repository.TxRepos) error {
		cancelled, err := r.Bookings.CancelConfirmed(ctx, bookingID, now)
		if err != nil {
			return err
		}
		if !cancelled {
			return ErrBookingNotActive
		}

		released, err := r.Rides.ReleaseSeats(ctx, ride.ID, booking.SeatsCount)
		if err != nil {
			return err
		}
		if !released {
			// Releasing past capacity means the seat ledger is corrupt; refuse
			// rather than widen the damage.
			return fmt.Errorf("seat release for booking %s would exceed ride capacity", bookingID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	bookingsCancelled.Inc()

	if s.notifier != nil {
		driver, derr := s.userRepo.GetByID(ctx, ride.DriverID)
		passenger, perr := s.userRepo.GetByID(ctx, booking.PassengerID)
		if derr == nil && perr == nil {
			s.notifier.NotifyBookingCancelled(ctx, booking, ride, driver, passenger, byPassenger)
		}
	}

	return nil
}

// CancelRide cancels a whole ride: driver-only, cascades cancellation to
// every confirmed booking and notifies every affected passenger.
func (s *BookingService) CancelRide(ctx context.Context, driverID, rideID string) error {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if ride.DriverID != driverID {
		return ErrNotRideOwner
	}

	now := time.Now()

	var cancelledBookings []*domain.Booking
	err = s.tx.InTx(ctx, func(r repository.TxRepos) error {
		transitioned, err := r.Rides.TransitionStatus(ctx, rideID, domain.RideStatusActive, domain.RideStatusCancelled, now)
		if err != nil {
			return err
		}
		if !transitioned {
			return ErrRideNotActive
		}

		cancelledBookings, err = r.Bookings.CancelAllConfirmedByRide(ctx, rideID, now)
		return err
	})
	if err != nil {
		return err
	}

	ridesCancelled.Inc()
	for range cancelledBookings {
		bookingsCancelled.Inc()
	}

	if s.notifier != nil && len(cancelledBookings) > 0 {
		s.notifyPassengers(ctx, ride, cancelledBookings, false)
	}

	return nil
}

// CompleteRide marks a ride as completed: driver-only, completes every
// confirmed booking and bumps lifetime ride counters for all participants.
func (s *BookingService) CompleteRide(ctx context.Context, driverID, rideID string) error {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if ride.DriverID != driverID {
		return ErrNotRideOwner
	}

	var passengerIDs []string
	err = s.tx.InTx(ctx, func(r repository.TxRepos) error {
		transitioned, err := r.Rides.TransitionStatus(ctx, rideID, domain.RideStatusActive, domain.RideStatusCompleted, time.Now())
		if err != nil {
			return err
		}
		if !transitioned {
			return ErrRideNotActive
		}

		passengerIDs, err = r.Bookings.CompleteAllConfirmedByRide(ctx, rideID)
		if err != nil {
			return err
		}

		return r.Users.IncrementCompletedRides(ctx, append(passengerIDs, driverID))
	})
	if err != nil {
		return err
	}

	ridesCompleted.Inc()

	if s.notifier != nil && len(passengerIDs) > 0 {
		driver, derr := s.userRepo.GetByID(ctx, driverID)
		if derr == nil {
			var passengers []*domain.User
			for _, id := range passengerIDs {
				if p, perr := s.userRepo.GetByID(ctx, id); perr == nil {
					passengers = append(passengers, p)
				}
			}
			s.notifier.NotifyRideCompleted(ctx, ride, driver, passengers)
		}
	}

	return nil
}

func (s *BookingService) notifyPassengers(ctx context.Context, ride *domain.Ride, bookings []*domain.Booking, completed bool) {
	driver, err := s.userRepo.GetByID(ctx, ride.DriverID)
	if err != nil {
		return
	}

	var passengers []*domain.User
	for _, b := range bookings {
		if p, err := s.userRepo.GetByID(ctx, b.PassengerID); err == nil {
			passengers = append(passengers, p)
		}
	}

	if completed {
		s.notifier.NotifyRideCompleted(ctx, ride, driver, passengers)
	} else {
		s.notifier.NotifyRideCancelled(ctx, ride, driver, passengers)
	}
}

// ListBookingsRequest filters the booking listing.
type ListBookingsRequest struct {
	UserID   string
	AsDriver bool
	Status   domain.BookingStatus
}

// ListBookings retrieves the requester's bookings, either as a passenger or
// across the rides they drive.
func (s *BookingService) ListBookings(ctx context.Context, req ListBookingsRequest) ([]*domain.Booking, error) {
	if req.AsDriver {
		return s.bookingRepo.ListByDriver(ctx, req.UserID, req.Status)
	}
	return s.bookingRepo.ListByPassenger(ctx, req.UserID, req.Status)
}
