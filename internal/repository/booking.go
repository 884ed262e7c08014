package repository

import (
	"context"
	"time"

	"albaniarides/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking. Returns ErrDuplicate when the passenger
	// already holds a confirmed booking on the ride.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetConfirmed retrieves the passenger's confirmed booking on a ride,
	// or ErrNotFound.
	GetConfirmed(ctx context.Context, rideID, passengerID string) (*domain.Booking, error)

	// HasAnyByRideAndPassenger reports whether the passenger holds a booking
	// of any status on the ride (participation check for ratings).
	HasAnyByRideAndPassenger(ctx context.Context, rideID, passengerID string) (bool, error)

	// ListByPassenger retrieves the passenger's bookings, newest first.
	// status filters when non-empty.
	ListByPassenger(ctx context.Context, passengerID string, status domain.BookingStatus) ([]*domain.Booking, error)

	// ListByDriver retrieves bookings on rides owned by the driver, newest
	// first. status filters when non-empty.
	ListByDriver(ctx context.Context, driverID string, status domain.BookingStatus) ([]*domain.Booking, error)

	// CancelConfirmed flips a confirmed booking to cancelled with the given
	// timestamp. Returns false when the booking was not confirmed.
	CancelConfirmed(ctx context.Context, bookingID string, at time.Time) (bool, error)

	// CancelAllConfirmedByRide cancels every confirmed booking on the ride,
	// returning the cancelled bookings (for passenger notification).
	CancelAllConfirmedByRide(ctx context.Context, rideID string, at time.Time) ([]*domain.Booking, error)

	// CompleteAllConfirmedByRide flips every confirmed booking on the ride to
	// completed, returning the affected passenger IDs.
	CompleteAllConfirmedByRide(ctx context.Context, rideID string) ([]string, error)

	// SumConfirmedSeats returns the total seats held by confirmed bookings
	// on the ride.
	SumConfirmedSeats(ctx context.Context, rideID string) (int, error)
}
