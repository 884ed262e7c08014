package repository

import (
	"context"
	"time"

	"albaniarides/internal/domain"
)

// RideSearch holds the search filters for the ride listing.
type RideSearch struct {
	OriginCity      string
	DestinationCity string
	Date            time.Time // zero means any date
	SortByPrice     bool
	Offset          int
	Limit           int
}

// RideRepository defines the persistence operations for rides.
//
// Seat arithmetic is exposed only through the conditional Reserve/Release
// operations so that availability checks and updates happen in a single
// statement, never as separate read-then-write steps.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// Search retrieves upcoming active rides with seats, matching the filters.
	Search(ctx context.Context, params RideSearch) ([]*domain.Ride, error)

	// ListByDriver retrieves all rides published by a driver, newest first.
	ListByDriver(ctx context.Context, driverID string) ([]*domain.Ride, error)

	// Update persists the mutable fields of a ride (departure, pickup point,
	// stops, capacity, price, flags).
	Update(ctx context.Context, ride *domain.Ride) error

	// ReserveSeats atomically decrements availability by seats, only while
	// the ride is active and enough seats remain. Returns false when the
	// condition did not hold.
	ReserveSeats(ctx context.Context, rideID string, seats int) (bool, error)

	// ReleaseSeats atomically returns seats to availability, capped at the
	// total capacity. Returns false when the cap would be exceeded.
	ReleaseSeats(ctx context.Context, rideID string, seats int) (bool, error)

	// TransitionStatus flips the ride's status from one state to another,
	// stamping cancelledAt when the target is cancelled. Returns false when
	// the ride was not in the expected state.
	TransitionStatus(ctx context.Context, rideID string, from, to domain.RideStatus, at time.Time) (bool, error)
}
