package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"albaniarides/internal/cities"
	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
	"albaniarides/internal/validate"
)

const (
	minSeatsTotal = 1
	maxSeatsTotal = 8
)

// RideParams holds the fields for publishing a new ride.
type RideParams struct {
	OriginCity      string
	DestinationCity string
	DepartureTime   time.Time
	PickupPoint     string
	Stops           string
	SeatsTotal      int
	PricePerSeat    int
	LuggageSpace    bool
	SmokingAllowed  bool
}

// RideUpdate carries the mutable ride fields. Nil pointers leave the
// current value untouched.
type RideUpdate struct {
	DepartureTime  *time.Time
	PickupPoint    *string
	Stops          *string
	SeatsTotal     *int
	PricePerSeat   *int
	LuggageSpace   *bool
	SmokingAllowed *bool
}

// SearchParams holds the ride search filters.
type SearchParams struct {
	OriginCity      string
	DestinationCity string
	Date            time.Time // zero means any date
	TimePeriod      string    // "", "morning", "afternoon" or "evening"
	SortByPrice     bool
	Offset          int
	Limit           int
}

// RideWithDriver pairs a ride with its driver's public profile.
type RideWithDriver struct {
	Ride   *domain.Ride
	Driver *domain.User
}

// RideService manages ride publishing, search and edits. Status changes
// that touch bookings (cancel, complete) live on BookingService, which owns
// the transactional seat ledger.
type RideService struct {
	rideRepo    repository.RideRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

// NewRideService creates a new RideService.
func NewRideService(
	rideRepo repository.RideRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
) *RideService {
	return &RideService{
		rideRepo:    rideRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

// CreateRide publishes a new ride for a driver account.
func (s *RideService) CreateRide(ctx context.Context, driverID string, params RideParams) (*domain.Ride, error) {
	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !driver.IsDriver {
		return nil, ErrNotDriver
	}

	if err := validateRoute(params.OriginCity, params.DestinationCity); err != nil {
		return nil, err
	}
	if !params.DepartureTime.After(time.Now()) {
		return nil, ErrDepartureInPast
	}
	if params.SeatsTotal < minSeatsTotal || params.SeatsTotal > maxSeatsTotal {
		return nil, ErrInvalidSeatsTotal
	}
	if !validate.ValidPrice(params.PricePerSeat) {
		return nil, ErrInvalidPrice
	}

	ride := &domain.Ride{
		ID:              uuid.New().String(),
		DriverID:        driverID,
		OriginCity:      params.OriginCity,
		DestinationCity: params.DestinationCity,
		DepartureTime:   params.DepartureTime,
		PickupPoint:     strings.TrimSpace(params.PickupPoint),
		Stops:           strings.TrimSpace(params.Stops),
		SeatsTotal:      params.SeatsTotal,
		SeatsAvailable:  params.SeatsTotal,
		PricePerSeat:    params.PricePerSeat,
		LuggageSpace:    params.LuggageSpace,
		SmokingAllowed:  params.SmokingAllowed,
		Status:          domain.RideStatusActive,
		CreatedAt:       time.Now(),
	}
	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("create ride: %w", err)
	}
	ridesPublished.Inc()
	return ride, nil
}

// GetRide returns a ride together with its driver.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*RideWithDriver, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	driver, err := s.userRepo.GetByID(ctx, ride.DriverID)
	if err != nil {
		return nil, err
	}
	return &RideWithDriver{Ride: ride, Driver: driver}, nil
}

// SearchRides returns upcoming bookable rides matching the filters, each
// with its driver. The time-period filter buckets departures into
// morning/afternoon/evening.
func (s *RideService) SearchRides(ctx context.Context, params SearchParams) ([]*RideWithDriver, error) {
	if err := validateRoute(params.OriginCity, params.DestinationCity); err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.Search(ctx, repository.RideSearch{
		OriginCity:      params.OriginCity,
		DestinationCity: params.DestinationCity,
		Date:            params.Date,
		SortByPrice:     params.SortByPrice,
		Offset:          params.Offset,
		Limit:           params.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search rides: %w", err)
	}

	results := make([]*RideWithDriver, 0, len(rides))
	for _, ride := range rides {
		if params.TimePeriod != "" && validate.TimePeriodOf(ride.DepartureTime) != params.TimePeriod {
			continue
		}
		driver, err := s.userRepo.GetByID(ctx, ride.DriverID)
		if err != nil {
			return nil, err
		}
		results = append(results, &RideWithDriver{Ride: ride, Driver: driver})
	}
	return results, nil
}

// UpdateRide applies a partial edit to a ride the caller owns. Capacity
// changes keep already-booked seats: availability is recomputed as the new
// total minus confirmed seats, and reductions below the booked count are
// rejected.
func (s *RideService) UpdateRide(ctx context.Context, driverID, rideID string, update RideUpdate) (*domain.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != driverID {
		return nil, ErrNotRideOwner
	}
	if ride.Status != domain.RideStatusActive {
		return nil, ErrRideNotActive
	}

	if update.DepartureTime != nil {
		if !update.DepartureTime.After(time.Now()) {
			return nil, ErrDepartureInPast
		}
		ride.DepartureTime = *update.DepartureTime
	}
	if update.PickupPoint != nil {
		ride.PickupPoint = strings.TrimSpace(*update.PickupPoint)
	}
	if update.Stops != nil {
		ride.Stops = strings.TrimSpace(*update.Stops)
	}
	if update.PricePerSeat != nil {
		if !validate.ValidPrice(*update.PricePerSeat) {
			return nil, ErrInvalidPrice
		}
		ride.PricePerSeat = *update.PricePerSeat
	}
	if update.LuggageSpace != nil {
		ride.LuggageSpace = *update.LuggageSpace
	}
	if update.SmokingAllowed != nil {
		ride.SmokingAllowed = *update.SmokingAllowed
	}
	if update.SeatsTotal != nil {
		if *update.SeatsTotal < minSeatsTotal || *update.SeatsTotal > maxSeatsTotal {
			return nil, ErrInvalidSeatsTotal
		}
		booked, err := s.bookingRepo.SumConfirmedSeats(ctx, rideID)
		if err != nil {
			return nil, fmt.Errorf("sum booked seats: %w", err)
		}
		if *update.SeatsTotal < booked {
			return nil, ErrSeatsBelowBooked
		}
		ride.SeatsTotal = *update.SeatsTotal
		ride.SeatsAvailable = *update.SeatsTotal - booked
	}

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, fmt.Errorf("update ride: %w", err)
	}
	return ride, nil
}

// ListDriverRides returns all rides published by a driver, newest first.
func (s *RideService) ListDriverRides(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	return s.rideRepo.ListByDriver(ctx, driverID)
}

func validateRoute(origin, destination string) error {
	if !cities.IsValidCode(origin) || !cities.IsValidCode(destination) {
		return ErrInvalidCity
	}
	if origin == destination {
		return ErrSameCities
	}
	return nil
}
