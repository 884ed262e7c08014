package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
	"albaniarides/internal/service"
)

func newRideFixture() (*service.RideService, *MockRideRepository, *MockBookingRepository, *MockUserRepository) {
	rideRepo := NewMockRideRepository()
	bookingRepo := NewMockBookingRepository()
	userRepo := NewMockUserRepository()
	svc := service.NewRideService(rideRepo, bookingRepo, userRepo)
	return svc, rideRepo, bookingRepo, userRepo
}

func addDriver(userRepo *MockUserRepository, id string) *domain.User {
	driver := &domain.User{
		ID:       id,
		Name:     "Dritan Prifti",
		IsDriver: true,
		CarModel: "Volkswagen Golf 7",
		CarColor: "black",
		Rating:   domain.DefaultRating,
	}
	userRepo.AddUser(driver)
	return driver
}

func validRideParams() service.RideParams {
	return service.RideParams{
		OriginCity:      "TIA",
		DestinationCity: "DUR",
		DepartureTime:   time.Now().Add(48 * time.Hour),
		PickupPoint:     "Main bus terminal",
		SeatsTotal:      3,
		PricePerSeat:    700,
	}
}

func TestCreateRide_ValidInput_Succeeds(t *testing.T) {
	svc, rideRepo, _, userRepo := newRideFixture()
	addDriver(userRepo, "d1")

	ride, err := svc.CreateRide(context.Background(), "d1", validRideParams())
	if err != nil {
		t.Fatalf("create ride: %v", err)
	}

	if ride.Status != domain.RideStatusActive {
		t.Errorf("status %q, want active", ride.Status)
	}
	if ride.SeatsAvailable != ride.SeatsTotal {
		t.Errorf("availability %d should start at capacity %d", ride.SeatsAvailable, ride.SeatsTotal)
	}

	stored, err := rideRepo.GetByID(context.Background(), ride.ID)
	if err != nil {
		t.Fatalf("ride was not persisted: %v", err)
	}
	if stored.PricePerSeat != 700 {
		t.Errorf("price %d, want 700", stored.PricePerSeat)
	}
}

func TestCreateRide_NonDriverRejected(t *testing.T) {
	svc, _, _, userRepo := newRideFixture()
	userRepo.AddUser(&domain.User{ID: "p1", Name: "Elona Duka"})

	if _, err := svc.CreateRide(context.Background(), "p1", validRideParams()); !errors.Is(err, service.ErrNotDriver) {
		t.Errorf("expected ErrNotDriver, got %v", err)
	}
}

func TestCreateRide_ValidatesInput(t *testing.T) {
	svc, _, _, userRepo := newRideFixture()
	addDriver(userRepo, "d1")
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*service.RideParams)
		wantErr error
	}{
		{"unknown origin", func(p *service.RideParams) { p.OriginCity = "XXX" }, service.ErrInvalidCity},
		{"unknown destination", func(p *service.RideParams) { p.DestinationCity = "XXX" }, service.ErrInvalidCity},
		{"same cities", func(p *service.RideParams) { p.DestinationCity = "TIA" }, service.ErrSameCities},
		{"past departure", func(p *service.RideParams) { p.DepartureTime = time.Now().Add(-time.Hour) }, service.ErrDepartureInPast},
		{"zero seats", func(p *service.RideParams) { p.SeatsTotal = 0 }, service.ErrInvalidSeatsTotal},
		{"too many seats", func(p *service.RideParams) { p.SeatsTotal = 9 }, service.ErrInvalidSeatsTotal},
		{"zero price", func(p *service.RideParams) { p.PricePerSeat = 0 }, service.ErrInvalidPrice},
		{"absurd price", func(p *service.RideParams) { p.PricePerSeat = 200000 }, service.ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validRideParams()
			tc.mutate(&params)
			if _, err := svc.CreateRide(ctx, "d1", params); !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSearchRides_FiltersByTimePeriod(t *testing.T) {
	svc, rideRepo, _, userRepo := newRideFixture()
	addDriver(userRepo, "d1")

	tomorrow := time.Now().AddDate(0, 0, 1)
	morning := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 8, 0, 0, 0, time.Local)
	evening := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 20, 0, 0, 0, time.Local)

	for i, dep := range []time.Time{morning, evening} {
		rideRepo.AddRide(&domain.Ride{
			ID:              string(rune('a' + i)),
			DriverID:        "d1",
			OriginCity:      "TIA",
			DestinationCity: "DUR",
			DepartureTime:   dep,
			SeatsTotal:      3,
			SeatsAvailable:  3,
			PricePerSeat:    700,
			Status:          domain.RideStatusActive,
		})
	}

	results, err := svc.SearchRides(context.Background(), service.SearchParams{
		OriginCity:      "TIA",
		DestinationCity: "DUR",
		TimePeriod:      "morning",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 morning ride, got %d", len(results))
	}
	if results[0].Ride.DepartureTime.Hour() != 8 {
		t.Errorf("wrong ride returned, departs at %d", results[0].Ride.DepartureTime.Hour())
	}
	if results[0].Driver == nil || results[0].Driver.ID != "d1" {
		t.Error("driver profile not attached")
	}
}

func TestSearchRides_UnknownRouteRejected(t *testing.T) {
	svc, _, _, _ := newRideFixture()

	_, err := svc.SearchRides(context.Background(), service.SearchParams{OriginCity: "TIA", DestinationCity: "XXX"})
	if !errors.Is(err, service.ErrInvalidCity) {
		t.Errorf("expected ErrInvalidCity, got %v", err)
	}
}

func TestUpdateRide_OwnerOnly(t *testing.T) {
	svc, rideRepo, _, userRepo := newRideFixture()
	addDriver(userRepo, "d1")

	rideRepo.AddRide(&domain.Ride{
		ID:              "r1",
		DriverID:        "d1",
		OriginCity:      "TIA",
		DestinationCity: "DUR",
		DepartureTime:   time.Now().Add(48 * time.Hour),
		SeatsTotal:      3,
		SeatsAvailable:  3,
		PricePerSeat:    700,
		Status:          domain.RideStatusActive,
	})

	price := 800
	if _, err := svc.UpdateRide(context.Background(), "someone-else", "r1", service.RideUpdate{PricePerSeat: &price}); !errors.Is(err, service.ErrNotRideOwner) {
		t.Errorf("expected ErrNotRideOwner, got %v", err)
	}
}

func TestUpdateRide_CapacityKeepsBookedSeats(t *testing.T) {
	svc, rideRepo, bookingRepo, userRepo := newRideFixture()
	addDriver(userRepo, "d1")

	rideRepo.AddRide(&domain.Ride{
		ID:              "r1",
		DriverID:        "d1",
		OriginCity:      "TIA",
		DestinationCity: "DUR",
		DepartureTime:   time.Now().Add(48 * time.Hour),
		SeatsTotal:      4,
		SeatsAvailable:  2,
		PricePerSeat:    700,
		Status:          domain.RideStatusActive,
	})
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 2, Status: domain.BookingStatusConfirmed,
	})

	// Shrinking below the 2 booked seats is refused.
	one := 1
	if _, err := svc.UpdateRide(context.Background(), "d1", "r1", service.RideUpdate{SeatsTotal: &one}); !errors.Is(err, service.ErrSeatsBelowBooked) {
		t.Errorf("expected ErrSeatsBelowBooked, got %v", err)
	}

	// Shrinking to exactly the booked count leaves zero available.
	two := 2
	ride, err := svc.UpdateRide(context.Background(), "d1", "r1", service.RideUpdate{SeatsTotal: &two})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if ride.SeatsTotal != 2 || ride.SeatsAvailable != 0 {
		t.Errorf("got total=%d available=%d, want 2/0", ride.SeatsTotal, ride.SeatsAvailable)
	}

	// Growing frees the difference.
	four := 4
	ride, err = svc.UpdateRide(context.Background(), "d1", "r1", service.RideUpdate{SeatsTotal: &four})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if ride.SeatsAvailable != 2 {
		t.Errorf("available %d, want 2", ride.SeatsAvailable)
	}
}

func TestUpdateRide_CancelledRideNotEditable(t *testing.T) {
	svc, rideRepo, _, userRepo := newRideFixture()
	addDriver(userRepo, "d1")

	rideRepo.AddRide(&domain.Ride{
		ID:              "r1",
		DriverID:        "d1",
		OriginCity:      "TIA",
		DestinationCity: "DUR",
		DepartureTime:   time.Now().Add(48 * time.Hour),
		SeatsTotal:      3,
		SeatsAvailable:  3,
		PricePerSeat:    700,
		Status:          domain.RideStatusCancelled,
	})

	price := 800
	if _, err := svc.UpdateRide(context.Background(), "d1", "r1", service.RideUpdate{PricePerSeat: &price}); !errors.Is(err, service.ErrRideNotActive) {
		t.Errorf("expected ErrRideNotActive, got %v", err)
	}
}

func TestGetRide_UnknownIsNotFound(t *testing.T) {
	svc, _, _, _ := newRideFixture()

	if _, err := svc.GetRide(context.Background(), "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
