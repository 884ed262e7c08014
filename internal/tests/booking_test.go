package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
	"albaniarides/internal/service"
)

func newBookingFixture() (*service.BookingService, *MockRideRepository, *MockBookingRepository, *MockUserRepository) {
	rideRepo := NewMockRideRepository()
	bookingRepo := NewMockBookingRepository()
	userRepo := NewMockUserRepository()
	runner := NewMockTxRunner(userRepo, rideRepo, bookingRepo, NewMockRatingRepository(), NewMockMessageRepository())
	svc := service.NewBookingService(runner, bookingRepo, rideRepo, userRepo, nil)
	return svc, rideRepo, bookingRepo, userRepo
}

func activeRide(id, driverID string, seatsAvailable int) *domain.Ride {
	return &domain.Ride{
		ID:              id,
		DriverID:        driverID,
		OriginCity:      "TIA",
		DestinationCity: "DUR",
		DepartureTime:   time.Now().Add(48 * time.Hour),
		SeatsTotal:      4,
		SeatsAvailable:  seatsAvailable,
		PricePerSeat:    700,
		Status:          domain.RideStatusActive,
	}
}

func TestCreateBooking_SeatCountOutOfRange(t *testing.T) {
	svc, _, _, _ := newBookingFixture()
	ctx := context.Background()

	for _, seats := range []int{0, -1, 5} {
		_, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			PassengerID: "p1", RideID: "r1", SeatsCount: seats,
		})
		if !errors.Is(err, service.ErrInvalidSeatCount) {
			t.Errorf("seats %d: expected ErrInvalidSeatCount, got %v", seats, err)
		}
	}
}

func TestCreateBooking_UnknownRide(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		PassengerID: "p1", RideID: "nope", SeatsCount: 1,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBooking_OwnRideForbidden(t *testing.T) {
	svc, rideRepo, _, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 3))

	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		PassengerID: "d1", RideID: "r1", SeatsCount: 1,
	})
	if !errors.Is(err, service.ErrOwnRide) {
		t.Errorf("expected ErrOwnRide, got %v", err)
	}
}

func TestCreateBooking_InactiveRideRejected(t *testing.T) {
	svc, rideRepo, _, _ := newBookingFixture()
	ride := activeRide("r1", "d1", 3)
	ride.Status = domain.RideStatusCancelled
	rideRepo.AddRide(ride)

	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		PassengerID: "p1", RideID: "r1", SeatsCount: 1,
	})
	if !errors.Is(err, service.ErrRideNotActive) {
		t.Errorf("expected ErrRideNotActive, got %v", err)
	}
}

func TestCreateBooking_SecondConfirmedBookingConflicts(t *testing.T) {
	svc, rideRepo, bookingRepo, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 3))
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 1, Status: domain.BookingStatusConfirmed,
	})

	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		PassengerID: "p1", RideID: "r1", SeatsCount: 1,
	})
	if !errors.Is(err, service.ErrDuplicateBooking) {
		t.Errorf("expected ErrDuplicateBooking, got %v", err)
	}
}

func TestCreateBooking_InsufficientSeats(t *testing.T) {
	svc, rideRepo, _, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 1))

	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		PassengerID: "p1", RideID: "r1", SeatsCount: 2,
	})
	if !errors.Is(err, service.ErrInsufficientSeats) {
		t.Errorf("expected ErrInsufficientSeats, got %v", err)
	}
}

func TestCreateBooking_ReservesSeatsAndStoresBooking(t *testing.T) {
	svc, rideRepo, bookingRepo, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 4))
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
		PassengerID: "p1", RideID: "r1", SeatsCount: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.Status != domain.BookingStatusConfirmed {
		t.Errorf("status %s, want confirmed", booking.Status)
	}
	if booking.TotalPrice != 2*700 {
		t.Errorf("total price %d, want 1400", booking.TotalPrice)
	}

	ride, _ := rideRepo.GetByID(ctx, "r1")
	if ride.SeatsAvailable != 2 {
		t.Errorf("availability %d, want 2", ride.SeatsAvailable)
	}

	// Seats taken must match the confirmed bookings exactly.
	booked, _ := bookingRepo.SumConfirmedSeats(ctx, "r1")
	if ride.SeatsTotal-ride.SeatsAvailable != booked {
		t.Errorf("ledger mismatch: %d seats taken, %d booked", ride.SeatsTotal-ride.SeatsAvailable, booked)
	}
}

func TestCreateBooking_FirstMessageReachesDriver(t *testing.T) {
	rideRepo := NewMockRideRepository()
	bookingRepo := NewMockBookingRepository()
	userRepo := NewMockUserRepository()
	messageRepo := NewMockMessageRepository()
	runner := NewMockTxRunner(userRepo, rideRepo, bookingRepo, NewMockRatingRepository(), messageRepo)
	svc := service.NewBookingService(runner, bookingRepo, rideRepo, userRepo, nil)

	rideRepo.AddRide(activeRide("r1", "d1", 4))
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
		PassengerID: "p1", RideID: "r1", SeatsCount: 1,
		Message: "Ku eshte pika e takimit?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	messages, _ := messageRepo.ListByBooking(ctx, booking.ID)
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].SenderID != "p1" || messages[0].ReceiverID != "d1" {
		t.Errorf("message routed %s -> %s, want p1 -> d1", messages[0].SenderID, messages[0].ReceiverID)
	}
}

func TestCancelBooking_OnlyPartiesMayCancel(t *testing.T) {
	svc, rideRepo, bookingRepo, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 2))
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 2, Status: domain.BookingStatusConfirmed,
	})

	if err := svc.CancelBooking(context.Background(), "stranger", "b1"); !errors.Is(err, service.ErrNotBookingParty) {
		t.Errorf("expected ErrNotBookingParty, got %v", err)
	}
}

func TestCancelBooking_AlreadyCancelledRejected(t *testing.T) {
	svc, rideRepo, bookingRepo, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 4))
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 2, Status: domain.BookingStatusCancelled,
	})

	if err := svc.CancelBooking(context.Background(), "p1", "b1"); !errors.Is(err, service.ErrBookingNotActive) {
		t.Errorf("expected ErrBookingNotActive, got %v", err)
	}
}

func TestCancelBooking_WindowClosesTwoHoursBeforeDeparture(t *testing.T) {
	svc, rideRepo, bookingRepo, _ := newBookingFixture()
	ride := activeRide("r1", "d1", 2)
	ride.DepartureTime = time.Now().Add(90 * time.Minute)
	rideRepo.AddRide(ride)
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 2, Status: domain.BookingStatusConfirmed,
	})

	if err := svc.CancelBooking(context.Background(), "p1", "b1"); !errors.Is(err, service.ErrCancelWindowClosed) {
		t.Errorf("expected ErrCancelWindowClosed, got %v", err)
	}
	// The driver is bound by the same cutoff.
	if err := svc.CancelBooking(context.Background(), "d1", "b1"); !errors.Is(err, service.ErrCancelWindowClosed) {
		t.Errorf("driver: expected ErrCancelWindowClosed, got %v", err)
	}
}

func TestCancelBooking_RestoresSeats(t *testing.T) {
	svc, rideRepo, _, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 4))
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
		PassengerID: "p1", RideID: "r1", SeatsCount: 3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.CancelBooking(ctx, "p1", booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	ride, _ := rideRepo.GetByID(ctx, "r1")
	if ride.SeatsAvailable != 4 {
		t.Errorf("availability %d, want 4 after cancellation", ride.SeatsAvailable)
	}
}

func TestCancelRide_OwnerOnly(t *testing.T) {
	svc, rideRepo, _, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 3))

	if err := svc.CancelRide(context.Background(), "p1", "r1"); !errors.Is(err, service.ErrNotRideOwner) {
		t.Errorf("expected ErrNotRideOwner, got %v", err)
	}
}

func TestCancelRide_CascadesToConfirmedBookings(t *testing.T) {
	svc, rideRepo, bookingRepo, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 1))
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 2, Status: domain.BookingStatusConfirmed,
	})
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b2", RideID: "r1", PassengerID: "p2",
		SeatsCount: 1, Status: domain.BookingStatusConfirmed,
	})
	ctx := context.Background()

	if err := svc.CancelRide(ctx, "d1", "r1"); err != nil {
		t.Fatalf("cancel ride: %v", err)
	}

	ride, _ := rideRepo.GetByID(ctx, "r1")
	if ride.Status != domain.RideStatusCancelled {
		t.Errorf("ride status %s, want cancelled", ride.Status)
	}
	for _, id := range []string{"b1", "b2"} {
		b, _ := bookingRepo.GetByID(ctx, id)
		if b.Status != domain.BookingStatusCancelled {
			t.Errorf("booking %s status %s, want cancelled", id, b.Status)
		}
	}
}

func TestCompleteRide_OwnerOnly(t *testing.T) {
	svc, rideRepo, _, _ := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 3))

	if err := svc.CompleteRide(context.Background(), "p1", "r1"); !errors.Is(err, service.ErrNotRideOwner) {
		t.Errorf("expected ErrNotRideOwner, got %v", err)
	}
}

func TestCompleteRide_BumpsLifetimeCounters(t *testing.T) {
	svc, rideRepo, bookingRepo, userRepo := newBookingFixture()
	rideRepo.AddRide(activeRide("r1", "d1", 2))
	userRepo.AddUser(&domain.User{ID: "d1", Name: "Driver", IsDriver: true})
	userRepo.AddUser(&domain.User{ID: "p1", Name: "Passenger"})
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 2, Status: domain.BookingStatusConfirmed,
	})
	ctx := context.Background()

	if err := svc.CompleteRide(ctx, "d1", "r1"); err != nil {
		t.Fatalf("complete ride: %v", err)
	}

	ride, _ := rideRepo.GetByID(ctx, "r1")
	if ride.Status != domain.RideStatusCompleted {
		t.Errorf("ride status %s, want completed", ride.Status)
	}
	b, _ := bookingRepo.GetByID(ctx, "b1")
	if b.Status != domain.BookingStatusCompleted {
		t.Errorf("booking status %s, want completed", b.Status)
	}
	for _, id := range []string{"d1", "p1"} {
		u, _ := userRepo.GetByID(ctx, id)
		if u.TotalRides != 1 {
			t.Errorf("user %s total rides %d, want 1", id, u.TotalRides)
		}
	}
}

// ──────────────────────────────────────────────
// SEAT LEDGER
// ──────────────────────────────────────────────

func TestReserveSeats_ThreeSeatScramble(t *testing.T) {
	repo := NewMockRideRepository()
	repo.AddRide(activeRide("r1", "d1", 3))
	ctx := context.Background()

	// A takes 2 of 3.
	if ok, _ := repo.ReserveSeats(ctx, "r1", 2); !ok {
		t.Fatal("A's reservation should succeed")
	}
	// B wants 2 but only 1 remains.
	if ok, _ := repo.ReserveSeats(ctx, "r1", 2); ok {
		t.Fatal("B's reservation should fail with 1 seat left")
	}
	// C takes the last one.
	if ok, _ := repo.ReserveSeats(ctx, "r1", 1); !ok {
		t.Fatal("C's reservation should succeed")
	}

	ride, _ := repo.GetByID(ctx, "r1")
	if ride.SeatsAvailable != 0 {
		t.Errorf("availability %d, want 0", ride.SeatsAvailable)
	}
}

func TestReserveSeats_NeverOversubscribesUnderConcurrency(t *testing.T) {
	repo := NewMockRideRepository()
	repo.AddRide(activeRide("r1", "d1", 4))
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]bool, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, _ := repo.ReserveSeats(ctx, "r1", 1)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, ok := range results {
		if ok {
			granted++
		}
	}
	if granted != 4 {
		t.Errorf("granted %d seats on a 4-seat ride", granted)
	}

	ride, _ := repo.GetByID(ctx, "r1")
	if ride.SeatsAvailable != 0 {
		t.Errorf("availability %d, want 0", ride.SeatsAvailable)
	}
}

func TestReleaseSeats_CappedAtCapacity(t *testing.T) {
	repo := NewMockRideRepository()
	repo.AddRide(activeRide("r1", "d1", 3))
	ctx := context.Background()

	// Nothing was reserved; releasing 2 would exceed 4 total.
	if ok, _ := repo.ReleaseSeats(ctx, "r1", 2); ok {
		t.Fatal("release past capacity should be refused")
	}

	if ok, _ := repo.ReserveSeats(ctx, "r1", 2); !ok {
		t.Fatal("reserve failed")
	}
	if ok, _ := repo.ReleaseSeats(ctx, "r1", 2); !ok {
		t.Fatal("matching release should succeed")
	}

	ride, _ := repo.GetByID(ctx, "r1")
	if ride.SeatsAvailable != 3 {
		t.Errorf("availability %d, want 3", ride.SeatsAvailable)
	}
}

func TestReserveSeats_InactiveRideRefused(t *testing.T) {
	repo := NewMockRideRepository()
	ride := activeRide("r1", "d1", 3)
	ride.Status = domain.RideStatusCompleted
	repo.AddRide(ride)

	if ok, _ := repo.ReserveSeats(context.Background(), "r1", 1); ok {
		t.Fatal("reservation on a completed ride should be refused")
	}
}
