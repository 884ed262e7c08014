package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"albaniarides/internal/domain"
	"albaniarides/internal/service"
)

func newRatingFixture() (*service.RatingService, *MockRatingRepository, *MockRideRepository, *MockBookingRepository) {
	ratingRepo := NewMockRatingRepository()
	rideRepo := NewMockRideRepository()
	bookingRepo := NewMockBookingRepository()
	runner := NewMockTxRunner(NewMockUserRepository(), rideRepo, bookingRepo, ratingRepo, NewMockMessageRepository())
	svc := service.NewRatingService(runner, ratingRepo, rideRepo, bookingRepo)
	return svc, ratingRepo, rideRepo, bookingRepo
}

func completedRide(id, driverID string) *domain.Ride {
	return &domain.Ride{
		ID:              id,
		DriverID:        driverID,
		OriginCity:      "TIA",
		DestinationCity: "DUR",
		DepartureTime:   time.Now().Add(-24 * time.Hour),
		SeatsTotal:      3,
		SeatsAvailable:  1,
		PricePerSeat:    700,
		Status:          domain.RideStatusCompleted,
	}
}

func TestSubmitRating_ScoreOutOfRange(t *testing.T) {
	svc, _, _, _ := newRatingFixture()

	for _, score := range []int{0, -1, 6} {
		_, err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
			RaterID: "p1", RideID: "r1", RatedUserID: "d1", Score: score,
		})
		if !errors.Is(err, service.ErrInvalidScore) {
			t.Errorf("score %d: expected ErrInvalidScore, got %v", score, err)
		}
	}
}

func TestSubmitRating_CommentTooLong(t *testing.T) {
	svc, _, _, _ := newRatingFixture()

	_, err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RaterID: "p1", RideID: "r1", RatedUserID: "d1", Score: 5,
		Comment: strings.Repeat("x", 501),
	})
	if !errors.Is(err, service.ErrCommentTooLong) {
		t.Errorf("expected ErrCommentTooLong, got %v", err)
	}
}

func TestSubmitRating_SelfRatingRejected(t *testing.T) {
	svc, _, _, _ := newRatingFixture()

	_, err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RaterID: "p1", RideID: "r1", RatedUserID: "p1", Score: 5,
	})
	if !errors.Is(err, service.ErrSelfRating) {
		t.Errorf("expected ErrSelfRating, got %v", err)
	}
}

func TestSubmitRating_RequiresParticipation(t *testing.T) {
	svc, _, rideRepo, _ := newRatingFixture()
	rideRepo.AddRide(completedRide("r1", "d1"))

	_, err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RaterID: "stranger", RideID: "r1", RatedUserID: "d1", Score: 5,
	})
	if !errors.Is(err, service.ErrNotRideParticipant) {
		t.Errorf("expected ErrNotRideParticipant, got %v", err)
	}
}

func TestSubmitRating_UpcomingRideRejected(t *testing.T) {
	svc, _, rideRepo, bookingRepo := newRatingFixture()
	ride := completedRide("r1", "d1")
	ride.Status = domain.RideStatusActive
	ride.DepartureTime = time.Now().Add(24 * time.Hour)
	rideRepo.AddRide(ride)
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 1, Status: domain.BookingStatusConfirmed,
	})

	_, err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RaterID: "p1", RideID: "r1", RatedUserID: "d1", Score: 5,
	})
	if !errors.Is(err, service.ErrRideNotCompleted) {
		t.Errorf("expected ErrRideNotCompleted, got %v", err)
	}
}

func TestSubmitRating_DuplicateRejected(t *testing.T) {
	svc, ratingRepo, rideRepo, bookingRepo := newRatingFixture()
	rideRepo.AddRide(completedRide("r1", "d1"))
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 1, Status: domain.BookingStatusCompleted,
	})
	ratingRepo.AddRating(&domain.Rating{
		ID: "rt1", RideID: "r1", RaterID: "p1", RatedUserID: "d1", Score: 4,
	})

	_, err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RaterID: "p1", RideID: "r1", RatedUserID: "d1", Score: 5,
	})
	if !errors.Is(err, service.ErrDuplicateRating) {
		t.Errorf("expected ErrDuplicateRating, got %v", err)
	}
}

func TestSubmitRating_FirstRatingStaysInvisible(t *testing.T) {
	svc, ratingRepo, rideRepo, bookingRepo := newRatingFixture()
	rideRepo.AddRide(completedRide("r1", "d1"))
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 1, Status: domain.BookingStatusCompleted,
	})

	rating, err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RaterID: "p1", RideID: "r1", RatedUserID: "d1", Score: 5, Comment: "Shofer shume i mire",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rating.IsVisible {
		t.Error("a rating without a counterpart must stay invisible")
	}

	stored, err := ratingRepo.GetByTriple(context.Background(), "r1", "p1", "d1")
	if err != nil {
		t.Fatalf("stored rating missing: %v", err)
	}
	if stored.IsVisible {
		t.Error("stored rating should be invisible")
	}
	if len(ratingRepo.RecomputedUsers) != 0 {
		t.Errorf("no averages should be recomputed yet, got %v", ratingRepo.RecomputedUsers)
	}
}

func TestSubmitRating_CounterpartFlipsBothVisible(t *testing.T) {
	svc, ratingRepo, rideRepo, bookingRepo := newRatingFixture()
	rideRepo.AddRide(completedRide("r1", "d1"))
	bookingRepo.AddBooking(&domain.Booking{
		ID: "b1", RideID: "r1", PassengerID: "p1",
		SeatsCount: 1, Status: domain.BookingStatusCompleted,
	})
	ctx := context.Background()

	// The passenger rates first; the score stays hidden.
	if _, err := svc.SubmitRating(ctx, service.SubmitRatingRequest{
		RaterID: "p1", RideID: "r1", RatedUserID: "d1", Score: 5,
	}); err != nil {
		t.Fatalf("passenger's rating: %v", err)
	}

	// The driver rates back; both sides flip visible together.
	rating, err := svc.SubmitRating(ctx, service.SubmitRatingRequest{
		RaterID: "d1", RideID: "r1", RatedUserID: "p1", Score: 4,
	})
	if err != nil {
		t.Fatalf("driver's rating: %v", err)
	}
	if !rating.IsVisible {
		t.Error("the counterpart rating should come back visible")
	}

	byPassenger, _ := ratingRepo.GetByTriple(ctx, "r1", "p1", "d1")
	byDriver, _ := ratingRepo.GetByTriple(ctx, "r1", "d1", "p1")
	if !byPassenger.IsVisible || !byDriver.IsVisible {
		t.Errorf("visibility after flip: passenger's=%v driver's=%v, want both true",
			byPassenger.IsVisible, byDriver.IsVisible)
	}

	// Both users' averages are recomputed in the same update.
	recomputed := map[string]bool{}
	for _, id := range ratingRepo.RecomputedUsers {
		recomputed[id] = true
	}
	if !recomputed["p1"] || !recomputed["d1"] {
		t.Errorf("recomputed %v, want both p1 and d1", ratingRepo.RecomputedUsers)
	}
}

func TestListRatings_VisibleOnlyNewestFirst(t *testing.T) {
	svc, ratingRepo, _, _ := newRatingFixture()

	now := time.Now()
	ratingRepo.AddRating(&domain.Rating{
		ID: "old", RideID: "r1", RaterID: "a", RatedUserID: "d1",
		Score: 4, IsVisible: true, CreatedAt: now.Add(-2 * time.Hour),
	})
	ratingRepo.AddRating(&domain.Rating{
		ID: "new", RideID: "r2", RaterID: "b", RatedUserID: "d1",
		Score: 5, IsVisible: true, CreatedAt: now,
	})
	ratingRepo.AddRating(&domain.Rating{
		ID: "hidden", RideID: "r3", RaterID: "c", RatedUserID: "d1",
		Score: 1, IsVisible: false, CreatedAt: now,
	})

	ratings, err := svc.ListRatings(context.Background(), "d1", 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("expected 2 visible ratings, got %d", len(ratings))
	}
	if ratings[0].ID != "new" || ratings[1].ID != "old" {
		t.Errorf("wrong order: %s, %s", ratings[0].ID, ratings[1].ID)
	}
}

func TestSweepExpired_FlipsOnlyStaleInvisibleRatings(t *testing.T) {
	repo := NewMockRatingRepository()
	now := time.Now()

	repo.AddRating(&domain.Rating{
		ID: "stale", RideID: "r1", RaterID: "a", RatedUserID: "d1",
		Score: 4, IsVisible: false, CreatedAt: now.Add(-8 * 24 * time.Hour),
	})
	repo.AddRating(&domain.Rating{
		ID: "fresh", RideID: "r2", RaterID: "b", RatedUserID: "d2",
		Score: 5, IsVisible: false, CreatedAt: now.Add(-time.Hour),
	})

	affected, err := repo.SweepExpired(context.Background(), now.Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(affected) != 1 || affected[0] != "d1" {
		t.Fatalf("affected %v, want [d1]", affected)
	}

	stale, _ := repo.GetByTriple(context.Background(), "r1", "a", "d1")
	if !stale.IsVisible {
		t.Error("stale rating should be visible after the sweep")
	}
	fresh, _ := repo.GetByTriple(context.Background(), "r2", "b", "d2")
	if fresh.IsVisible {
		t.Error("fresh rating should stay invisible")
	}
}

func TestRatingSweeper_FlipsStaleAndRecomputesAverages(t *testing.T) {
	ratingRepo := NewMockRatingRepository()
	runner := NewMockTxRunner(NewMockUserRepository(), NewMockRideRepository(), NewMockBookingRepository(), ratingRepo, NewMockMessageRepository())
	sweeper := service.NewRatingSweeper(runner, time.Hour, 7*24*time.Hour, zap.NewNop())
	ctx := context.Background()

	ratingRepo.AddRating(&domain.Rating{
		ID: "stale", RideID: "r1", RaterID: "p1", RatedUserID: "d1",
		Score: 4, IsVisible: false, CreatedAt: time.Now().Add(-8 * 24 * time.Hour),
	})
	ratingRepo.AddRating(&domain.Rating{
		ID: "fresh", RideID: "r2", RaterID: "p2", RatedUserID: "d2",
		Score: 5, IsVisible: false, CreatedAt: time.Now().Add(-time.Hour),
	})

	if err := sweeper.SweepOnce(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	stale, _ := ratingRepo.GetByTriple(ctx, "r1", "p1", "d1")
	if !stale.IsVisible {
		t.Error("stale rating should be visible after the sweep")
	}
	if len(ratingRepo.RecomputedUsers) != 1 || ratingRepo.RecomputedUsers[0] != "d1" {
		t.Errorf("recomputed %v, want [d1]", ratingRepo.RecomputedUsers)
	}
}
