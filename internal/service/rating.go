package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
)

// maxCommentLength caps a rating comment.
const maxCommentLength = 500

// RatingService handles mutual ratings between drivers and passengers.
//
// A new rating is stored invisible. When its counterpart (same ride, roles
// swapped) exists, both flip visible and the affected users' averages are
// recomputed, all in one transaction. This hides each side's score until
// both are in, preventing retaliatory ratings.
type RatingService struct {
	tx          repository.TxRunner
	ratingRepo  repository.RatingRepository
	rideRepo    repository.RideRepository
	bookingRepo repository.BookingRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(
	tx repository.TxRunner,
	ratingRepo repository.RatingRepository,
	rideRepo repository.RideRepository,
	bookingRepo repository.BookingRepository,
) *RatingService {
	return &RatingService{
		tx:          tx,
		ratingRepo:  ratingRepo,
		rideRepo:    rideRepo,
		bookingRepo: bookingRepo,
	}
}

// SubmitRatingRequest contains the parameters for submitting a rating.
type SubmitRatingRequest struct {
	RaterID     string
	RideID      string
	RatedUserID string
	Score       int
	Comment     string
}

// SubmitRating records a rating from one ride participant about another.
func (s *RatingService) SubmitRating(ctx context.Context, req SubmitRatingRequest) (*domain.Rating, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, ErrInvalidScore
	}
	if len(req.Comment) > maxCommentLength {
		return nil, ErrCommentTooLong
	}
	if req.RaterID == req.RatedUserID {
		return nil, ErrSelfRating
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	// The rater must have been on the ride, as the driver or with a booking.
	if req.RaterID != ride.DriverID {
		participated, err := s.bookingRepo.HasAnyByRideAndPassenger(ctx, req.RideID, req.RaterID)
		if err != nil {
			return nil, err
		}
		if !participated {
			return nil, ErrNotRideParticipant
		}
	}

	if ride.Status != domain.RideStatusCompleted && ride.DepartureTime.After(time.Now()) {
		return nil, ErrRideNotCompleted
	}

	// Friendly pre-check; the unique index remains the source of truth.
	if _, err := s.ratingRepo.GetByTriple(ctx, req.RideID, req.RaterID, req.RatedUserID); err == nil {
		return nil, ErrDuplicateRating
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	rating := &domain.Rating{
		ID:          uuid.New().String(),
		RideID:      req.RideID,
		RaterID:     req.RaterID,
		RatedUserID: req.RatedUserID,
		Score:       req.Score,
		Comment:     req.Comment,
		IsVisible:   false,
		CreatedAt:   time.Now(),
	}

	err = s.tx.InTx(ctx, func(r repository.TxRepos) error {
		if err := r.Ratings.Create(ctx, rating); err != nil {
			if err == repository.ErrDuplicate {
				return ErrDuplicateRating
			}
			return err
		}

		// Counterpart: the rated user's rating of the rater on the same ride.
		counterpart, err := r.Ratings.GetByTriple(ctx, req.RideID, req.RatedUserID, req.RaterID)
		switch err {
		case nil:
			if err := r.Ratings.MakeVisible(ctx, rating.ID, counterpart.ID); err != nil {
				return err
			}
			rating.IsVisible = true
			// Both sides gained a visible rating.
			if err := r.Ratings.RecomputeUserRating(ctx, req.RatedUserID); err != nil {
				return err
			}
			return r.Ratings.RecomputeUserRating(ctx, req.RaterID)
		case repository.ErrNotFound:
			return nil // stays invisible until the counterpart or the sweep
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	ratingsSubmitted.Inc()
	return rating, nil
}

// ListRatings retrieves the newest visible ratings targeting a user.
func (s *RatingService) ListRatings(ctx context.Context, userID string, limit int) ([]*domain.Rating, error) {
	return s.ratingRepo.ListVisibleForUser(ctx, userID, limit)
}
