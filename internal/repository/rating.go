package repository

import (
	"context"
	"time"

	"albaniarides/internal/domain"
)

// RatingRepository defines the persistence operations for ratings.
type RatingRepository interface {
	// Create persists a new rating. Returns ErrDuplicate for a repeated
	// (ride, rater, rated) triple.
	Create(ctx context.Context, rating *domain.Rating) error

	// GetByTriple retrieves the rating for an exact (ride, rater, rated)
	// triple, or ErrNotFound.
	GetByTriple(ctx context.Context, rideID, raterID, ratedUserID string) (*domain.Rating, error)

	// MakeVisible flips the given ratings visible.
	MakeVisible(ctx context.Context, ids ...string) error

	// ListVisibleForUser retrieves the newest visible ratings targeting a
	// user.
	ListVisibleForUser(ctx context.Context, userID string, limit int) ([]*domain.Rating, error)

	// RecomputeUserRating rewrites the user's average as the mean of all
	// currently visible ratings targeting them, rounded to one decimal.
	// Users with no visible ratings keep the 5.0 default.
	RecomputeUserRating(ctx context.Context, userID string) error

	// SweepExpired flips invisible ratings created before the cutoff to
	// visible, returning the affected rated-user IDs (for average
	// recomputation).
	SweepExpired(ctx context.Context, cutoff time.Time) ([]string, error)
}
