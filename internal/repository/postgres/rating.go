package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
)

// RatingRepository is a PostgreSQL implementation of
// repository.RatingRepository.
type RatingRepository struct {
	q Querier
}

// NewRatingRepository creates a new PostgreSQL rating repository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{q: db}
}

// NewRatingRepositoryWithTx creates a rating repository using a transaction.
func NewRatingRepositoryWithTx(tx *sql.Tx) *RatingRepository {
	return &RatingRepository{q: tx}
}

const ratingColumns = `id, ride_id, rater_id, rated_user_id, score, comment, is_visible, created_at`

// Create persists a new rating. The unique index on
// (ride_id, rater_id, rated_user_id) backs the one rating per triple
// invariant.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, ride_id, rater_id, rated_user_id, score, comment, is_visible, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		rating.ID,
		rating.RideID,
		rating.RaterID,
		rating.RatedUserID,
		rating.Score,
		nullString(rating.Comment),
		rating.IsVisible,
		rating.CreatedAt,
	)
	if err != nil {
		return mapInsertErr(err)
	}
	return nil
}

func scanRating(row interface{ Scan(...any) error }) (*domain.Rating, error) {
	var rating domain.Rating
	var comment sql.NullString

	err := row.Scan(
		&rating.ID,
		&rating.RideID,
		&rating.RaterID,
		&rating.RatedUserID,
		&rating.Score,
		&comment,
		&rating.IsVisible,
		&rating.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	rating.Comment = comment.String
	return &rating, nil
}

// GetByTriple retrieves the rating for an exact (ride, rater, rated) triple.
func (r *RatingRepository) GetByTriple(ctx context.Context, rideID, raterID, ratedUserID string) (*domain.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE ride_id = $1 AND rater_id = $2 AND rated_user_id = $3`
	return scanRating(r.q.QueryRowContext(ctx, query, rideID, raterID, ratedUserID))
}

// MakeVisible flips the given ratings visible.
func (r *RatingRepository) MakeVisible(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE ratings SET is_visible = true WHERE id = ANY($1)`
	_, err := r.q.ExecContext(ctx, query, pq.Array(ids))
	return err
}

// ListVisibleForUser retrieves the newest visible ratings targeting a user.
func (r *RatingRepository) ListVisibleForUser(ctx context.Context, userID string, limit int) ([]*domain.Rating, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	query := `
		SELECT ` + ratingColumns + `
		FROM ratings
		WHERE rated_user_id = $1 AND is_visible
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*domain.Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// RecomputeUserRating rewrites the user's average as the mean of all
// currently visible ratings targeting them, rounded to one decimal. Users
// with no visible ratings keep the 5.0 default.
func (r *RatingRepository) RecomputeUserRating(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET rating = COALESCE(
			(SELECT ROUND(AVG(score)::numeric, 1) FROM ratings WHERE rated_user_id = $1 AND is_visible),
			5.0
		)
		WHERE id = $1
	`
	_, err := r.q.ExecContext(ctx, query, userID)
	return err
}

// SweepExpired flips invisible ratings created before the cutoff to visible,
// returning the affected rated-user IDs.
func (r *RatingRepository) SweepExpired(ctx context.Context, cutoff time.Time) ([]string, error) {
	query := `
		UPDATE ratings
		SET is_visible = true
		WHERE is_visible = false AND created_at < $1
		RETURNING rated_user_id
	`

	rows, err := r.q.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

// Ensure RatingRepository implements repository.RatingRepository.
var _ repository.RatingRepository = (*RatingRepository)(nil)
