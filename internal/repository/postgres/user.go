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

// UserRepository is a PostgreSQL implementation of repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// NewUserRepositoryWithTx creates a user repository using a transaction.
func NewUserRepositoryWithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, name, phone_hash, phone_encrypted, email, city, bio, photo_url, is_driver, car_model, car_color, driving_years, rating, total_rides, verified_at, suspended_at, created_at`

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, phone_hash, phone_encrypted, email, city, bio, photo_url, is_driver, car_model, car_color, driving_years, rating, total_rides, verified_at, suspended_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		nullString(user.PhoneHash),
		nullString(user.PhoneEncrypted),
		nullString(user.Email),
		user.City,
		nullString(user.Bio),
		nullString(user.PhotoURL),
		user.IsDriver,
		nullString(user.CarModel),
		nullString(user.CarColor),
		user.DrivingYears,
		user.Rating,
		user.TotalRides,
		nullTime(user.VerifiedAt),
		nullTime(user.SuspendedAt),
		user.CreatedAt,
	)
	if err != nil {
		return mapInsertErr(err)
	}
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var user domain.User
	var phoneHash, phoneEncrypted, email, bio, photoURL, carModel, carColor sql.NullString
	var verifiedAt, suspendedAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Name,
		&phoneHash,
		&phoneEncrypted,
		&email,
		&user.City,
		&bio,
		&photoURL,
		&user.IsDriver,
		&carModel,
		&carColor,
		&user.DrivingYears,
		&user.Rating,
		&user.TotalRides,
		&verifiedAt,
		&suspendedAt,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	user.PhoneHash = phoneHash.String
	user.PhoneEncrypted = phoneEncrypted.String
	user.Email = email.String
	user.Bio = bio.String
	user.PhotoURL = photoURL.String
	user.CarModel = carModel.String
	user.CarColor = carColor.String
	if verifiedAt.Valid {
		user.VerifiedAt = verifiedAt.Time
	}
	if suspendedAt.Valid {
		user.SuspendedAt = suspendedAt.Time
	}

	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.q.QueryRowContext(ctx, query, id))
}

// GetByPhoneHash retrieves a user by the hash of their phone number.
func (r *UserRepository) GetByPhoneHash(ctx context.Context, phoneHash string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_hash = $1`
	return scanUser(r.q.QueryRowContext(ctx, query, phoneHash))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.q.QueryRowContext(ctx, query, email))
}

// UpdateProfile persists the mutable profile fields of an existing user.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, city = $2, bio = $3, photo_url = $4, is_driver = $5, car_model = $6, car_color = $7, driving_years = $8
		WHERE id = $9
	`

	result, err := r.q.ExecContext(ctx, query,
		user.Name,
		user.City,
		nullString(user.Bio),
		nullString(user.PhotoURL),
		user.IsDriver,
		nullString(user.CarModel),
		nullString(user.CarColor),
		user.DrivingYears,
		user.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetVerified records a successful phone/email verification.
func (r *UserRepository) SetVerified(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.ExecContext(ctx, `UPDATE users SET verified_at = $1 WHERE id = $2`, at, id)
	return err
}

// IncrementCompletedRides bumps the lifetime ride counter for each user.
func (r *UserRepository) IncrementCompletedRides(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE users SET total_rides = total_rides + 1 WHERE id = ANY($1)`
	_, err := r.q.ExecContext(ctx, query, pq.Array(ids))
	return err
}

// Ensure UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
