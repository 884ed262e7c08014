package repository

import (
	"context"
	"time"

	"albaniarides/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByPhoneHash retrieves a user by the hash of their phone number.
	GetByPhoneHash(ctx context.Context, phoneHash string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile persists the mutable profile fields of an existing user.
	UpdateProfile(ctx context.Context, user *domain.User) error

	// SetVerified records a successful phone/email verification.
	SetVerified(ctx context.Context, id string, at time.Time) error

	// IncrementCompletedRides bumps the lifetime ride counter for each user.
	IncrementCompletedRides(ctx context.Context, ids []string) error
}
