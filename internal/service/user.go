package service

import (
	"context"
	"strings"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
)

const maxBioLength = 500

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// current value untouched.
type ProfileUpdate struct {
	Name         *string
	City         *string
	Bio          *string
	PhotoURL     *string
	IsDriver     *bool
	CarModel     *string
	CarColor     *string
	DrivingYears *int
}

// UserService exposes profile reads and updates.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the user with the given ID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's profile. Turning
// on driver mode requires car details, either in this update or already on
// file.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if len(name) < minNameLength || len(name) > maxNameLength {
			return nil, ErrInvalidName
		}
		user.Name = name
	}
	if update.City != nil {
		user.City = strings.TrimSpace(*update.City)
	}
	if update.Bio != nil {
		if len(*update.Bio) > maxBioLength {
			return nil, ErrBioTooLong
		}
		user.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.PhotoURL != nil {
		user.PhotoURL = strings.TrimSpace(*update.PhotoURL)
	}
	if update.IsDriver != nil {
		user.IsDriver = *update.IsDriver
	}
	if update.CarModel != nil {
		user.CarModel = strings.TrimSpace(*update.CarModel)
	}
	if update.CarColor != nil {
		user.CarColor = strings.TrimSpace(*update.CarColor)
	}
	if update.DrivingYears != nil {
		if *update.DrivingYears < 0 || *update.DrivingYears > 80 {
			return nil, ErrInvalidDrivingYears
		}
		user.DrivingYears = *update.DrivingYears
	}

	if user.IsDriver && (user.CarModel == "" || user.CarColor == "") {
		return nil, ErrCarInfoRequired
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
