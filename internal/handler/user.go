package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"albaniarides/internal/domain"
	"albaniarides/internal/middleware"
	"albaniarides/internal/service"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserResponse is the public view of an account. Phone numbers are never
// included; they are exchanged over SMS after a booking is confirmed.
type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email,omitempty"`
	City         string  `json:"city,omitempty"`
	Bio          string  `json:"bio,omitempty"`
	PhotoURL     string  `json:"photo_url,omitempty"`
	IsDriver     bool    `json:"is_driver"`
	CarModel     string  `json:"car_model,omitempty"`
	CarColor     string  `json:"car_color,omitempty"`
	DrivingYears int     `json:"driving_years,omitempty"`
	Rating       float64 `json:"rating"`
	TotalRides   int     `json:"total_rides"`
	Verified     bool    `json:"verified"`
	CreatedAt    string  `json:"created_at"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		City:         u.City,
		Bio:          u.Bio,
		PhotoURL:     u.PhotoURL,
		IsDriver:     u.IsDriver,
		CarModel:     u.CarModel,
		CarColor:     u.CarColor,
		DrivingYears: u.DrivingYears,
		Rating:       u.Rating,
		TotalRides:   u.TotalRides,
		Verified:     !u.VerifiedAt.IsZero(),
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
	}
}

// UpdateProfileRequest is the HTTP request body for profile updates. Absent
// fields keep their current value.
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	City         *string `json:"city"`
	Bio          *string `json:"bio"`
	PhotoURL     *string `json:"photo_url"`
	IsDriver     *bool   `json:"is_driver"`
	CarModel     *string `json:"car_model"`
	CarColor     *string `json:"car_color"`
	DrivingYears *int    `json:"driving_years"`
}

// GetProfile handles GET /v1/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newUserResponse(user))
}

// UpdateProfile handles PUT /v1/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.UserID(c), service.ProfileUpdate{
		Name:         req.Name,
		City:         req.City,
		Bio:          req.Bio,
		PhotoURL:     req.PhotoURL,
		IsDriver:     req.IsDriver,
		CarModel:     req.CarModel,
		CarColor:     req.CarColor,
		DrivingYears: req.DrivingYears,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newUserResponse(user))
}
