package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"albaniarides/internal/domain"
	"albaniarides/internal/middleware"
	"albaniarides/internal/service"
)

// RatingHandler handles HTTP requests for ratings.
type RatingHandler struct {
	ratingService *service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// SubmitRatingRequest is the HTTP request body for submitting a rating.
type SubmitRatingRequest struct {
	RideID      string `json:"ride_id" binding:"required"`
	RatedUserID string `json:"rated_user_id" binding:"required"`
	Score       int    `json:"score" binding:"required"`
	Comment     string `json:"comment"`
}

// RatingResponse is the HTTP response for rating operations. Invisible
// ratings are returned only to their author, without the counterpart.
type RatingResponse struct {
	ID          string `json:"id"`
	RideID      string `json:"ride_id"`
	RaterID     string `json:"rater_id"`
	RatedUserID string `json:"rated_user_id"`
	Score       int    `json:"score"`
	Comment     string `json:"comment,omitempty"`
	Visible     bool   `json:"visible"`
	CreatedAt   string `json:"created_at"`
}

func newRatingResponse(r *domain.Rating) RatingResponse {
	return RatingResponse{
		ID:          r.ID,
		RideID:      r.RideID,
		RaterID:     r.RaterID,
		RatedUserID: r.RatedUserID,
		Score:       r.Score,
		Comment:     r.Comment,
		Visible:     r.IsVisible,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

// Submit handles POST /v1/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rating, err := h.ratingService.SubmitRating(c.Request.Context(), service.SubmitRatingRequest{
		RaterID:     middleware.UserID(c),
		RideID:      req.RideID,
		RatedUserID: req.RatedUserID,
		Score:       req.Score,
		Comment:     req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, newRatingResponse(rating))
}

// List handles GET /v1/ratings
func (h *RatingHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id is required"})
		return
	}

	ratings, err := h.ratingService.ListRatings(c.Request.Context(), userID, 50)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, newRatingResponse(r))
	}
	respondJSON(c, http.StatusOK, gin.H{"ratings": out})
}
