package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"albaniarides/internal/cities"
	"albaniarides/internal/domain"
	"albaniarides/internal/middleware"
	"albaniarides/internal/service"
)

const maxSearchLimit = 20

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService    *service.RideService
	bookingService *service.BookingService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, bookingService *service.BookingService) *RideHandler {
	return &RideHandler{rideService: rideService, bookingService: bookingService}
}

// CreateRideRequest is the HTTP request body for publishing a ride.
type CreateRideRequest struct {
	OriginCity      string `json:"origin_city" binding:"required"`
	DestinationCity string `json:"destination_city" binding:"required"`
	DepartureTime   string `json:"departure_time" binding:"required"` // RFC 3339
	PickupPoint     string `json:"pickup_point"`
	Stops           string `json:"stops"`
	SeatsTotal      int    `json:"seats_total" binding:"required"`
	PricePerSeat    int    `json:"price_per_seat" binding:"required"`
	LuggageSpace    bool   `json:"luggage_space"`
	SmokingAllowed  bool   `json:"smoking_allowed"`
}

// UpdateRideRequest is the HTTP request body for editing a ride. Absent
// fields keep their current value.
type UpdateRideRequest struct {
	DepartureTime  *string `json:"departure_time"`
	PickupPoint    *string `json:"pickup_point"`
	Stops          *string `json:"stops"`
	SeatsTotal     *int    `json:"seats_total"`
	PricePerSeat   *int    `json:"price_per_seat"`
	LuggageSpace   *bool   `json:"luggage_space"`
	SmokingAllowed *bool   `json:"smoking_allowed"`
}

// DriverSummary is the driver's public profile embedded in ride responses.
type DriverSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PhotoURL     string  `json:"photo_url,omitempty"`
	CarModel     string  `json:"car_model,omitempty"`
	CarColor     string  `json:"car_color,omitempty"`
	DrivingYears int     `json:"driving_years,omitempty"`
	Rating       float64 `json:"rating"`
	TotalRides   int     `json:"total_rides"`
}

// RideResponse is the HTTP response for ride operations.
type RideResponse struct {
	ID              string         `json:"id"`
	DriverID        string         `json:"driver_id"`
	OriginCity      string         `json:"origin_city"`
	OriginName      string         `json:"origin_name"`
	DestinationCity string         `json:"destination_city"`
	DestinationName string         `json:"destination_name"`
	DepartureTime   string         `json:"departure_time"`
	PickupPoint     string         `json:"pickup_point,omitempty"`
	Stops           string         `json:"stops,omitempty"`
	SeatsTotal      int            `json:"seats_total"`
	SeatsAvailable  int            `json:"seats_available"`
	PricePerSeat    int            `json:"price_per_seat"`
	LuggageSpace    bool           `json:"luggage_space"`
	SmokingAllowed  bool           `json:"smoking_allowed"`
	Status          string         `json:"status"`
	CreatedAt       string         `json:"created_at"`
	Driver          *DriverSummary `json:"driver,omitempty"`
}

func newRideResponse(ride *domain.Ride, driver *domain.User) RideResponse {
	resp := RideResponse{
		ID:              ride.ID,
		DriverID:        ride.DriverID,
		OriginCity:      ride.OriginCity,
		OriginName:      cities.DisplayName(ride.OriginCity),
		DestinationCity: ride.DestinationCity,
		DestinationName: cities.DisplayName(ride.DestinationCity),
		DepartureTime:   ride.DepartureTime.Format(time.RFC3339),
		PickupPoint:     ride.PickupPoint,
		Stops:           ride.Stops,
		SeatsTotal:      ride.SeatsTotal,
		SeatsAvailable:  ride.SeatsAvailable,
		PricePerSeat:    ride.PricePerSeat,
		LuggageSpace:    ride.LuggageSpace,
		SmokingAllowed:  ride.SmokingAllowed,
		Status:          string(ride.Status),
		CreatedAt:       ride.CreatedAt.Format(time.RFC3339),
	}
	if driver != nil {
		resp.Driver = &DriverSummary{
			ID:           driver.ID,
			Name:         driver.Name,
			PhotoURL:     driver.PhotoURL,
			CarModel:     driver.CarModel,
			CarColor:     driver.CarColor,
			DrivingYears: driver.DrivingYears,
			Rating:       driver.Rating,
			TotalRides:   driver.TotalRides,
		}
	}
	return resp
}

// Search handles GET /v1/rides
func (h *RideHandler) Search(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "origin and destination are required"})
		return
	}

	params := service.SearchParams{
		OriginCity:      origin,
		DestinationCity: destination,
		TimePeriod:      c.Query("time_period"),
		SortByPrice:     c.Query("sort") == "price",
	}

	if date := c.Query("date"); date != "" {
		d, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date, expected YYYY-MM-DD"})
			return
		}
		params.Date = d
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	params.Limit = limit
	params.Offset = (page - 1) * limit

	results, err := h.rideService.SearchRides(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	rides := make([]RideResponse, 0, len(results))
	for _, r := range results {
		rides = append(rides, newRideResponse(r.Ride, r.Driver))
	}
	respondJSON(c, http.StatusOK, gin.H{"rides": rides, "page": page, "limit": limit})
}

// Create handles POST /v1/rides
func (h *RideHandler) Create(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid departure_time, expected RFC 3339"})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), middleware.UserID(c), service.RideParams{
		OriginCity:      req.OriginCity,
		DestinationCity: req.DestinationCity,
		DepartureTime:   departure,
		PickupPoint:     req.PickupPoint,
		Stops:           req.Stops,
		SeatsTotal:      req.SeatsTotal,
		PricePerSeat:    req.PricePerSeat,
		LuggageSpace:    req.LuggageSpace,
		SmokingAllowed:  req.SmokingAllowed,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, newRideResponse(ride, nil))
}

// Get handles GET /v1/rides/:id
func (h *RideHandler) Get(c *gin.Context) {
	result, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newRideResponse(result.Ride, result.Driver))
}

// Update handles PUT /v1/rides/:id
func (h *RideHandler) Update(c *gin.Context) {
	var req UpdateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.RideUpdate{
		PickupPoint:    req.PickupPoint,
		Stops:          req.Stops,
		SeatsTotal:     req.SeatsTotal,
		PricePerSeat:   req.PricePerSeat,
		LuggageSpace:   req.LuggageSpace,
		SmokingAllowed: req.SmokingAllowed,
	}
	if req.DepartureTime != nil {
		departure, err := time.Parse(time.RFC3339, *req.DepartureTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid departure_time, expected RFC 3339"})
			return
		}
		update.DepartureTime = &departure
	}

	ride, err := h.rideService.UpdateRide(c.Request.Context(), middleware.UserID(c), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newRideResponse(ride, nil))
}

// Cancel handles DELETE /v1/rides/:id
func (h *RideHandler) Cancel(c *gin.Context) {
	if err := h.bookingService.CancelRide(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"message": "ride cancelled"})
}

// Complete handles POST /v1/rides/:id/complete
func (h *RideHandler) Complete(c *gin.Context) {
	if err := h.bookingService.CompleteRide(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"message": "ride completed"})
}

// ListMine handles GET /v1/rides/mine
func (h *RideHandler) ListMine(c *gin.Context) {
	rides, err := h.rideService.ListDriverRides(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		out = append(out, newRideResponse(ride, nil))
	}
	respondJSON(c, http.StatusOK, gin.H{"rides": out})
}
