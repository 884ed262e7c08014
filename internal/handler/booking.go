package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"albaniarides/internal/domain"
	"albaniarides/internal/middleware"
	"albaniarides/internal/service"
)

// BookingHandler handles HTTP requests for bookings and their messages.
type BookingHandler struct {
	bookingService *service.BookingService
	messageService *service.MessageService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService, messageService *service.MessageService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, messageService: messageService}
}

// CreateBookingRequest is the HTTP request body for booking seats.
type CreateBookingRequest struct {
	RideID     string `json:"ride_id" binding:"required"`
	SeatsCount int    `json:"seats_count" binding:"required"`
	Message    string `json:"message"`
}

// SendMessageRequest is the HTTP request body for a booking message.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// BookingResponse is the HTTP response for booking operations.
type BookingResponse struct {
	ID          string `json:"id"`
	RideID      string `json:"ride_id"`
	PassengerID string `json:"passenger_id"`
	SeatsCount  int    `json:"seats_count"`
	TotalPrice  int    `json:"total_price"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	CancelledAt string `json:"cancelled_at,omitempty"`
}

// MessageResponse is the HTTP response for a booking message.
type MessageResponse struct {
	ID         string `json:"id"`
	BookingID  string `json:"booking_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

func newBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		RideID:      b.RideID,
		PassengerID: b.PassengerID,
		SeatsCount:  b.SeatsCount,
		TotalPrice:  b.TotalPrice,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
	if !b.CancelledAt.IsZero() {
		resp.CancelledAt = b.CancelledAt.Format(time.RFC3339)
	}
	return resp
}

func newMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		BookingID:  m.BookingID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		PassengerID: middleware.UserID(c),
		RideID:      req.RideID,
		SeatsCount:  req.SeatsCount,
		Message:     req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, newBookingResponse(booking))
}

// List handles GET /v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	var status domain.BookingStatus
	switch s := c.Query("status"); s {
	case "":
	case string(domain.BookingStatusConfirmed), string(domain.BookingStatusCancelled), string(domain.BookingStatusCompleted):
		status = domain.BookingStatus(s)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		return
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), service.ListBookingsRequest{
		UserID:   middleware.UserID(c),
		AsDriver: c.Query("role") == "driver",
		Status:   status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, newBookingResponse(b))
	}
	respondJSON(c, http.StatusOK, gin.H{"bookings": out})
}

// Cancel handles DELETE /v1/bookings/:id
func (h *BookingHandler) Cancel(c *gin.Context) {
	if err := h.bookingService.CancelBooking(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"message": "booking cancelled"})
}

// ListMessages handles GET /v1/bookings/:id/messages
func (h *BookingHandler) ListMessages(c *gin.Context) {
	messages, err := h.messageService.ListMessages(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, newMessageResponse(m))
	}
	respondJSON(c, http.StatusOK, gin.H{"messages": out})
}

// SendMessage handles POST /v1/bookings/:id/messages
func (h *BookingHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	message, err := h.messageService.SendMessage(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, newMessageResponse(message))
}
