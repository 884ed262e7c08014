package domain

import "time"

// BookingStatus represents the lifecycle status of a booking.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is a passenger's reservation of one or more seats on a ride.
// A passenger holds at most one confirmed booking per ride. Bookings are
// never deleted, only cancelled or completed.
type Booking struct {
	ID          string
	RideID      string
	PassengerID string
	SeatsCount  int // 1..4
	TotalPrice  int // SeatsCount * ride.PricePerSeat, fixed at creation
	Status      BookingStatus
	CreatedAt   time.Time
	CancelledAt time.Time
}
