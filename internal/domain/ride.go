package domain

import "time"

// RideStatus represents the lifecycle status of a ride.
type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCancelled RideStatus = "cancelled"
	RideStatusCompleted RideStatus = "completed"
)

// Ride is a single advertised intercity trip offered by a driver with fixed
// capacity and a cash price per seat.
//
// Invariant: 0 <= SeatsAvailable <= SeatsTotal at all times. Seat arithmetic
// goes through conditional UPDATEs, never read-then-write.
type Ride struct {
	ID              string
	DriverID        string
	OriginCity      string // city code, e.g. "TIA"
	DestinationCity string
	DepartureTime   time.Time
	PickupPoint     string
	Stops           string // optional intermediate stops, free text
	SeatsTotal      int
	SeatsAvailable  int
	PricePerSeat    int // ALL (lek), cash settled off-platform
	LuggageSpace    bool
	SmokingAllowed  bool
	Status          RideStatus
	CancelledAt     time.Time
	CreatedAt       time.Time
}
