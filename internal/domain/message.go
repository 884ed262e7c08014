package domain

import "time"

// Message is free-text communication scoped to a booking. Sender and
// receiver are always the booking's passenger/driver pair. Append-only.
type Message struct {
	ID         string
	BookingID  string
	SenderID   string
	ReceiverID string
	Content    string
	CreatedAt  time.Time
}
