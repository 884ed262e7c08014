package repository

import (
	"context"

	"albaniarides/internal/domain"
)

// MessageRepository defines the persistence operations for booking messages.
// Messages are append-only.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, message *domain.Message) error

	// ListByBooking retrieves the booking's messages, oldest first.
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.Message, error)
}
