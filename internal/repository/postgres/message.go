package postgres

import (
	"context"
	"database/sql"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
)

// MessageRepository is a PostgreSQL implementation of
// repository.MessageRepository.
type MessageRepository struct {
	q Querier
}

// NewMessageRepository creates a new PostgreSQL message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{q: db}
}

// NewMessageRepositoryWithTx creates a message repository using a transaction.
func NewMessageRepositoryWithTx(tx *sql.Tx) *MessageRepository {
	return &MessageRepository{q: tx}
}

// Create persists a new message.
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, booking_id, sender_id, receiver_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		message.ID,
		message.BookingID,
		message.SenderID,
		message.ReceiverID,
		message.Content,
		message.CreatedAt,
	)
	return err
}

// ListByBooking retrieves the booking's messages, oldest first.
func (r *MessageRepository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Message, error) {
	query := `
		SELECT id, booking_id, sender_id, receiver_id, content, created_at
		FROM messages
		WHERE booking_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.q.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.BookingID,
			&message.SenderID,
			&message.ReceiverID,
			&message.Content,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, &message)
	}
	return messages, rows.Err()
}

// Ensure MessageRepository implements repository.MessageRepository.
var _ repository.MessageRepository = (*MessageRepository)(nil)
