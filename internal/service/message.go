package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
)

// maxMessageLength caps a single chat message.
const maxMessageLength = 1000

// MessageService handles the booking-scoped chat between a passenger and a
// driver.
type MessageService struct {
	messageRepo repository.MessageRepository
	bookingRepo repository.BookingRepository
	rideRepo    repository.RideRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(
	messageRepo repository.MessageRepository,
	bookingRepo repository.BookingRepository,
	rideRepo repository.RideRepository,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		bookingRepo: bookingRepo,
		rideRepo:    rideRepo,
	}
}

// parties resolves the booking's passenger/driver pair and checks the
// requester is one of them.
func (s *MessageService) parties(ctx context.Context, requesterID, bookingID string) (passengerID, driverID string, err error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return "", "", err
	}
	ride, err := s.rideRepo.GetByID(ctx, booking.RideID)
	if err != nil {
		return "", "", err
	}

	if requesterID != booking.PassengerID && requesterID != ride.DriverID {
		return "", "", ErrNotBookingParty
	}
	return booking.PassengerID, ride.DriverID, nil
}

// ListMessages retrieves a booking's messages, oldest first. Only the
// booking's passenger or driver may read them.
func (s *MessageService) ListMessages(ctx context.Context, requesterID, bookingID string) ([]*domain.Message, error) {
	if _, _, err := s.parties(ctx, requesterID, bookingID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByBooking(ctx, bookingID)
}

// SendMessage appends a message to the booking thread. The receiver is
// always the other party.
func (s *MessageService) SendMessage(ctx context.Context, requesterID, bookingID, content string) (*domain.Message, error) {
	if content == "" || len(content) > maxMessageLength {
		return nil, ErrInvalidMessage
	}

	passengerID, driverID, err := s.parties(ctx, requesterID, bookingID)
	if err != nil {
		return nil, err
	}

	receiverID := driverID
	if requesterID == driverID {
		receiverID = passengerID
	}

	message := &domain.Message{
		ID:         uuid.New().String(),
		BookingID:  bookingID,
		SenderID:   requesterID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}
