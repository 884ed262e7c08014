package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of
// repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, ride_id, passenger_id, seats_count, total_price, status, created_at, cancelled_at`

// Create persists a new booking. The partial unique index on
// (ride_id, passenger_id) WHERE status = 'confirmed' backs the one
// confirmed booking per passenger per ride invariant.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, ride_id, passenger_id, seats_count, total_price, status, created_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.RideID,
		booking.PassengerID,
		booking.SeatsCount,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		nullTime(booking.CancelledAt),
	)
	if err != nil {
		return mapInsertErr(err)
	}
	return nil
}

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.RideID,
		&booking.PassengerID,
		&booking.SeatsCount,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&cancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if cancelledAt.Valid {
		booking.CancelledAt = cancelledAt.Time
	}
	return &booking, nil
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.q.QueryRowContext(ctx, query, id))
}

// GetConfirmed retrieves the passenger's confirmed booking on a ride.
func (r *BookingRepository) GetConfirmed(ctx context.Context, rideID, passengerID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ride_id = $1 AND passenger_id = $2 AND status = 'confirmed'`
	return scanBooking(r.q.QueryRowContext(ctx, query, rideID, passengerID))
}

// HasAnyByRideAndPassenger reports whether the passenger holds a booking of
// any status on the ride.
func (r *BookingRepository) HasAnyByRideAndPassenger(ctx context.Context, rideID, passengerID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE ride_id = $1 AND passenger_id = $2)`
	var exists bool
	if err := r.q.QueryRowContext(ctx, query, rideID, passengerID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// ListByPassenger retrieves the passenger's bookings, newest first.
func (r *BookingRepository) ListByPassenger(ctx context.Context, passengerID string, status domain.BookingStatus) ([]*domain.Booking, error) {
	if status == "" {
		query := `SELECT ` + bookingColumns + ` FROM bookings WHERE passenger_id = $1 ORDER BY created_at DESC LIMIT 100`
		return r.list(ctx, query, passengerID)
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE passenger_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 100`
	return r.list(ctx, query, passengerID, status)
}

// ListByDriver retrieves bookings on rides owned by the driver, newest first.
func (r *BookingRepository) ListByDriver(ctx context.Context, driverID string, status domain.BookingStatus) ([]*domain.Booking, error) {
	base := `
		SELECT b.id, b.ride_id, b.passenger_id, b.seats_count, b.total_price, b.status, b.created_at, b.cancelled_at
		FROM bookings b
		JOIN rides r ON r.id = b.ride_id
		WHERE r.driver_id = $1
	`
	if status == "" {
		return r.list(ctx, base+` ORDER BY b.created_at DESC LIMIT 100`, driverID)
	}
	return r.list(ctx, base+` AND b.status = $2 ORDER BY b.created_at DESC LIMIT 100`, driverID, status)
}

// CancelConfirmed flips a confirmed booking to cancelled.
func (r *BookingRepository) CancelConfirmed(ctx context.Context, bookingID string, at time.Time) (bool, error) {
	query := `UPDATE bookings SET status = 'cancelled', cancelled_at = $2 WHERE id = $1 AND status = 'confirmed'`
	result, err := r.q.ExecContext(ctx, query, bookingID, at)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// CancelAllConfirmedByRide cancels every confirmed booking on the ride,
// returning the cancelled bookings.
func (r *BookingRepository) CancelAllConfirmedByRide(ctx context.Context, rideID string, at time.Time) ([]*domain.Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = $2
		WHERE ride_id = $1 AND status = 'confirmed'
		RETURNING ` + bookingColumns

	return r.list(ctx, query, rideID, at)
}

// CompleteAllConfirmedByRide flips every confirmed booking on the ride to
// completed, returning the affected passenger IDs.
func (r *BookingRepository) CompleteAllConfirmedByRide(ctx context.Context, rideID string) ([]string, error) {
	query := `
		UPDATE bookings
		SET status = 'completed'
		WHERE ride_id = $1 AND status = 'confirmed'
		RETURNING passenger_id
	`

	rows, err := r.q.QueryContext(ctx, query, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passengerIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		passengerIDs = append(passengerIDs, id)
	}
	return passengerIDs, rows.Err()
}

// SumConfirmedSeats returns the total seats held by confirmed bookings on
// the ride.
func (r *BookingRepository) SumConfirmedSeats(ctx context.Context, rideID string) (int, error) {
	query := `SELECT COALESCE(SUM(seats_count), 0) FROM bookings WHERE ride_id = $1 AND status = 'confirmed'`
	var sum int
	if err := r.q.QueryRowContext(ctx, query, rideID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

// Ensure BookingRepository implements repository.BookingRepository.
var _ repository.BookingRepository = (*BookingRepository)(nil)
