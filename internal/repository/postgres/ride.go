package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"albaniarides/internal/domain"
	"albaniarides/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `id, driver_id, origin_city, destination_city, departure_time, pickup_point, stops, seats_total, seats_available, price_per_seat, luggage_space, smoking_allowed, status, cancelled_at, created_at`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, driver_id, origin_city, destination_city, departure_time, pickup_point, stops, seats_total, seats_available, price_per_seat, luggage_space, smoking_allowed, status, cancelled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.DriverID,
		ride.OriginCity,
		ride.DestinationCity,
		ride.DepartureTime,
		ride.PickupPoint,
		nullString(ride.Stops),
		ride.SeatsTotal,
		ride.SeatsAvailable,
		ride.PricePerSeat,
		ride.LuggageSpace,
		ride.SmokingAllowed,
		ride.Status,
		nullTime(ride.CancelledAt),
		ride.CreatedAt,
	)
	return err
}

func scanRide(row interface{ Scan(...any) error }) (*domain.Ride, error) {
	var ride domain.Ride
	var stops sql.NullString
	var cancelledAt sql.NullTime

	err := row.Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.OriginCity,
		&ride.DestinationCity,
		&ride.DepartureTime,
		&ride.PickupPoint,
		&stops,
		&ride.SeatsTotal,
		&ride.SeatsAvailable,
		&ride.PricePerSeat,
		&ride.LuggageSpace,
		&ride.SmokingAllowed,
		&ride.Status,
		&cancelledAt,
		&ride.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	ride.Stops = stops.String
	if cancelledAt.Valid {
		ride.CancelledAt = cancelledAt.Time
	}

	return &ride, nil
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`
	return scanRide(r.q.QueryRowContext(ctx, query, id))
}

// Search retrieves upcoming active rides with seats, matching the filters.
func (r *RideRepository) Search(ctx context.Context, params repository.RideSearch) ([]*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides
		WHERE origin_city = $1 AND destination_city = $2
		  AND status = 'active'
		  AND departure_time > now()
		  AND seats_available > 0
	`
	args := []any{params.OriginCity, params.DestinationCity}

	if !params.Date.IsZero() {
		dayStart := time.Date(params.Date.Year(), params.Date.Month(), params.Date.Day(), 0, 0, 0, 0, params.Date.Location())
		query += ` AND departure_time >= $3 AND departure_time < $4`
		args = append(args, dayStart, dayStart.AddDate(0, 0, 1))
	}

	if params.SortByPrice {
		query += ` ORDER BY price_per_seat ASC, departure_time ASC`
	} else {
		query += ` ORDER BY departure_time ASC`
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	query += ` LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(params.Offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// ListByDriver retrieves all rides published by a driver, newest first.
func (r *RideRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE driver_id = $1 ORDER BY departure_time DESC`

	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Update persists the mutable fields of a ride.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides
		SET departure_time = $1, pickup_point = $2, stops = $3, seats_total = $4, seats_available = $5, price_per_seat = $6, luggage_space = $7, smoking_allowed = $8
		WHERE id = $9
	`

	result, err := r.q.ExecContext(ctx, query,
		ride.DepartureTime,
		ride.PickupPoint,
		nullString(ride.Stops),
		ride.SeatsTotal,
		ride.SeatsAvailable,
		ride.PricePerSeat,
		ride.LuggageSpace,
		ride.SmokingAllowed,
		ride.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReserveSeats atomically decrements availability while the ride is active
// and the seats remain. The availability check and the decrement happen in
// one statement, so concurrent bookings cannot oversubscribe the ride.
func (r *RideRepository) ReserveSeats(ctx context.Context, rideID string, seats int) (bool, error) {
	query := `
		UPDATE rides
		SET seats_available = seats_available - $2
		WHERE id = $1 AND status = 'active' AND seats_available >= $2
	`

	result, err := r.q.ExecContext(ctx, query, rideID, seats)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// ReleaseSeats atomically returns seats to availability, never past the
// total capacity.
func (r *RideRepository) ReleaseSeats(ctx context.Context, rideID string, seats int) (bool, error) {
	query := `
		UPDATE rides
		SET seats_available = seats_available + $2
		WHERE id = $1 AND seats_available + $2 <= seats_total
	`

	result, err := r.q.ExecContext(ctx, query, rideID, seats)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// TransitionStatus flips the ride's status from one state to another.
func (r *RideRepository) TransitionStatus(ctx context.Context, rideID string, from, to domain.RideStatus, at time.Time) (bool, error) {
	var cancelledAt sql.NullTime
	if to == domain.RideStatusCancelled {
		cancelledAt = sql.NullTime{Time: at, Valid: true}
	}

	query := `UPDATE rides SET status = $3, cancelled_at = $4 WHERE id = $1 AND status = $2`
	result, err := r.q.ExecContext(ctx, query, rideID, from, to, cancelledAt)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// Ensure RideRepository implements repository.RideRepository.
var _ repository.RideRepository = (*RideRepository)(nil)
