package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"albaniarides/internal/domain"
	"albaniarides/internal/redis"
	"albaniarides/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount      int32
	SetVerifiedCallCount int32

	// Error injection
	CreateError error
	GetError    error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if user.PhoneHash != "" && u.PhoneHash == user.PhoneHash {
			return repository.ErrDuplicate
		}
		if user.Email != "" && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByPhoneHash(ctx context.Context, phoneHash string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.PhoneHash == phoneHash {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id string, at time.Time) error {
	atomic.AddInt32(&m.SetVerifiedCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.VerifiedAt = at
	return nil
}

func (m *MockUserRepository) IncrementCompletedRides(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			user.TotalRides++
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository. Seat
// reservation and release follow the same conditional semantics as the
// SQL implementation: check and update under one lock.
type MockRideRepository struct {
	mu    sync.Mutex
	rides map[string]*domain.Ride

	// Counters for verification
	ReserveCallCount int32
	ReleaseCallCount int32

	// Error injection
	CreateError  error
	ReserveError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{rides: make(map[string]*domain.Ride)}
}

// AddRide adds a ride to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) Search(ctx context.Context, params repository.RideSearch) ([]*domain.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Ride
	for _, r := range m.rides {
		if r.OriginCity != params.OriginCity || r.DestinationCity != params.DestinationCity {
			continue
		}
		if r.Status != domain.RideStatusActive || r.SeatsAvailable <= 0 || !r.DepartureTime.After(time.Now()) {
			continue
		}
		if !params.Date.IsZero() {
			y1, m1, d1 := params.Date.Date()
			y2, m2, d2 := r.DepartureTime.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		copy := *r
		result = append(result, &copy)
	}
	if params.SortByPrice {
		sort.Slice(result, func(i, j int) bool { return result[i].PricePerSeat < result[j].PricePerSeat })
	} else {
		sort.Slice(result, func(i, j int) bool { return result[i].DepartureTime.Before(result[j].DepartureTime) })
	}
	return result, nil
}

func (m *MockRideRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Ride
	for _, r := range m.rides {
		if r.DriverID == driverID {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DepartureTime.After(result[j].DepartureTime) })
	return result, nil
}

func (m *MockRideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[ride.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *ride
	m.rides[ride.ID] = &copy
	return nil
}

func (m *MockRideRepository) ReserveSeats(ctx context.Context, rideID string, seats int) (bool, error) {
	atomic.AddInt32(&m.ReserveCallCount, 1)
	if m.ReserveError != nil {
		return false, m.ReserveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok || ride.Status != domain.RideStatusActive || ride.SeatsAvailable < seats {
		return false, nil
	}
	ride.SeatsAvailable -= seats
	return true, nil
}

func (m *MockRideRepository) ReleaseSeats(ctx context.Context, rideID string, seats int) (bool, error) {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok || ride.SeatsAvailable+seats > ride.SeatsTotal {
		return false, nil
	}
	ride.SeatsAvailable += seats
	return true, nil
}

func (m *MockRideRepository) TransitionStatus(ctx context.Context, rideID string, from, to domain.RideStatus, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok || ride.Status != from {
		return false, nil
	}
	ride.Status = to
	if to == domain.RideStatusCancelled {
		ride.CancelledAt = at
	}
	return true, nil
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{bookings: make(map[string]*domain.Booking)}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.RideID == booking.RideID && b.PassengerID == booking.PassengerID && b.Status == domain.BookingStatusConfirmed {
			return repository.ErrDuplicate
		}
	}
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetConfirmed(ctx context.Context, rideID, passengerID string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if b.RideID == rideID && b.PassengerID == passengerID && b.Status == domain.BookingStatusConfirmed {
			copy := *b
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockBookingRepository) HasAnyByRideAndPassenger(ctx context.Context, rideID, passengerID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if b.RideID == rideID && b.PassengerID == passengerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockBookingRepository) ListByPassenger(ctx context.Context, passengerID string, status domain.BookingStatus) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.PassengerID == passengerID && (status == "" || b.Status == status) {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) ListByDriver(ctx context.Context, driverID string, status domain.BookingStatus) ([]*domain.Booking, error) {
	// The SQL implementation joins on rides; the mock has no ride access,
	// so tests using this must seed matching passenger bookings instead.
	return nil, nil
}

func (m *MockBookingRepository) CancelConfirmed(ctx context.Context, bookingID string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok || booking.Status != domain.BookingStatusConfirmed {
		return false, nil
	}
	booking.Status = domain.BookingStatusCancelled
	booking.CancelledAt = at
	return true, nil
}

func (m *MockBookingRepository) CancelAllConfirmedByRide(ctx context.Context, rideID string, at time.Time) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var cancelled []*domain.Booking
	for _, b := range m.bookings {
		if b.RideID == rideID && b.Status == domain.BookingStatusConfirmed {
			b.Status = domain.BookingStatusCancelled
			b.CancelledAt = at
			copy := *b
			cancelled = append(cancelled, &copy)
		}
	}
	return cancelled, nil
}

func (m *MockBookingRepository) CompleteAllConfirmedByRide(ctx context.Context, rideID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var passengerIDs []string
	for _, b := range m.bookings {
		if b.RideID == rideID && b.Status == domain.BookingStatusConfirmed {
			b.Status = domain.BookingStatusCompleted
			passengerIDs = append(passengerIDs, b.PassengerID)
		}
	}
	return passengerIDs, nil
}

func (m *MockBookingRepository) SumConfirmedSeats(ctx context.Context, rideID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, b := range m.bookings {
		if b.RideID == rideID && b.Status == domain.BookingStatusConfirmed {
			total += b.SeatsCount
		}
	}
	return total, nil
}

// ──────────────────────────────────────────────
// MOCK RATING REPOSITORY
// ──────────────────────────────────────────────

// MockRatingRepository is a mock implementation of RatingRepository.
type MockRatingRepository struct {
	mu      sync.RWMutex
	ratings map[string]*domain.Rating

	// RecomputedUsers records RecomputeUserRating calls in order.
	RecomputedUsers []string
}

// NewMockRatingRepository creates a new mock rating repository.
func NewMockRatingRepository() *MockRatingRepository {
	return &MockRatingRepository{ratings: make(map[string]*domain.Rating)}
}

// AddRating adds a rating to the mock repository.
func (m *MockRatingRepository) AddRating(rating *domain.Rating) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratings[rating.ID] = rating
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.ratings {
		if r.RideID == rating.RideID && r.RaterID == rating.RaterID && r.RatedUserID == rating.RatedUserID {
			return repository.ErrDuplicate
		}
	}
	m.ratings[rating.ID] = rating
	return nil
}

func (m *MockRatingRepository) GetByTriple(ctx context.Context, rideID, raterID, ratedUserID string) (*domain.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.ratings {
		if r.RideID == rideID && r.RaterID == raterID && r.RatedUserID == ratedUserID {
			copy := *r
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockRatingRepository) MakeVisible(ctx context.Context, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if r, ok := m.ratings[id]; ok {
			r.IsVisible = true
		}
	}
	return nil
}

func (m *MockRatingRepository) ListVisibleForUser(ctx context.Context, userID string, limit int) ([]*domain.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Rating
	for _, r := range m.ratings {
		if r.RatedUserID == userID && r.IsVisible {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockRatingRepository) RecomputeUserRating(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecomputedUsers = append(m.RecomputedUsers, userID)
	return nil
}

func (m *MockRatingRepository) SweepExpired(ctx context.Context, cutoff time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var affected []string
	for _, r := range m.ratings {
		if !r.IsVisible && r.CreatedAt.Before(cutoff) {
			r.IsVisible = true
			affected = append(affected, r.RatedUserID)
		}
	}
	return affected, nil
}

// ──────────────────────────────────────────────
// MOCK MESSAGE REPOSITORY
// ──────────────────────────────────────────────

// MockMessageRepository is a mock implementation of MessageRepository.
type MockMessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

// NewMockMessageRepository creates a new mock message repository.
func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{}
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

func (m *MockMessageRepository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Message
	for _, msg := range m.messages {
		if msg.BookingID == bookingID {
			copy := *msg
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK TX RUNNER
// ──────────────────────────────────────────────

// MockTxRunner runs the transactional function against the mock repositories
// directly. It does not roll back: a failing function leaves earlier writes
// in place, so tests assert repository state only after successful runs.
type MockTxRunner struct {
	Repos repository.TxRepos

	// Counters for verification
	InTxCallCount int32

	// Error injection
	BeginError error
}

// NewMockTxRunner bundles the given mocks behind a TxRunner.
func NewMockTxRunner(
	users *MockUserRepository,
	rides *MockRideRepository,
	bookings *MockBookingRepository,
	ratings *MockRatingRepository,
	messages *MockMessageRepository,
) *MockTxRunner {
	return &MockTxRunner{Repos: repository.TxRepos{
		Users:    users,
		Rides:    rides,
		Bookings: bookings,
		Ratings:  ratings,
		Messages: messages,
	}}
}

func (m *MockTxRunner) InTx(ctx context.Context, fn func(repository.TxRepos) error) error {
	atomic.AddInt32(&m.InTxCallCount, 1)
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(m.Repos)
}

// ──────────────────────────────────────────────
// MOCK SMS SENDER
// ──────────────────────────────────────────────

// SentSMS is a message captured by MockSMSSender.
type SentSMS struct {
	To   string
	Body string
}

// MockSMSSender captures outbound SMS instead of sending them.
type MockSMSSender struct {
	mu   sync.Mutex
	Sent []SentSMS

	// Error injection
	SendError error
}

// NewMockSMSSender creates a new mock SMS sender.
func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{}
}

func (m *MockSMSSender) Send(ctx context.Context, to, body string) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentSMS{To: to, Body: body})
	return nil
}

// Count returns the number of captured messages.
func (m *MockSMSSender) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockOTPStore is an in-memory implementation of the OTP store.
type MockOTPStore struct {
	mu    sync.Mutex
	codes map[string]string

	IssueCallCount int32
}

// NewMockOTPStore creates a new mock OTP store.
func NewMockOTPStore() *MockOTPStore {
	return &MockOTPStore{codes: make(map[string]string)}
}

func (m *MockOTPStore) Issue(ctx context.Context, phoneHash string) (string, error) {
	atomic.AddInt32(&m.IssueCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[phoneHash] = "424242"
	return "424242", nil
}

func (m *MockOTPStore) Verify(ctx context.Context, phoneHash, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.codes[phoneHash]
	if !ok || stored != code {
		return false, nil
	}
	delete(m.codes, phoneHash) // single use
	return true, nil
}

// MockMagicLinkStore is an in-memory implementation of the magic-link store.
type MockMagicLinkStore struct {
	mu     sync.Mutex
	claims map[string]redis.MagicLinkClaim
}

// NewMockMagicLinkStore creates a new mock magic-link store.
func NewMockMagicLinkStore() *MockMagicLinkStore {
	return &MockMagicLinkStore{claims: make(map[string]redis.MagicLinkClaim)}
}

func (m *MockMagicLinkStore) Issue(ctx context.Context, claim redis.MagicLinkClaim) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := uuid.New().String()
	m.claims[token] = claim
	return token, nil
}

func (m *MockMagicLinkStore) Redeem(ctx context.Context, token string) (*redis.MagicLinkClaim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	claim, ok := m.claims[token]
	if !ok {
		return nil, nil
	}
	delete(m.claims, token) // single use
	return &claim, nil
}

// LastToken returns an arbitrary outstanding token, or "".
func (m *MockMagicLinkStore) LastToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token := range m.claims {
		return token
	}
	return ""
}
