package repository

import "context"

// TxRepos bundles repositories bound to a single transaction. Writes made
// through one member are visible to the others and commit or roll back
// together.
type TxRepos struct {
	Users    UserRepository
	Rides    RideRepository
	Bookings BookingRepository
	Ratings  RatingRepository
	Messages MessageRepository
}

// TxRunner runs fn against transaction-scoped repositories. An error from
// fn rolls the transaction back and is returned as-is.
type TxRunner interface {
	InTx(ctx context.Context, fn func(TxRepos) error) error
}
