package postgres

import (
	"context"
	"database/sql"

	"albaniarides/internal/repository"
)

// TxRunner implements repository.TxRunner on a database handle.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a new TxRunner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) InTx(ctx context.Context, fn func(repository.TxRepos) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	repos := repository.TxRepos{
		Users:    NewUserRepositoryWithTx(tx),
		Rides:    NewRideRepositoryWithTx(tx),
		Bookings: NewBookingRepositoryWithTx(tx),
		Ratings:  NewRatingRepositoryWithTx(tx),
		Messages: NewMessageRepositoryWithTx(tx),
	}

	if err := fn(repos); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
