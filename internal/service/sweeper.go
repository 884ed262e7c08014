package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"albaniarides/internal/repository"
)

// RatingSweeper periodically flips unpaired ratings visible once they are
// older than the configured window, honoring the "visible after both parties
// rate or after 7 days" contract even when one side never rates back.
type RatingSweeper struct {
	tx       repository.TxRunner
	interval time.Duration
	after    time.Duration
	log      *zap.Logger
}

// NewRatingSweeper creates a new RatingSweeper.
func NewRatingSweeper(tx repository.TxRunner, interval, after time.Duration, log *zap.Logger) *RatingSweeper {
	return &RatingSweeper{tx: tx, interval: interval, after: after, log: log}
}

// Run sweeps on a ticker until ctx is cancelled. One sweep runs immediately
// on start so a restart doesn't delay overdue flips by a full interval.
func (s *RatingSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("rating sweeper started",
		zap.Duration("interval", s.interval),
		zap.Duration("visible_after", s.after))

	if err := s.SweepOnce(ctx); err != nil {
		s.log.Error("rating sweep failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			s.log.Info("rating sweeper stopped")
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.log.Error("rating sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOnce flips expired ratings visible and recomputes the averages of
// every affected user, in one transaction.
func (s *RatingSweeper) SweepOnce(ctx context.Context) error {
	var flipped int
	err := s.tx.InTx(ctx, func(r repository.TxRepos) error {
		userIDs, err := r.Ratings.SweepExpired(ctx, time.Now().Add(-s.after))
		if err != nil {
			return err
		}
		flipped = len(userIDs)

		seen := make(map[string]bool, len(userIDs))
		for _, id := range userIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			if err := r.Ratings.RecomputeUserRating(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if flipped > 0 {
		ratingsSwept.Add(float64(flipped))
		s.log.Info("swept unpaired ratings visible", zap.Int("count", flipped))
	}
	return nil
}
