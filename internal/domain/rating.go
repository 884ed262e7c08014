package domain

import "time"

// Rating is a one-directional score from a rater to a rated user, scoped to
// a single ride. At most one rating exists per (ride, rater, rated) triple.
//
// A rating stays invisible until its counterpart (the rated user's rating of
// the rater on the same ride) exists, at which point both flip visible in
// the same transaction. Unpaired ratings older than the sweep window are
// flipped visible by the background sweeper.
type Rating struct {
	ID          string
	RideID      string
	RaterID     string
	RatedUserID string
	Score       int // 1..5
	Comment     string
	IsVisible   bool
	CreatedAt   time.Time
}
