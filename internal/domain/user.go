package domain

import "time"

// DefaultRating is the rating assigned to accounts with no visible ratings.
const DefaultRating = 5.0

// User represents a registered account. Every user can book rides as a
// passenger; users with IsDriver set can also publish rides.
type User struct {
	ID             string
	Name           string
	PhoneHash      string // SHA-256 of the normalized phone, lookup key
	PhoneEncrypted string // AES-GCM ciphertext, decrypted only for contact reveal
	Email          string
	City           string
	Bio            string
	PhotoURL       string
	IsDriver       bool
	CarModel       string
	CarColor       string
	DrivingYears   int
	Rating         float64 // rolling mean of visible ratings, 1 decimal
	TotalRides     int     // lifetime completed rides
	VerifiedAt     time.Time
	SuspendedAt    time.Time
	CreatedAt      time.Time
}

// Suspended reports whether the account has been suspended.
func (u *User) Suspended() bool {
	return !u.SuspendedAt.IsZero()
}
