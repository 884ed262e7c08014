// Package validate holds pure validation and normalization helpers shared by
// services and handlers.
package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	albanianPhoneRe = regexp.MustCompile(`^\+355[0-9]{8,9}$`)
	emailRe         = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// CancelCutoff is how long before departure a booking can still be cancelled.
const CancelCutoff = 2 * time.Hour

// NormalizePhone canonicalizes an Albanian phone number to +355XXXXXXXX form.
// Spaces and dashes are stripped; local 0-prefixed and bare forms get the
// country code prepended.
func NormalizePhone(phone string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	switch {
	case cleaned == "":
		return ""
	case strings.HasPrefix(cleaned, "+355"):
		return cleaned
	case strings.HasPrefix(cleaned, "355"):
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0"):
		return "+355" + cleaned[1:]
	default:
		return "+355" + cleaned
	}
}

// IsAlbanianPhone reports whether phone is a normalized Albanian number.
func IsAlbanianPhone(phone string) bool {
	return albanianPhoneRe.MatchString(phone)
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidSeatCount reports whether a booking seat count is in range.
func ValidSeatCount(seats int) bool {
	return seats >= 1 && seats <= 4
}

// ValidPrice reports whether a per-seat price in lek is in range.
func ValidPrice(price int) bool {
	return price > 0 && price <= 100000
}

// CanCancel reports whether a booking on a ride departing at departure can
// still be cancelled at now (more than CancelCutoff before departure).
func CanCancel(now, departure time.Time) bool {
	return now.Before(departure.Add(-CancelCutoff))
}

// TimePeriodOf buckets a departure time into morning/afternoon/evening.
func TimePeriodOf(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 18:
		return "afternoon"
	default:
		return "evening"
	}
}
