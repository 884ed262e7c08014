package service

import "errors"

var (
	// ErrInvalidPhone is returned when a phone number is not a valid
	// Albanian number.
	ErrInvalidPhone = errors.New("invalid albanian phone number")

	// ErrPhoneTaken is returned when registering an already known phone.
	ErrPhoneTaken = errors.New("phone number already registered")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrEmailTaken is returned when registering an already known email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidOTP is returned when a verification code does not match.
	ErrInvalidOTP = errors.New("invalid verification code")

	// ErrInvalidMagicLink is returned for unknown or already used email
	// login tokens.
	ErrInvalidMagicLink = errors.New("invalid or expired login link")

	// ErrAccountSuspended is returned when a suspended account tries to
	// authenticate.
	ErrAccountSuspended = errors.New("account suspended")

	// ErrInvalidName is returned when a display name is out of range.
	ErrInvalidName = errors.New("name must be between 2 and 100 characters")

	// ErrBioTooLong is returned when a bio exceeds 500 characters.
	ErrBioTooLong = errors.New("bio cannot exceed 500 characters")

	// ErrInvalidDrivingYears is returned for negative driving years.
	ErrInvalidDrivingYears = errors.New("driving years cannot be negative")

	// ErrCarInfoRequired is returned when becoming a driver without car
	// details.
	ErrCarInfoRequired = errors.New("car model and color are required for drivers")

	// ErrInvalidCity is returned for an unknown city code.
	ErrInvalidCity = errors.New("unknown city")

	// ErrSameCities is returned when origin equals destination.
	ErrSameCities = errors.New("origin and destination must be different")

	// ErrDepartureInPast is returned when a ride departs in the past.
	ErrDepartureInPast = errors.New("departure time must be in the future")

	// ErrInvalidSeatsTotal is returned for a capacity out of range.
	ErrInvalidSeatsTotal = errors.New("seats total must be between 1 and 8")

	// ErrInvalidPrice is returned for a per-seat price out of range.
	ErrInvalidPrice = errors.New("invalid price per seat")

	// ErrNotDriver is returned when a non-driver tries to publish a ride.
	ErrNotDriver = errors.New("driver profile required")

	// ErrNotRideOwner is returned when someone other than the ride's driver
	// tries to modify it.
	ErrNotRideOwner = errors.New("not the ride owner")

	// ErrRideNotActive is returned when acting on a cancelled or completed
	// ride.
	ErrRideNotActive = errors.New("ride is not active")

	// ErrSeatsBelowBooked is returned when shrinking capacity below the
	// seats already booked.
	ErrSeatsBelowBooked = errors.New("cannot reduce seats below booked amount")

	// ErrInvalidSeatCount is returned when a booking requests a seat count
	// outside 1..4.
	ErrInvalidSeatCount = errors.New("seats count must be between 1 and 4")

	// ErrOwnRide is returned when a driver tries to book their own ride.
	ErrOwnRide = errors.New("cannot book your own ride")

	// ErrInsufficientSeats is returned when a booking races or exceeds the
	// remaining availability.
	ErrInsufficientSeats = errors.New("not enough seats available")

	// ErrDuplicateBooking is returned when a passenger already holds a
	// confirmed booking on the ride.
	ErrDuplicateBooking = errors.New("already booked this ride")

	// ErrNotBookingParty is returned when the requester is neither the
	// booking's passenger nor the ride's driver.
	ErrNotBookingParty = errors.New("not a party to this booking")

	// ErrCancelWindowClosed is returned inside the 2-hour pre-departure
	// cutoff.
	ErrCancelWindowClosed = errors.New("cannot cancel less than 2 hours before departure")

	// ErrBookingNotActive is returned when cancelling a booking that is no
	// longer confirmed.
	ErrBookingNotActive = errors.New("booking is not confirmed")

	// ErrInvalidScore is returned for a rating score outside 1..5.
	ErrInvalidScore = errors.New("rating must be between 1 and 5")

	// ErrCommentTooLong is returned when a rating comment exceeds 500
	// characters.
	ErrCommentTooLong = errors.New("comment cannot exceed 500 characters")

	// ErrSelfRating is returned when rating yourself.
	ErrSelfRating = errors.New("cannot rate yourself")

	// ErrNotRideParticipant is returned when the rater was not on the ride.
	ErrNotRideParticipant = errors.New("can only rate users from rides you participated in")

	// ErrRideNotCompleted is returned when rating a ride that has neither
	// completed nor departed.
	ErrRideNotCompleted = errors.New("can only rate after the ride is completed")

	// ErrDuplicateRating is returned for a second rating on the same
	// (ride, rater, rated) triple.
	ErrDuplicateRating = errors.New("already rated this user for this ride")

	// ErrInvalidMessage is returned for an empty or oversized chat message.
	ErrInvalidMessage = errors.New("message must be between 1 and 1000 characters")
)
