package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"albaniarides/internal/cities"
	"albaniarides/internal/crypto"
	"albaniarides/internal/domain"
	"albaniarides/internal/sms"
)

// NotificationService composes and sends transactional SMS. Every send is
// best-effort: failures are logged and counted, never returned to callers,
// so a vendor outage cannot fail a booking.
type NotificationService struct {
	sender sms.Sender
	cipher *crypto.PhoneCipher
	log    *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(sender sms.Sender, cipher *crypto.PhoneCipher, log *zap.Logger) *NotificationService {
	return &NotificationService{sender: sender, cipher: cipher, log: log}
}

// SendOTP delivers a verification code.
func (s *NotificationService) SendOTP(ctx context.Context, phone, code string) {
	s.send(ctx, phone, fmt.Sprintf("Your AlbaniaRides verification code is %s. It expires in 5 minutes.", code))
}

// NotifyBookingCreated messages both parties with each other's contact
// details and the pickup point.
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, booking *domain.Booking, ride *domain.Ride, driver, passenger *domain.User) {
	driverPhone := s.decrypt(driver)
	passengerPhone := s.decrypt(passenger)
	if driverPhone == "" || passengerPhone == "" {
		return
	}

	route := cities.DisplayName(ride.OriginCity) + "-" + cities.DisplayName(ride.DestinationCity)

	s.send(ctx, driverPhone, fmt.Sprintf(
		"New booking! %s booked %d seat(s) for your %s ride. Contact: %s",
		passenger.Name, booking.SeatsCount, route, passengerPhone))

	s.send(ctx, passengerPhone, fmt.Sprintf(
		"Booking confirmed! Driver %s will pick you up at %s. Contact: %s. Payment: %d ALL cash.",
		driver.Name, ride.PickupPoint, driverPhone, booking.TotalPrice))
}

// NotifyBookingCancelled messages the counter-party about a single-booking
// cancellation. cancelledByPassenger selects the wording.
func (s *NotificationService) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking, ride *domain.Ride, driver, passenger *domain.User, cancelledByPassenger bool) {
	route := cities.DisplayName(ride.OriginCity) + "-" + cities.DisplayName(ride.DestinationCity)

	if cancelledByPassenger {
		if phone := s.decrypt(driver); phone != "" {
			s.send(ctx, phone, fmt.Sprintf(
				"Booking cancelled: %s cancelled %d seat(s) for your %s ride.",
				passenger.Name, booking.SeatsCount, route))
		}
		return
	}

	if phone := s.decrypt(passenger); phone != "" {
		s.send(ctx, phone, fmt.Sprintf(
			"Booking cancelled: driver %s cancelled your booking on the %s ride. Please find another ride.",
			driver.Name, route))
	}
}

// NotifyRideCancelled messages every affected passenger after a driver
// cancels a whole ride.
func (s *NotificationService) NotifyRideCancelled(ctx context.Context, ride *domain.Ride, driver *domain.User, passengers []*domain.User) {
	route := cities.DisplayName(ride.OriginCity) + "-" + cities.DisplayName(ride.DestinationCity)
	body := fmt.Sprintf("Ride cancelled: driver %s cancelled the %s ride. Please find another ride.", driver.Name, route)

	for _, p := range passengers {
		if phone := s.decrypt(p); phone != "" {
			s.send(ctx, phone, body)
		}
	}
}

// NotifyRideCompleted invites every passenger to rate the driver.
func (s *NotificationService) NotifyRideCompleted(ctx context.Context, ride *domain.Ride, driver *domain.User, passengers []*domain.User) {
	route := cities.DisplayName(ride.OriginCity) + "-" + cities.DisplayName(ride.DestinationCity)
	body := fmt.Sprintf("Your %s ride with %s is complete. Rate your experience on AlbaniaRides!", route, driver.Name)

	for _, p := range passengers {
		if phone := s.decrypt(p); phone != "" {
			s.send(ctx, phone, body)
		}
	}
}

// SendMagicLink delivers an email login link. Email delivery runs through
// the same best-effort path; in test mode the link lands in the log.
func (s *NotificationService) SendMagicLink(ctx context.Context, email, link string) {
	// No email vendor is wired yet; the link is logged for dev flows and
	// surfaced through the SMS sender in test mode.
	s.log.Info("magic link issued", zap.String("email", email), zap.String("link", link))
}

func (s *NotificationService) decrypt(u *domain.User) string {
	if u == nil || u.PhoneEncrypted == "" {
		return ""
	}
	phone, err := s.cipher.Decrypt(u.PhoneEncrypted)
	if err != nil {
		s.log.Warn("failed to decrypt phone for notification", zap.String("user_id", u.ID), zap.Error(err))
		return ""
	}
	return phone
}

func (s *NotificationService) send(ctx context.Context, to, body string) {
	if err := s.sender.Send(ctx, to, body); err != nil {
		smsFailed.Inc()
		s.log.Warn("sms delivery failed", zap.String("to", to), zap.Error(err))
		return
	}
	smsSent.Inc()
}
