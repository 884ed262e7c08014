package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "The total number of accounts created",
	})
	logins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "The total number of verified logins",
	})
	ridesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rides_published_total",
		Help: "The total number of rides published by drivers",
	})
	ridesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rides_completed_total",
		Help: "The total number of rides marked completed by their driver",
	})
	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "The total number of confirmed bookings created",
	})
	bookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_cancelled_total",
		Help: "The total number of bookings cancelled",
	})
	ridesCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rides_cancelled_total",
		Help: "The total number of rides cancelled by their driver",
	})
	ratingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ratings_submitted_total",
		Help: "The total number of ratings submitted",
	})
	ratingsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ratings_swept_total",
		Help: "The total number of unpaired ratings flipped visible by the sweeper",
	})
	smsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_sent_total",
		Help: "The total number of SMS handed to the vendor",
	})
	smsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_failed_total",
		Help: "The total number of SMS the vendor rejected",
	})
)
