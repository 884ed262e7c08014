// Command seed fills the database with Albanian test data: drivers with
// cars, rides on the popular routes over the next two weeks, confirmed
// bookings with consistent seat accounting, paired ratings and booking
// messages. Intended for local development and demos only.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"albaniarides/internal/app"
	"albaniarides/internal/cities"
	"albaniarides/internal/config"
	"albaniarides/internal/crypto"
	"albaniarides/internal/domain"
	"albaniarides/internal/repository/postgres"
)

var firstNames = []string{
	"Arben", "Blerta", "Dritan", "Elona", "Fatos", "Gentiana", "Ilir",
	"Jonida", "Klodian", "Luljeta", "Mërgim", "Nertila", "Orges", "Pranvera",
	"Qemal", "Rovena", "Saimir", "Teuta", "Urim", "Valbona", "Xhevahir",
	"Ylli", "Zamira", "Adriatik", "Besa", "Çlirim", "Diellza", "Endrit",
	"Flutura", "Gëzim",
}

var lastNames = []string{
	"Hoxha", "Shehu", "Prifti", "Duka", "Leka", "Basha", "Kola", "Rama",
	"Berisha", "Meta", "Gjoni", "Doda", "Çela", "Kurti", "Marku",
}

var cars = []struct{ model, color string }{
	{"Mercedes-Benz C220", "silver"},
	{"Volkswagen Golf 7", "black"},
	{"Audi A4", "grey"},
	{"BMW 320d", "blue"},
	{"Fiat Tipo", "white"},
	{"Škoda Octavia", "red"},
	{"Opel Astra", "green"},
}

var pickupPoints = []string{
	"Main bus terminal", "City center, near the clock tower",
	"Shell petrol station on the ring road", "University entrance",
}

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer db.Close()

	cipher, err := crypto.NewPhoneCipher(cfg.Auth.PhoneKey)
	if err != nil {
		log.Fatal("cipher init failed", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(42))

	userRepo := postgres.NewUserRepository(db)
	rideRepo := postgres.NewRideRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	// Users: first half are drivers.
	var drivers, passengers []*domain.User
	for i := 0; i < 30; i++ {
		phone := fmt.Sprintf("+35569%07d", 1000000+i)
		encrypted, err := cipher.Encrypt(phone)
		if err != nil {
			log.Fatal("encrypt phone failed", zap.Error(err))
		}

		user := &domain.User{
			ID:             uuid.New().String(),
			Name:           firstNames[i%len(firstNames)] + " " + lastNames[i%len(lastNames)],
			PhoneHash:      crypto.HashPhone(phone),
			PhoneEncrypted: encrypted,
			City:           cities.All[i%len(cities.All)].Name,
			Rating:         domain.DefaultRating,
			VerifiedAt:     time.Now(),
			CreatedAt:      time.Now(),
		}
		if i < 15 {
			car := cars[i%len(cars)]
			user.IsDriver = true
			user.CarModel = car.model
			user.CarColor = car.color
			user.DrivingYears = 2 + rng.Intn(20)
			user.Bio = "Regular on this route, happy to share the drive."
		}

		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal("create user failed", zap.Error(err))
		}
		if user.IsDriver {
			drivers = append(drivers, user)
		} else {
			passengers = append(passengers, user)
		}
	}
	log.Info("seeded users", zap.Int("drivers", len(drivers)), zap.Int("passengers", len(passengers)))

	// Rides on the popular routes over the next 14 days.
	var rides []*domain.Ride
	for day := 0; day < 14; day++ {
		for _, route := range cities.PopularRoutes {
			driver := drivers[rng.Intn(len(drivers))]
			departure := time.Now().AddDate(0, 0, day+1).
				Truncate(time.Hour).
				Add(time.Duration(6+rng.Intn(14)) * time.Hour)

			seats := 2 + rng.Intn(3)
			ride := &domain.Ride{
				ID:              uuid.New().String(),
				DriverID:        driver.ID,
				OriginCity:      route.From,
				DestinationCity: route.To,
				DepartureTime:   departure,
				PickupPoint:     pickupPoints[rng.Intn(len(pickupPoints))],
				SeatsTotal:      seats,
				SeatsAvailable:  seats,
				PricePerSeat:    500 + 100*rng.Intn(20),
				LuggageSpace:    rng.Intn(2) == 0,
				SmokingAllowed:  rng.Intn(5) == 0,
				Status:          domain.RideStatusActive,
				CreatedAt:       time.Now(),
			}
			if err := rideRepo.Create(ctx, ride); err != nil {
				log.Fatal("create ride failed", zap.Error(err))
			}
			rides = append(rides, ride)
		}
	}
	log.Info("seeded rides", zap.Int("count", len(rides)))

	// Bookings on roughly half the rides. Seats go through ReserveSeats so
	// availability stays consistent with the confirmed bookings.
	var bookings []*domain.Booking
	for _, ride := range rides {
		if rng.Intn(2) == 0 {
			continue
		}
		passenger := passengers[rng.Intn(len(passengers))]
		seats := 1 + rng.Intn(2)

		reserved, err := rideRepo.ReserveSeats(ctx, ride.ID, seats)
		if err != nil {
			log.Fatal("reserve seats failed", zap.Error(err))
		}
		if !reserved {
			continue
		}

		booking := &domain.Booking{
			ID:          uuid.New().String(),
			RideID:      ride.ID,
			PassengerID: passenger.ID,
			SeatsCount:  seats,
			TotalPrice:  seats * ride.PricePerSeat,
			Status:      domain.BookingStatusConfirmed,
			CreatedAt:   time.Now(),
		}
		if err := bookingRepo.Create(ctx, booking); err != nil {
			log.Fatal("create booking failed", zap.Error(err))
		}
		bookings = append(bookings, booking)

		message := &domain.Message{
			ID:         uuid.New().String(),
			BookingID:  booking.ID,
			SenderID:   passenger.ID,
			ReceiverID: ride.DriverID,
			Content:    cities.QuickMessages[rng.Intn(len(cities.QuickMessages))],
			CreatedAt:  time.Now(),
		}
		if err := messageRepo.Create(ctx, message); err != nil {
			log.Fatal("create message failed", zap.Error(err))
		}
	}
	log.Info("seeded bookings", zap.Int("count", len(bookings)))

	// A few completed rides in the past with paired visible ratings.
	rated := 0
	for i := 0; i < 10 && i < len(bookings); i++ {
		booking := bookings[i]
		ride, err := rideRepo.GetByID(ctx, booking.RideID)
		if err != nil {
			log.Fatal("load ride failed", zap.Error(err))
		}

		for _, pair := range [][2]string{
			{booking.PassengerID, ride.DriverID},
			{ride.DriverID, booking.PassengerID},
		} {
			rating := &domain.Rating{
				ID:          uuid.New().String(),
				RideID:      ride.ID,
				RaterID:     pair[0],
				RatedUserID: pair[1],
				Score:       4 + rng.Intn(2),
				Comment:     "Faleminderit, udhëtim i këndshëm!",
				IsVisible:   true,
				CreatedAt:   time.Now(),
			}
			if err := ratingRepo.Create(ctx, rating); err != nil {
				log.Fatal("create rating failed", zap.Error(err))
			}
			if err := ratingRepo.RecomputeUserRating(ctx, pair[1]); err != nil {
				log.Fatal("recompute rating failed", zap.Error(err))
			}
			rated++
		}
	}
	log.Info("seeded ratings", zap.Int("count", rated))
	log.Info("done")
}
