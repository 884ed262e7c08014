package tests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"albaniarides/internal/domain"
	"albaniarides/internal/service"
	"albaniarides/internal/web"
)

func newWebFixture(t *testing.T) (*gin.Engine, *MockRideRepository, *MockUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rideRepo := NewMockRideRepository()
	bookingRepo := NewMockBookingRepository()
	userRepo := NewMockUserRepository()
	rideService := service.NewRideService(rideRepo, bookingRepo, userRepo)

	router := gin.New()
	server := web.NewServer(rideService, "../../web/templates/*.html")
	server.Register(router)
	return router, rideRepo, userRepo
}

func getPage(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestWebPages_Render(t *testing.T) {
	router, _, _ := newWebFixture(t)

	for _, path := range []string{"/", "/login", "/profile", "/trips"} {
		if rec := getPage(t, router, path); rec.Code != http.StatusOK {
			t.Errorf("GET %s returned %d", path, rec.Code)
		}
	}
}

func TestWebRideDetail_ShowsBookingForm(t *testing.T) {
	router, rideRepo, userRepo := newWebFixture(t)

	userRepo.AddUser(&domain.User{
		ID: "d1", Name: "Altin", IsDriver: true,
		CarModel: "Benz C220", CarColor: "e zeze", Rating: 4.8,
	})
	rideRepo.AddRide(&domain.Ride{
		ID: "r1", DriverID: "d1",
		OriginCity: "TIA", DestinationCity: "DUR",
		DepartureTime: time.Now().Add(24 * time.Hour),
		SeatsTotal:    4, SeatsAvailable: 3,
		PricePerSeat: 700, Status: domain.RideStatusActive,
	})

	rec := getPage(t, router, "/rides/r1")
	if rec.Code != http.StatusOK {
		t.Fatalf("ride page returned %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "book-form") {
		t.Error("ride page is missing the booking form")
	}
	if !strings.Contains(body, "/v1/bookings") {
		t.Error("booking form does not submit to the bookings API")
	}
}
