// Package web serves the HTML pages. The pages read through the same
// services as the JSON API; forms submit to the API endpoints.
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"albaniarides/internal/cities"
	"albaniarides/internal/service"
)

// Server renders the public HTML pages.
type Server struct {
	rides        *service.RideService
	templateGlob string
}

// NewServer creates a web Server loading templates from glob.
func NewServer(rides *service.RideService, templateGlob string) *Server {
	return &Server{rides: rides, templateGlob: templateGlob}
}

// Register loads the templates and mounts the page routes on the router.
func (s *Server) Register(router *gin.Engine) {
	router.LoadHTMLGlob(s.templateGlob)

	router.GET("/", s.home)
	router.GET("/search", s.search)
	router.GET("/rides/:id", s.rideDetail)
	router.GET("/login", s.login)
	router.GET("/profile", s.profile)
	router.GET("/trips", s.trips)
}

func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Cities": cities.All,
		"Routes": cities.PopularRoutes,
	})
}

func (s *Server) search(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	params := service.SearchParams{
		OriginCity:      origin,
		DestinationCity: destination,
		TimePeriod:      c.Query("time_period"),
		SortByPrice:     c.Query("sort") == "price",
		Limit:           20,
	}
	if date := c.Query("date"); date != "" {
		if d, err := time.ParseInLocation("2006-01-02", date, time.Local); err == nil {
			params.Date = d
		}
	}

	results, err := s.rides.SearchRides(c.Request.Context(), params)
	if err != nil {
		c.HTML(http.StatusOK, "rides.html", gin.H{
			"Error":       "No rides found for this route.",
			"Origin":      cities.DisplayName(origin),
			"Destination": cities.DisplayName(destination),
		})
		return
	}

	c.HTML(http.StatusOK, "rides.html", gin.H{
		"Origin":      cities.DisplayName(origin),
		"Destination": cities.DisplayName(destination),
		"Results":     results,
	})
}

func (s *Server) rideDetail(c *gin.Context) {
	result, err := s.rides.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "rides.html", gin.H{"Error": "Ride not found."})
		return
	}

	c.HTML(http.StatusOK, "ride.html", gin.H{
		"Ride":        result.Ride,
		"Driver":      result.Driver,
		"Origin":      cities.DisplayName(result.Ride.OriginCity),
		"Destination": cities.DisplayName(result.Ride.DestinationCity),
	})
}

func (s *Server) login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

// The profile and trips pages load the signed-in user's data through the
// JSON API with the browser-held token, same as the booking form.
func (s *Server) profile(c *gin.Context) {
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Cities": cities.All,
	})
}

func (s *Server) trips(c *gin.Context) {
	c.HTML(http.StatusOK, "trips.html", nil)
}
