package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"albaniarides/internal/cities"
)

// CitiesHandler serves the static city and route reference data.
type CitiesHandler struct{}

// NewCitiesHandler creates a new CitiesHandler.
func NewCitiesHandler() *CitiesHandler {
	return &CitiesHandler{}
}

// List handles GET /v1/cities
func (h *CitiesHandler) List(c *gin.Context) {
	respondJSON(c, http.StatusOK, gin.H{"cities": cities.All})
}

// Routes handles GET /v1/cities/routes
func (h *CitiesHandler) Routes(c *gin.Context) {
	respondJSON(c, http.StatusOK, gin.H{
		"routes":         cities.PopularRoutes,
		"quick_messages": cities.QuickMessages,
	})
}
