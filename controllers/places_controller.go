package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sehatmand-backend/config"
	"sehatmand-backend/models"
	"sehatmand-backend/services"
)

type PlacesController struct {
	placesService *services.PlacesService
	defaultRadius float64
}

func NewPlacesController(placesService *services.PlacesService, cfg *config.Config) *PlacesController {
	return &PlacesController{
		placesService: placesService,
		defaultRadius: cfg.Places.DefaultRadius,
	}
}

// NearbyFacilities handles GET /api/places/nearby?lat=..&lng=..&radius=..
// An empty result set is a ZERO_RESULTS success, not an error.
func (pc *PlacesController) NearbyFacilities(c *gin.Context) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	radius, radErr := strconv.ParseFloat(c.DefaultQuery("radius", strconv.FormatFloat(pc.defaultRadius, 'f', -1, 64)), 64)
	if latErr != nil || lngErr != nil || radErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat, lng, radius must be numbers"})
		return
	}

	results, err := pc.placesService.FindNearby(c.Request.Context(), lat, lng, radius)
	if err != nil {
		if errors.Is(err, services.ErrAllMirrorsFailed) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := "OK"
	if len(results) == 0 {
		status = "ZERO_RESULTS"
	}
	c.JSON(http.StatusOK, models.PlacesResponse{Status: status, Results: results})
}
