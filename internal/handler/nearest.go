package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sassil1/petmap/internal/geo"
	"github.com/sassil1/petmap/internal/models"
)

// maxNearestLimit caps the k query parameter.
const maxNearestLimit = 100

// NearestHandler serves the ranked nearest view
type NearestHandler struct {
	service ProximityService
}

// Service interface for dependency injection
type ProximityService interface {
	Nearest(reference *models.Coordinate, k int) []models.RankedPoint
}

// NewNearestHandler creates a new nearest handler
func NewNearestHandler(svc ProximityService) *NearestHandler {
	return &NearestHandler{service: svc}
}

// Nearest handles GET /api/pets/nearest requests. The reference position
// comes from the caller's geolocation; when it is missing or unusable the
// response is a human-readable 400, never a crash.
//
//	@Summary	Nearest pets to a position
//	@Produce	json
//	@Param		lat	query		number	true	"Reference latitude"
//	@Param		lon	query		number	true	"Reference longitude"
//	@Param		k	query		int		false	"Result count (default 25, max 100)"
//	@Success	200	{array}		models.RankedPoint
//	@Failure	400	{object}	map[string]string
//	@Router		/api/pets/nearest [get]
func (h *NearestHandler) Nearest(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	reference := models.Coordinate{Latitude: lat, Longitude: lon}
	if !reference.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	k := geo.DefaultNearestLimit
	if kStr := c.Query("k"); kStr != "" {
		k, err = strconv.Atoi(kStr)
		if err != nil || k <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid k format"})
			return
		}
		if k > maxNearestLimit {
			k = maxNearestLimit
		}
	}

	c.JSON(http.StatusOK, h.service.Nearest(&reference, k))
}
