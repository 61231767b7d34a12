package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sassil1/petmap/internal/geo"
)

// AggregateHandler serves the heatmap and cluster views
type AggregateHandler struct {
	service AggregateService
}

// Service interface for dependency injection
type AggregateService interface {
	HeatCells(level int) []geo.HeatCell
	Clusters(precision int) []geo.Cluster
}

// NewAggregateHandler creates a new aggregate handler
func NewAggregateHandler(svc AggregateService) *AggregateHandler {
	return &AggregateHandler{service: svc}
}

// Heatmap handles GET /api/pets/heatmap requests
//
//	@Summary	Density heat cells
//	@Produce	json
//	@Param		level	query		int	false	"S2 cell level (default 13)"
//	@Success	200		{array}		geo.HeatCell
//	@Failure	400		{object}	map[string]string
//	@Router		/api/pets/heatmap [get]
func (h *AggregateHandler) Heatmap(c *gin.Context) {
	level := geo.DefaultHeatLevel
	if levelStr := c.Query("level"); levelStr != "" {
		var err error
		level, err = strconv.Atoi(levelStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level format"})
			return
		}
	}

	c.JSON(http.StatusOK, h.service.HeatCells(level))
}

// Clusters handles GET /api/pets/clusters requests
//
//	@Summary	Clustered markers
//	@Produce	json
//	@Param		precision	query		int	false	"Geohash precision (default 6)"
//	@Success	200			{array}		geo.Cluster
//	@Failure	400			{object}	map[string]string
//	@Router		/api/pets/clusters [get]
func (h *AggregateHandler) Clusters(c *gin.Context) {
	precision := geo.DefaultClusterPrecision
	if precStr := c.Query("precision"); precStr != "" {
		var err error
		precision, err = strconv.Atoi(precStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid precision format"})
			return
		}
	}

	c.JSON(http.StatusOK, h.service.Clusters(precision))
}
