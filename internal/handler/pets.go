package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sassil1/petmap/internal/models"
	"github.com/sassil1/petmap/internal/service"
)

// PetsHandler serves the located point set
type PetsHandler struct {
	service PetsService
}

// Service interface for dependency injection
type PetsService interface {
	Points() []models.LocatedPoint
	Status() service.Status
}

// PetsResponse is the envelope the rendering layer consumes: the ordered
// point list plus the loading/error flags.
type PetsResponse struct {
	Points    []models.LocatedPoint `json:"points"`
	UpdatedAt time.Time             `json:"updated_at"`
	Loading   bool                  `json:"loading"`
	LastError string                `json:"last_error,omitempty"`
	Stats     models.RunStats       `json:"stats"`
}

// NewPetsHandler creates a new pets handler
func NewPetsHandler(svc PetsService) *PetsHandler {
	return &PetsHandler{service: svc}
}

// List handles GET /api/pets requests
//
//	@Summary	Located pets
//	@Produce	json
//	@Success	200	{object}	handler.PetsResponse
//	@Router		/api/pets [get]
func (h *PetsHandler) List(c *gin.Context) {
	status := h.service.Status()
	c.JSON(http.StatusOK, PetsResponse{
		Points:    h.service.Points(),
		UpdatedAt: status.UpdatedAt,
		Loading:   status.Loading,
		LastError: status.LastError,
		Stats:     status.Stats,
	})
}
