package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sassil1/petmap/internal/service"
)

// RefreshHandler triggers pipeline runs
type RefreshHandler struct {
	service RefreshService
	logger  zerolog.Logger
}

// Service interface for dependency injection
type RefreshService interface {
	Refresh(ctx context.Context) error
}

// NewRefreshHandler creates a new refresh handler
func NewRefreshHandler(svc RefreshService, logger zerolog.Logger) *RefreshHandler {
	return &RefreshHandler{service: svc, logger: logger}
}

// Refresh handles POST /api/pets/refresh requests. The run is detached
// from the request: it keeps going after the 202 and is superseded by any
// newer trigger.
//
//	@Summary	Trigger a feed refresh
//	@Produce	json
//	@Success	202	{object}	map[string]string
//	@Router		/api/pets/refresh [post]
func (h *RefreshHandler) Refresh(c *gin.Context) {
	go func() {
		if err := h.service.Refresh(context.Background()); err != nil && !errors.Is(err, service.ErrSuperseded) {
			h.logger.Error().Err(err).Msg("Triggered refresh failed")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "refresh started"})
}
