package handler

import (
	"net/http"

	"storefront/internal/service"
	"storefront/pkg/response"

	"github.com/gin-gonic/gin"
)

type TrackHandler struct {
	trackingService service.TrackingService
}

func NewTrackHandler(trackingService service.TrackingService) *TrackHandler {
	return &TrackHandler{trackingService: trackingService}
}

// RegisterRoutes binds the ingestion endpoint. It is called by the storefront
// itself, so there is no auth on it.
func (h *TrackHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/track", h.Track)
}

// Track ingests one behavioral event from the storefront
// @Summary      Track storefront event
// @Description  Records a single analytics event (page view, product view, cart action, checkout step) for the funnel reports
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        payload  body      service.TrackEventRequest  true  "Event Payload"
// @Success      202      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/track [post]
func (h *TrackHandler) Track(c *gin.Context) {
	var req service.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.trackingService.Capture(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusAccepted, response.Success(http.StatusAccepted, "recorded"))
}
