package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentor-insight-api/internal/dto"
	"github.com/noah-isme/mentor-insight-api/internal/middleware"
	appErrors "github.com/noah-isme/mentor-insight-api/pkg/errors"
	"github.com/noah-isme/mentor-insight-api/pkg/response"
)

type dashboardService interface {
	Overview(ctx context.Context) (*dto.DashboardOverviewResponse, bool, error)
	Refresh(ctx context.Context)
}

// DashboardHandler wires the overview service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview godoc
// @Summary Mentor dashboard overview
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	overview, cacheHit, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, overview, meta)
}

// Refresh godoc
// @Summary Regenerate the fallback dataset and drop cached payloads
// @Tags Dashboard
// @Produce json
// @Success 204 "No Content"
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	h.service.Refresh(c.Request.Context())
	response.NoContent(c)
}
