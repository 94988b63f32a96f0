package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trainops/analytics-api/internal/dto"
	appErrors "github.com/trainops/analytics-api/pkg/errors"
	"github.com/trainops/analytics-api/pkg/response"
)

type summaryProvider interface {
	Summary(ctx context.Context) (*dto.DashboardSummaryResponse, bool, error)
}

// DashboardHandler serves the cross-dataset landing summary.
type DashboardHandler struct {
	dashboard summaryProvider
}

func NewDashboardHandler(dashboard summaryProvider) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary returns the dashboard overview.
func (h *DashboardHandler) Summary(c *gin.Context) {
	if h.dashboard == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	payload, cacheHit, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, cacheHit, payload)
}
