package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trainops/analytics-api/internal/dto"
	"github.com/trainops/analytics-api/internal/middleware"
	"github.com/trainops/analytics-api/internal/models"
	"github.com/trainops/analytics-api/internal/service"
	appErrors "github.com/trainops/analytics-api/pkg/errors"
	"github.com/trainops/analytics-api/pkg/response"
)

type revenueProvider interface {
	Analytics(ctx context.Context, filter models.RangeFilter) (*dto.RevenueAnalyticsResponse, bool, error)
}

type trendsProvider interface {
	Trends(ctx context.Context, filter models.RangeFilter) (*dto.EnrollmentTrendsResponse, bool, error)
}

type geographicProvider interface {
	Analytics(ctx context.Context) (*dto.GeographicAnalyticsResponse, bool, error)
}

type licenseProvider interface {
	Analytics(ctx context.Context) (*dto.LicenseAnalyticsResponse, bool, error)
}

type courseProvider interface {
	Analytics(ctx context.Context, filter models.RangeFilter) (*dto.CourseAnalyticsResponse, bool, error)
}

// AnalyticsHandler exposes the dashboard-ready analytics endpoints.
type AnalyticsHandler struct {
	revenue     revenueProvider
	enrollments trendsProvider
	geographic  geographicProvider
	licenses    licenseProvider
	courses     courseProvider
	metrics     *service.MetricsService
}

// AnalyticsHandlerParams bundles the handler's service dependencies.
type AnalyticsHandlerParams struct {
	Revenue     revenueProvider
	Enrollments trendsProvider
	Geographic  geographicProvider
	Licenses    licenseProvider
	Courses     courseProvider
	Metrics     *service.MetricsService
}

// NewAnalyticsHandler constructs the analytics handler.
func NewAnalyticsHandler(p AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		revenue:     p.Revenue,
		enrollments: p.Enrollments,
		geographic:  p.Geographic,
		licenses:    p.Licenses,
		courses:     p.Courses,
		metrics:     p.Metrics,
	}
}

// Revenue returns revenue analytics, optionally scoped by from/to dates.
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	if h.revenue == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := parseRangeFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	payload, cacheHit, err := h.revenue.Analytics(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, cacheHit, payload)
}

// EnrollmentTrends returns the month-by-status enrollment matrix.
func (h *AnalyticsHandler) EnrollmentTrends(c *gin.Context) {
	if h.enrollments == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := parseRangeFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	payload, cacheHit, err := h.enrollments.Trends(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, cacheHit, payload)
}

// Geographic returns geographic distribution analytics.
func (h *AnalyticsHandler) Geographic(c *gin.Context) {
	if h.geographic == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	payload, cacheHit, err := h.geographic.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, cacheHit, payload)
}

// Licenses returns the license currency report.
func (h *AnalyticsHandler) Licenses(c *gin.Context) {
	if h.licenses == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	payload, cacheHit, err := h.licenses.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, cacheHit, payload)
}

// Courses returns per-course enrollment and revenue rollups.
func (h *AnalyticsHandler) Courses(c *gin.Context) {
	if h.courses == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := parseRangeFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	payload, cacheHit, err := h.courses.Analytics(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, cacheHit, payload)
}

// System returns instrumentation metrics snapshots.
func (h *AnalyticsHandler) System(c *gin.Context) {
	if h.metrics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	respond(c, start, false, h.metrics.Snapshot())
}

func respond(c *gin.Context, start time.Time, cacheHit bool, payload interface{}) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, payload, nil, meta)
}
