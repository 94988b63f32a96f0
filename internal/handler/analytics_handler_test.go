package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainops/analytics-api/internal/dto"
	"github.com/trainops/analytics-api/internal/models"
)

type fakeRevenueSrv struct {
	resp       *dto.RevenueAnalyticsResponse
	hit        bool
	err        error
	lastFilter models.RangeFilter
}

func (f *fakeRevenueSrv) Analytics(_ context.Context, filter models.RangeFilter) (*dto.RevenueAnalyticsResponse, bool, error) {
	f.lastFilter = filter
	return f.resp, f.hit, f.err
}

type fakeTrendsSrv struct {
	resp *dto.EnrollmentTrendsResponse
	err  error
}

func (f *fakeTrendsSrv) Trends(context.Context, models.RangeFilter) (*dto.EnrollmentTrendsResponse, bool, error) {
	return f.resp, false, f.err
}

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, rec
}

func TestAnalyticsHandlerRevenue(t *testing.T) {
	revenue := &fakeRevenueSrv{
		resp: &dto.RevenueAnalyticsResponse{LinkedPayments: 10, DroppedPayments: 2},
		hit:  true,
	}
	handler := NewAnalyticsHandler(AnalyticsHandlerParams{Revenue: revenue})

	c, rec := testContext(t, "/analytics/revenue?from=2024-01-01&to=2024-06-30")
	handler.Revenue(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, revenue.lastFilter.From)
	require.NotNil(t, revenue.lastFilter.To)
	assert.Equal(t, "2024-01-01", revenue.lastFilter.From.Format("2006-01-02"))

	var envelope struct {
		Data dto.RevenueAnalyticsResponse `json:"data"`
		Meta map[string]interface{}       `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 10, envelope.Data.LinkedPayments)
	assert.Equal(t, 2, envelope.Data.DroppedPayments)
	assert.Contains(t, envelope.Meta, "processing_time_ms")
}

func TestAnalyticsHandlerRevenueRejectsBadDates(t *testing.T) {
	handler := NewAnalyticsHandler(AnalyticsHandlerParams{Revenue: &fakeRevenueSrv{}})

	c, rec := testContext(t, "/analytics/revenue?from=January")
	handler.Revenue(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = testContext(t, "/analytics/revenue?from=2024-06-01&to=2024-01-01")
	handler.Revenue(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsHandlerRevenueServiceError(t *testing.T) {
	handler := NewAnalyticsHandler(AnalyticsHandlerParams{
		Revenue: &fakeRevenueSrv{err: errors.New("store down")},
	})

	c, rec := testContext(t, "/analytics/revenue")
	handler.Revenue(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAnalyticsHandlerRevenueMissingService(t *testing.T) {
	handler := NewAnalyticsHandler(AnalyticsHandlerParams{})

	c, rec := testContext(t, "/analytics/revenue")
	handler.Revenue(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAnalyticsHandlerEnrollmentTrends(t *testing.T) {
	handler := NewAnalyticsHandler(AnalyticsHandlerParams{
		Enrollments: &fakeTrendsSrv{
			resp: &dto.EnrollmentTrendsResponse{
				Points:           []models.EnrollmentTrendPoint{{Month: "2024-01", ByStatus: map[string]int{"Completed": 3}}},
				TotalEnrollments: 3,
			},
		},
	})

	c, rec := testContext(t, "/analytics/enrollments/trends")
	handler.EnrollmentTrends(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.EnrollmentTrendsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 3, envelope.Data.TotalEnrollments)
	require.Len(t, envelope.Data.Points, 1)
	assert.Equal(t, "2024-01", envelope.Data.Points[0].Month)
}

func TestParseRangeFilterOpenEnded(t *testing.T) {
	c, _ := testContext(t, "/analytics/revenue?from=2024-01-01")

	filter, err := parseRangeFilter(c)

	require.NoError(t, err)
	require.NotNil(t, filter.From)
	assert.Nil(t, filter.To)

	c, _ = testContext(t, "/analytics/revenue")
	filter, err = parseRangeFilter(c)
	require.NoError(t, err)
	assert.True(t, filter.IsZero())
}
