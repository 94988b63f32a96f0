package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trainops/analytics-api/internal/aggregate"
	"github.com/trainops/analytics-api/internal/dto"
	"github.com/trainops/analytics-api/internal/index"
	"github.com/trainops/analytics-api/internal/models"
)

// CourseService computes per-course enrollment and revenue rollups.
type CourseService struct {
	data     *Datasets
	cache    *QueryCache
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
}

func NewCourseService(data *Datasets, cache *QueryCache, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *CourseService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{data: data, cache: cache, metrics: metrics, logger: logger, cacheTTL: cacheTTL}
}

// Analytics returns the per-course rollup table. The optional date range
// bounds the payments folded into revenue figures.
func (s *CourseService) Analytics(ctx context.Context, filter models.RangeFilter) (*dto.CourseAnalyticsResponse, bool, error) {
	key := rangeCacheKey("courses", filter)
	value, hit, err := s.cache.GetOrCompute(ctx, key, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, filter)
	})
	if err != nil {
		return nil, false, err
	}
	return value.(*dto.CourseAnalyticsResponse), hit, nil
}

func (s *CourseService) compute(ctx context.Context, filter models.RangeFilter) (*dto.CourseAnalyticsResponse, error) {
	start := time.Now()
	courses, err := s.data.AllCourses(ctx)
	if err != nil {
		return nil, err
	}
	offerings, err := s.data.AllOfferings(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.data.AllEnrollments(ctx, models.RangeFilter{})
	if err != nil {
		return nil, err
	}
	payments, err := s.data.AllPayments(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("course_dataset", time.Since(start))
	}

	byOffering := index.Unique(offerings, func(o models.CourseOffering) models.OfferingID { return o.ID })
	paymentsByEnrollment := index.Grouped(payments, func(p models.Payment) models.EnrollmentID { return p.EnrollmentID })

	resp := &dto.CourseAnalyticsResponse{
		Courses: aggregate.CourseRollup(courses, byOffering, enrollments, paymentsByEnrollment),
	}
	for _, c := range courses {
		if c.Status == models.CourseStatusActive {
			resp.ActiveCount++
		}
		if c.IsAbroad() {
			resp.AbroadCount++
		}
	}
	return resp, nil
}
