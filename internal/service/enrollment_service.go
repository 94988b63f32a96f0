package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trainops/analytics-api/internal/aggregate"
	"github.com/trainops/analytics-api/internal/dto"
	"github.com/trainops/analytics-api/internal/models"
)

// EnrollmentService computes the month-by-status enrollment trend matrix.
type EnrollmentService struct {
	data     *Datasets
	cache    *QueryCache
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
}

func NewEnrollmentService(data *Datasets, cache *QueryCache, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *EnrollmentService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{data: data, cache: cache, metrics: metrics, logger: logger, cacheTTL: cacheTTL}
}

// Trends returns the dense month-by-status enrollment matrix for the
// optional date range.
func (s *EnrollmentService) Trends(ctx context.Context, filter models.RangeFilter) (*dto.EnrollmentTrendsResponse, bool, error) {
	key := rangeCacheKey("enrollment-trends", filter)
	value, hit, err := s.cache.GetOrCompute(ctx, key, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, filter)
	})
	if err != nil {
		return nil, false, err
	}
	return value.(*dto.EnrollmentTrendsResponse), hit, nil
}

func (s *EnrollmentService) compute(ctx context.Context, filter models.RangeFilter) (*dto.EnrollmentTrendsResponse, error) {
	start := time.Now()
	enrollments, err := s.data.AllEnrollments(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("enrollment_dataset", time.Since(start))
	}

	points := aggregate.EnrollmentTrends(enrollments)
	total := 0
	for _, p := range points {
		for _, n := range p.ByStatus {
			total += n
		}
	}
	if total < len(enrollments) {
		s.logger.Debug("enrollments excluded from trends for unparseable dates",
			zap.Int("excluded", len(enrollments)-total))
	}

	return &dto.EnrollmentTrendsResponse{Points: points, TotalEnrollments: total}, nil
}
