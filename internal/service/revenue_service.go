package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trainops/analytics-api/internal/aggregate"
	"github.com/trainops/analytics-api/internal/dto"
	"github.com/trainops/analytics-api/internal/enrich"
	"github.com/trainops/analytics-api/internal/index"
	"github.com/trainops/analytics-api/internal/models"
)

// RevenueServiceConfig tunes revenue analytics behaviour.
type RevenueServiceConfig struct {
	CacheTTL        time.Duration
	MovingAvgWindow int
}

// RevenueService computes revenue analytics over the full payment table.
type RevenueService struct {
	data    *Datasets
	cache   *QueryCache
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     RevenueServiceConfig
}

// NewRevenueService constructs the service with sane defaults.
func NewRevenueService(data *Datasets, cache *QueryCache, metrics *MetricsService, logger *zap.Logger, cfg RevenueServiceConfig) *RevenueService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.MovingAvgWindow <= 0 {
		cfg.MovingAvgWindow = aggregate.DefaultMovingAvgWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RevenueService{data: data, cache: cache, metrics: metrics, logger: logger, now: time.Now, cfg: cfg}
}

// Analytics returns revenue rollups for the optional date range. The
// boolean reports whether the payload came from cache.
func (s *RevenueService) Analytics(ctx context.Context, filter models.RangeFilter) (*dto.RevenueAnalyticsResponse, bool, error) {
	key := rangeCacheKey("revenue", filter)
	value, hit, err := s.cache.GetOrCompute(ctx, key, s.cfg.CacheTTL, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, filter)
	})
	if err != nil {
		return nil, false, err
	}
	return value.(*dto.RevenueAnalyticsResponse), hit, nil
}

func (s *RevenueService) compute(ctx context.Context, filter models.RangeFilter) (*dto.RevenueAnalyticsResponse, error) {
	start := time.Now()
	payments, err := s.data.AllPayments(ctx, filter)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.data.AllEnrollments(ctx, models.RangeFilter{})
	if err != nil {
		return nil, err
	}
	offerings, err := s.data.AllOfferings(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.data.AllCourses(ctx)
	if err != nil {
		return nil, err
	}
	participants, err := s.data.AllParticipants(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("revenue_dataset", time.Since(start))
	}

	byEnrollment := index.Unique(enrollments, func(e models.Enrollment) models.EnrollmentID { return e.ID })
	byParticipant := index.Unique(participants, func(p models.Participant) models.ParticipantID { return p.MemberNumber })
	byOffering := index.Unique(offerings, func(o models.CourseOffering) models.OfferingID { return o.ID })
	byCourse := index.Unique(courses, func(c models.Course) models.CourseID { return c.ID })

	enriched, dropped := enrich.Payments(payments, byEnrollment, byParticipant, byOffering, byCourse)
	if dropped > 0 {
		s.logger.Warn("payments dropped during enrichment",
			zap.Int("dropped", dropped),
			zap.Int("total", len(payments)))
	}

	byYear, err := aggregate.RevenueByBucket(payments, aggregate.ByYear)
	if err != nil {
		return nil, err
	}
	monthly, err := aggregate.RevenueByBucket(payments, aggregate.ByMonth)
	if err != nil {
		return nil, err
	}

	return &dto.RevenueAnalyticsResponse{
		ByProgramType:   aggregate.RevenueByProgramType(enriched),
		ByYear:          byYear,
		Monthly:         monthly,
		Cumulative:      aggregate.Cumulative(monthly),
		MovingAverage:   aggregate.MovingAverage(monthly, s.cfg.MovingAvgWindow),
		LinkedPayments:  len(enriched),
		DroppedPayments: dropped,
	}, nil
}
