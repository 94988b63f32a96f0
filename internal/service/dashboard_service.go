package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trainops/analytics-api/internal/aggregate"
	"github.com/trainops/analytics-api/internal/dto"
	"github.com/trainops/analytics-api/internal/models"
	"github.com/trainops/analytics-api/internal/repository"
)

type participantCounter interface {
	Count(ctx context.Context, conditions []repository.Condition) (int, error)
}

type courseCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type enrollmentCounter interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type licenseCounter interface {
	Count(ctx context.Context) (int, error)
}

// DashboardService assembles the cross-dataset landing summary. Counts come
// straight from the store; revenue and distribution figures come from the
// bulk datasets.
type DashboardService struct {
	data         *Datasets
	participants participantCounter
	courses      courseCounter
	enrollments  enrollmentCounter
	licenses     licenseCounter
	cache        *QueryCache
	redis        *CacheService
	metrics      *MetricsService
	logger       *zap.Logger
	now          func() time.Time
	cacheTTL     time.Duration
}

// DashboardServiceParams bundles the dashboard dependencies.
type DashboardServiceParams struct {
	Data         *Datasets
	Participants participantCounter
	Courses      courseCounter
	Enrollments  enrollmentCounter
	Licenses     licenseCounter
	Cache        *QueryCache
	Redis        *CacheService
	Metrics      *MetricsService
	Logger       *zap.Logger
	CacheTTL     time.Duration
}

func NewDashboardService(p DashboardServiceParams) *DashboardService {
	if p.CacheTTL <= 0 {
		p.CacheTTL = 5 * time.Minute
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return &DashboardService{
		data:         p.Data,
		participants: p.Participants,
		courses:      p.Courses,
		enrollments:  p.Enrollments,
		licenses:     p.Licenses,
		cache:        p.Cache,
		redis:        p.Redis,
		metrics:      p.Metrics,
		logger:       p.Logger,
		now:          time.Now,
		cacheTTL:     p.CacheTTL,
	}
}

// Summary returns the dashboard overview.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummaryResponse, bool, error) {
	key := makeCacheKey("dashboard")
	value, hit, err := s.cache.GetOrCompute(ctx, key, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx)
	})
	if err != nil {
		return nil, false, err
	}
	return value.(*dto.DashboardSummaryResponse), hit, nil
}

const dashboardRedisKey = "analytics:dashboard:summary"

// compute builds the summary, consulting the shared redis cache so a warm
// summary survives process restarts.
func (s *DashboardService) compute(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	if s.redis.Enabled() {
		cached := &dto.DashboardSummaryResponse{}
		if hit, err := s.redis.Get(ctx, dashboardRedisKey, cached); err == nil && hit {
			return cached, nil
		}
	}

	start := time.Now()
	resp := &dto.DashboardSummaryResponse{}

	total, err := s.participants.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	resp.TotalParticipants = total

	active, err := s.courses.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	resp.ActiveCourses = active

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth, err := s.enrollments.CountSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	resp.EnrollmentsThisMonth = thisMonth

	licensed, err := s.licenses.Count(ctx)
	if err != nil {
		return nil, err
	}
	resp.LicensedProfessionals = licensed

	payments, err := s.data.AllPayments(ctx, models.RangeFilter{})
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		resp.TotalRevenue += aggregate.ParseCurrency(p.Amount)
		if p.Approved() {
			resp.PaymentStatus.Completed++
		} else {
			resp.PaymentStatus.Pending++
		}
	}

	participants, err := s.data.AllParticipants(ctx)
	if err != nil {
		return nil, err
	}
	states := map[string]struct{}{}
	countries := map[string]struct{}{}
	for _, p := range participants {
		if v := strings.TrimSpace(p.StateProvince); v != "" {
			states[strings.ToLower(v)] = struct{}{}
		}
		if v := strings.TrimSpace(p.Country); v != "" {
			countries[strings.ToLower(v)] = struct{}{}
		}
	}
	resp.GeographicReach = dto.GeographicReach{States: len(states), Countries: len(countries)}

	if s.metrics != nil {
		s.metrics.ObserveDBQuery("dashboard_summary", time.Since(start))
	}
	if s.redis.Enabled() {
		if err := s.redis.Set(ctx, dashboardRedisKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard summary cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}
