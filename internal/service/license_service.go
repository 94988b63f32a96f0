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

// LicenseService builds the license currency report. now is injected so
// tests can pin the 2-year currency window.
type LicenseService struct {
	data     *Datasets
	cache    *QueryCache
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

func NewLicenseService(data *Datasets, cache *QueryCache, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *LicenseService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LicenseService{data: data, cache: cache, metrics: metrics, logger: logger, now: time.Now, cacheTTL: cacheTTL}
}

// Analytics returns the license currency report across all licenses.
func (s *LicenseService) Analytics(ctx context.Context) (*dto.LicenseAnalyticsResponse, bool, error) {
	key := makeCacheKey("licenses")
	value, hit, err := s.cache.GetOrCompute(ctx, key, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx)
	})
	if err != nil {
		return nil, false, err
	}
	return value.(*dto.LicenseAnalyticsResponse), hit, nil
}

func (s *LicenseService) compute(ctx context.Context) (*dto.LicenseAnalyticsResponse, error) {
	start := time.Now()
	licenses, err := s.data.AllLicenses(ctx)
	if err != nil {
		return nil, err
	}
	participants, err := s.data.AllParticipants(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("license_dataset", time.Since(start))
	}

	now := s.now()
	byParticipant := index.Unique(participants, func(p models.Participant) models.ParticipantID { return p.MemberNumber })
	enriched, unresolved := enrich.Licenses(licenses, byParticipant, func(dateUpdated string) bool {
		return aggregate.IsLicenseCurrent(dateUpdated, now)
	})
	if unresolved > 0 {
		s.logger.Warn("licenses reference unknown participants",
			zap.Int("unresolved", unresolved),
			zap.Int("total", len(licenses)))
	}

	return &dto.LicenseAnalyticsResponse{
		Report:                 aggregate.BuildLicenseReport(enriched, now),
		UnresolvedParticipants: unresolved,
	}, nil
}
