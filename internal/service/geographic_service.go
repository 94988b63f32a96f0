package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trainops/analytics-api/internal/aggregate"
	"github.com/trainops/analytics-api/internal/dto"
	"github.com/trainops/analytics-api/internal/models"
)

// the store holds both spellings of the home country
var homeCountryNames = []string{"United States", "USA"}

func isInternational(country string) bool {
	country = strings.TrimSpace(country)
	if country == "" {
		return false
	}
	for _, name := range homeCountryNames {
		if strings.EqualFold(country, name) {
			return false
		}
	}
	return true
}

// GeographicService aggregates the participant base geographically.
type GeographicService struct {
	data     *Datasets
	cache    *QueryCache
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
}

func NewGeographicService(data *Datasets, cache *QueryCache, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *GeographicService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeographicService{data: data, cache: cache, metrics: metrics, logger: logger, cacheTTL: cacheTTL}
}

// Analytics returns country, state and city rollups plus derived
// distribution measures over the whole participant base.
func (s *GeographicService) Analytics(ctx context.Context) (*dto.GeographicAnalyticsResponse, bool, error) {
	key := makeCacheKey("geographic")
	value, hit, err := s.cache.GetOrCompute(ctx, key, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx)
	})
	if err != nil {
		return nil, false, err
	}
	return value.(*dto.GeographicAnalyticsResponse), hit, nil
}

func (s *GeographicService) compute(ctx context.Context) (*dto.GeographicAnalyticsResponse, error) {
	start := time.Now()
	participants, err := s.data.AllParticipants(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("geographic_dataset", time.Since(start))
	}

	byCountry := aggregate.GroupGeography(participants, models.GeoByCountry)
	byState := aggregate.GroupGeography(participants, models.GeoByState)
	byCity := aggregate.GroupGeography(participants, models.GeoByCity)

	resp := &dto.GeographicAnalyticsResponse{
		ByCountry:         byCountry,
		ByState:           byState,
		ByCity:            byCity,
		DiversityIndex:    aggregate.DiversityIndex(byState),
		UniqueCountries:   len(byCountry),
		UniqueStates:      len(byState),
		UniqueCities:      len(byCity),
		TopStates:         topStates(byState, 3),
		TotalParticipants: len(participants),
	}

	complete := 0
	for _, p := range participants {
		if isInternational(p.Country) {
			resp.InternationalCount++
		}
		if strings.TrimSpace(p.City) != "" && strings.TrimSpace(p.StateProvince) != "" && strings.TrimSpace(p.Country) != "" {
			complete++
		}
	}
	if len(participants) > 0 {
		resp.InternationalPercentage = float64(resp.InternationalCount) / float64(len(participants)) * 100
		resp.CompleteAddressPercentage = float64(complete) / float64(len(participants)) * 100
	}

	return resp, nil
}

// topStates returns the n largest state groups. Groups arrive sorted by
// count already; the copy keeps the response independent of the rollup
// slice.
func topStates(groups []models.GeoGroup, n int) []dto.TopState {
	top := make([]dto.TopState, 0, n)
	for _, g := range groups {
		if g.StateProvince == "Unknown" {
			continue
		}
		top = append(top, dto.TopState{Name: g.StateProvince, Count: g.ParticipantCount})
		if len(top) == n {
			break
		}
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	return top
}
