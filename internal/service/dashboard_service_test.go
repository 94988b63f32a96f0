package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trainops/analytics-api/internal/models"
	appErrors "github.com/trainops/analytics-api/pkg/errors"
)

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, _ string) error {
	s.store = nil
	return nil
}

func dashboardFixture() *fakeStore {
	return &fakeStore{
		participants: []models.Participant{
			{MemberNumber: "M-1", Country: "United States", StateProvince: "CO", StatusID: 1},
			{MemberNumber: "M-2", Country: "Canada", StateProvince: "BC"},
		},
		courses: []models.Course{
			{ID: 100, Status: 1},
			{ID: 101, Status: 0},
		},
		enrollments: []models.Enrollment{
			{ID: 1, MemberNumber: "M-1", OfferingID: 10},
		},
		payments: []models.Payment{
			{ID: 1, EnrollmentID: 1, Amount: "$120.00", ApprovalCode: "OK123"},
			{ID: 2, EnrollmentID: 1, Amount: "$30.00"},
		},
		licenses: []models.License{
			{ID: 1, MemberNumber: "M-1"},
		},
	}
}

func newDashboardService(store *fakeStore, redis *CacheService) *DashboardService {
	return NewDashboardService(DashboardServiceParams{
		Data:         store.datasets(),
		Participants: (*fakeParticipantSource)(store),
		Courses:      (*fakeCourseSource)(store),
		Enrollments:  (*fakeEnrollmentSource)(store),
		Licenses:     (*fakeLicenseSource)(store),
		Cache:        NewQueryCache(),
		Redis:        redis,
		Logger:       zap.NewNop(),
		CacheTTL:     time.Minute,
	})
}

func TestDashboardSummary(t *testing.T) {
	svc := newDashboardService(dashboardFixture(), nil)

	resp, hit, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, resp.TotalParticipants)
	assert.Equal(t, 1, resp.ActiveCourses)
	assert.InDelta(t, 150, resp.TotalRevenue, 1e-9)
	assert.Equal(t, 1, resp.EnrollmentsThisMonth)
	assert.Equal(t, 1, resp.LicensedProfessionals)
	assert.Equal(t, 2, resp.GeographicReach.States)
	assert.Equal(t, 2, resp.GeographicReach.Countries)
	assert.Equal(t, 1, resp.PaymentStatus.Completed)
	assert.Equal(t, 1, resp.PaymentStatus.Pending)
}

func TestDashboardSummaryUsesSharedCache(t *testing.T) {
	repo := &stubCacheRepo{}
	redis := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	first := newDashboardService(dashboardFixture(), redis)
	_, _, err := first.Summary(context.Background())
	require.NoError(t, err)
	require.Contains(t, repo.store, dashboardRedisKey)

	// a fresh process with an empty store still serves the cached summary
	second := newDashboardService(&fakeStore{}, redis)
	resp, _, err := second.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalParticipants)
	assert.InDelta(t, 150, resp.TotalRevenue, 1e-9)
}
