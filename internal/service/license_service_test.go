package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trainops/analytics-api/internal/models"
)

func TestLicenseAnalytics(t *testing.T) {
	store := &fakeStore{
		participants: []models.Participant{
			{MemberNumber: "M-001", FirstName: "Jane", LastName: "Doe", ClassesTaken: 8},
		},
		licenses: []models.License{
			{ID: 1, MemberNumber: "M-001", Profession: "Physician", DateUpdated: "2026-01-10"},
			{ID: 2, MemberNumber: "M-001", Profession: "Paramedic", DateUpdated: "2023-01-10"},
			{ID: 3, MemberNumber: "M-404", Profession: "Nurse", DateUpdated: "2026-02-01"},
		},
	}
	svc := NewLicenseService(store.datasets(), NewQueryCache(), nil, zap.NewNop(), time.Minute)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	resp, hit, err := svc.Analytics(context.Background())

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, resp.UnresolvedParticipants)
	assert.Equal(t, 3, resp.Report.TotalLicensed)
	assert.Equal(t, 2, resp.Report.CurrentCount)
	assert.Equal(t, 1, resp.Report.NeedsUpdateCount)
	assert.Equal(t, 1, resp.Report.MultiLicensed)
	assert.Equal(t, 3, resp.Report.UniqueProfessions)
}

func TestLicenseAnalyticsCached(t *testing.T) {
	store := &fakeStore{}
	svc := NewLicenseService(store.datasets(), NewQueryCache(), nil, zap.NewNop(), time.Minute)

	_, hit, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
}
