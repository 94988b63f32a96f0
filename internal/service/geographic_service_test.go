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

func TestGeographicAnalytics(t *testing.T) {
	store := &fakeStore{
		participants: []models.Participant{
			{MemberNumber: "M-1", Country: "United States", StateProvince: "CO", City: "Denver", StatusID: 1},
			{MemberNumber: "M-2", Country: "United States", StateProvince: "CO", City: "Boulder"},
			{MemberNumber: "M-3", Country: "United States", StateProvince: "WA", City: "Seattle"},
			{MemberNumber: "M-4", Country: "Canada", StateProvince: "BC", City: "Vancouver"},
			{MemberNumber: "M-5"},
		},
	}
	svc := NewGeographicService(store.datasets(), NewQueryCache(), nil, zap.NewNop(), time.Minute)

	resp, hit, err := svc.Analytics(context.Background())

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 5, resp.TotalParticipants)
	assert.Equal(t, 3, resp.UniqueCountries)
	assert.Equal(t, 4, resp.UniqueStates)
	assert.Equal(t, 5, resp.UniqueCities)
	assert.Greater(t, resp.DiversityIndex, 0.0)

	// international excludes the home country and blanks
	assert.Equal(t, 1, resp.InternationalCount)
	assert.InDelta(t, 20, resp.InternationalPercentage, 1e-9)
	assert.InDelta(t, 80, resp.CompleteAddressPercentage, 1e-9)

	require.NotEmpty(t, resp.TopStates)
	assert.Equal(t, "CO", resp.TopStates[0].Name)
	assert.Equal(t, 2, resp.TopStates[0].Count)
	for _, state := range resp.TopStates {
		assert.NotEqual(t, "Unknown", state.Name)
	}
}

func TestGeographicAnalyticsHomeCountrySpellings(t *testing.T) {
	store := &fakeStore{
		participants: []models.Participant{
			{MemberNumber: "M-1", Country: "United States", StateProvince: "CO"},
			{MemberNumber: "M-2", Country: "USA", StateProvince: "TX"},
			{MemberNumber: "M-3", Country: "usa", StateProvince: "NM"},
			{MemberNumber: "M-4", Country: "Canada", StateProvince: "BC"},
		},
	}
	svc := NewGeographicService(store.datasets(), NewQueryCache(), nil, zap.NewNop(), time.Minute)

	resp, _, err := svc.Analytics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.InternationalCount)
	assert.InDelta(t, 25, resp.InternationalPercentage, 1e-9)
}

func TestGeographicAnalyticsEmptyDataset(t *testing.T) {
	store := &fakeStore{}
	svc := NewGeographicService(store.datasets(), NewQueryCache(), nil, zap.NewNop(), time.Minute)

	resp, _, err := svc.Analytics(context.Background())

	require.NoError(t, err)
	assert.Zero(t, resp.TotalParticipants)
	assert.Zero(t, resp.DiversityIndex)
	assert.Zero(t, resp.InternationalPercentage)
}
