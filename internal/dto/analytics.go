package dto

import "github.com/trainops/analytics-api/internal/models"

// RevenueAnalyticsResponse carries revenue rollups per program type and per
// calendar bucket, with derived series over the monthly sums.
type RevenueAnalyticsResponse struct {
	ByProgramType []models.ProgramRevenue `json:"by_program_type"`
	ByYear        []models.RevenueBucket  `json:"by_year"`
	Monthly       []models.RevenueBucket  `json:"monthly"`
	Cumulative    []float64               `json:"cumulative"`
	MovingAverage []float64               `json:"moving_average"`
	// LinkedPayments and DroppedPayments account for the join: dropped
	// payments reference an enrollment absent from the store.
	LinkedPayments  int `json:"linked_payments"`
	DroppedPayments int `json:"dropped_payments"`
}

// EnrollmentTrendsResponse is the month-by-status enrollment matrix.
type EnrollmentTrendsResponse struct {
	Points           []models.EnrollmentTrendPoint `json:"points"`
	TotalEnrollments int                           `json:"total_enrollments"`
}

// TopState is one entry of the most-represented states list.
type TopState struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GeographicAnalyticsResponse aggregates participants geographically.
type GeographicAnalyticsResponse struct {
	ByCountry                 []models.GeoGroup `json:"by_country"`
	ByState                   []models.GeoGroup `json:"by_state"`
	ByCity                    []models.GeoGroup `json:"by_city"`
	DiversityIndex            float64           `json:"diversity_index"`
	UniqueCountries           int               `json:"unique_countries"`
	UniqueStates              int               `json:"unique_states"`
	UniqueCities              int               `json:"unique_cities"`
	TopStates                 []TopState        `json:"top_states"`
	InternationalCount        int               `json:"international_count"`
	InternationalPercentage   float64           `json:"international_percentage"`
	CompleteAddressPercentage float64           `json:"complete_address_percentage"`
	TotalParticipants         int               `json:"total_participants"`
}

// LicenseAnalyticsResponse is the license currency report plus join
// accounting.
type LicenseAnalyticsResponse struct {
	Report                 models.LicenseReport `json:"report"`
	UnresolvedParticipants int                  `json:"unresolved_participants"`
}

// CourseAnalyticsResponse carries per-course rollups.
type CourseAnalyticsResponse struct {
	Courses     []models.CourseAnalytics `json:"courses"`
	ActiveCount int                      `json:"active_count"`
	AbroadCount int                      `json:"abroad_count"`
}
