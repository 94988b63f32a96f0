package models

import "time"

// RangeFilter scopes analytics queries to an optional closed date range.
type RangeFilter struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether no bounds are set.
func (f RangeFilter) IsZero() bool {
	return f.From == nil && f.To == nil
}

// RevenueBucket is a per-bucket revenue aggregate. Key is the calendar
// bucket key (e.g. "2024-03") or a categorical label.
type RevenueBucket struct {
	Key      string             `json:"key"`
	Total    float64            `json:"total"`
	Count    int                `json:"count"`
	Average  float64            `json:"average"`
	ByMethod map[string]float64 `json:"by_method,omitempty"`
}

// ProgramRevenue aggregates revenue per program-type category.
type ProgramRevenue struct {
	ProgramTypeID int     `json:"program_type_id"`
	Total         float64 `json:"total"`
	Count         int     `json:"count"`
	Average       float64 `json:"average"`
}

// EnrollmentTrendPoint is one month of enrollment counts keyed by
// normalized status. Every observed status is present, zero counts included.
type EnrollmentTrendPoint struct {
	Month    string         `json:"month"`
	ByStatus map[string]int `json:"by_status"`
}

// GeoLevel selects the grouping granularity for geographic rollups.
type GeoLevel string

const (
	GeoByCountry GeoLevel = "country"
	GeoByState   GeoLevel = "state"
	GeoByCity    GeoLevel = "city"
)

// GeoGroup is one geographic rollup bucket.
type GeoGroup struct {
	Country          string  `json:"country"`
	StateProvince    string  `json:"state_province,omitempty"`
	City             string  `json:"city,omitempty"`
	ParticipantCount int     `json:"participant_count"`
	ActiveCount      int     `json:"active_count"`
	TotalClasses     int     `json:"total_classes"`
	AverageClasses   float64 `json:"average_classes"`
}

// LicenseReport summarises license currency across the dataset.
type LicenseReport struct {
	TotalLicensed     int            `json:"total_licensed"`
	CurrentCount      int            `json:"current_count"`
	NeedsUpdateCount  int            `json:"needs_update_count"`
	UniqueProfessions int            `json:"unique_professions"`
	TopProfession     string         `json:"top_profession"`
	MultiLicensed     int            `json:"multi_licensed"`
	RecentlyUpdated   int            `json:"recently_updated"`
	ProfessionCounts  map[string]int `json:"profession_counts"`
}

// CourseAnalytics is a per-course rollup of enrollment and revenue.
type CourseAnalytics struct {
	Course          Course  `json:"course"`
	EnrollmentCount int     `json:"enrollment_count"`
	CompletedCount  int     `json:"completed_count"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageRevenue  float64 `json:"average_revenue"`
}
