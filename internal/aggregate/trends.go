package aggregate

import (
	"sort"

	"github.com/trainops/analytics-api/internal/models"
)

// EnrollmentTrends groups enrollments by calendar month and normalized
// status. Every month reports a count for every status observed anywhere in
// the dataset, zeros included, so chart series stay aligned. Rows with
// unparseable registration timestamps are excluded. Months are sorted
// ascending.
func EnrollmentTrends(enrollments []models.Enrollment) []models.EnrollmentTrendPoint {
	counts := make(map[string]map[string]int)
	statuses := make(map[string]struct{})

	for _, enrollment := range enrollments {
		registered, ok := ParseDate(enrollment.RegisteredAt)
		if !ok {
			continue
		}
		month := MonthKey(registered)
		status := NormalizeStatus(enrollment.Status)
		statuses[status] = struct{}{}
		if counts[month] == nil {
			counts[month] = make(map[string]int)
		}
		counts[month][status]++
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	points := make([]models.EnrollmentTrendPoint, 0, len(months))
	for _, month := range months {
		point := models.EnrollmentTrendPoint{Month: month, ByStatus: make(map[string]int, len(statuses))}
		for status := range statuses {
			point.ByStatus[status] = counts[month][status]
		}
		points = append(points, point)
	}
	return points
}
