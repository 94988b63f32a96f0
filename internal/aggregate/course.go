package aggregate

import (
	"sort"

	"github.com/trainops/analytics-api/internal/models"
)

// CourseRollup folds enrollments and payments up the offering chain into
// per-course enrollment and revenue figures. Enrollments referencing an
// unknown offering, and payments referencing an unknown enrollment, are
// skipped; the revenue average is per linked payment.
func CourseRollup(
	courses []models.Course,
	byOffering map[models.OfferingID]models.CourseOffering,
	enrollments []models.Enrollment,
	paymentsByEnrollment map[models.EnrollmentID][]models.Payment,
) []models.CourseAnalytics {
	rollups := make(map[models.CourseID]*models.CourseAnalytics, len(courses))
	for _, course := range courses {
		course := course
		rollups[course.ID] = &models.CourseAnalytics{Course: course}
	}

	paymentCounts := make(map[models.CourseID]int)
	for _, enrollment := range enrollments {
		offering, ok := byOffering[enrollment.OfferingID]
		if !ok {
			continue
		}
		rollup, ok := rollups[offering.CourseID]
		if !ok {
			continue
		}
		rollup.EnrollmentCount++
		if NormalizeStatus(enrollment.Status) == StatusCompleted {
			rollup.CompletedCount++
		}
		for _, payment := range paymentsByEnrollment[enrollment.ID] {
			rollup.TotalRevenue += ParseCurrency(payment.Amount)
			paymentCounts[offering.CourseID]++
		}
	}

	result := make([]models.CourseAnalytics, 0, len(rollups))
	for courseID, rollup := range rollups {
		if n := paymentCounts[courseID]; n > 0 {
			rollup.AverageRevenue = rollup.TotalRevenue / float64(n)
		}
		result = append(result, *rollup)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Course.ID < result[j].Course.ID })
	return result
}
