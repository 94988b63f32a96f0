package aggregate

import (
	"time"

	"github.com/trainops/analytics-api/internal/models"
)

// LicenseCurrencyWindow is the rolling window within which a license counts
// as current.
const LicenseCurrencyWindow = 2 // years

// IsLicenseCurrent reports whether the license was updated within the
// rolling 2-year window ending at now. Missing or malformed dates are never
// current.
func IsLicenseCurrent(dateUpdated string, now time.Time) bool {
	updated, ok := ParseDate(dateUpdated)
	if !ok {
		return false
	}
	return !updated.Before(now.AddDate(-LicenseCurrencyWindow, 0, 0))
}

// BuildLicenseReport summarises license currency over enriched license rows.
// The top-profession tie is broken by map iteration order; callers must not
// rely on a specific tie-break.
func BuildLicenseReport(licenses []models.EnrichedLicense, now time.Time) models.LicenseReport {
	report := models.LicenseReport{
		TotalLicensed:    len(licenses),
		TopProfession:    "N/A",
		ProfessionCounts: make(map[string]int),
	}

	perParticipant := make(map[models.ParticipantID]int)
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	for _, license := range licenses {
		if license.IsCurrent {
			report.CurrentCount++
		} else {
			report.NeedsUpdateCount++
		}

		profession := license.Profession
		if profession == "" {
			profession = "Unknown"
		}
		report.ProfessionCounts[profession]++

		perParticipant[license.MemberNumber]++

		if updated, ok := ParseDate(license.DateUpdated); ok && !updated.Before(thirtyDaysAgo) {
			report.RecentlyUpdated++
		}
	}

	report.UniqueProfessions = len(report.ProfessionCounts)

	best := 0
	for profession, count := range report.ProfessionCounts {
		if count > best {
			best = count
			report.TopProfession = profession
		}
	}

	for _, count := range perParticipant {
		if count > 1 {
			report.MultiLicensed++
		}
	}

	return report
}
