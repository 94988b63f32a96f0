// Package enrich resolves cross-entity reference chains onto primary rows.
// Rows whose chain is broken are dropped, not failed; callers receive an
// explicit dropped-row count.
package enrich

import (
	"strings"

	"github.com/trainops/analytics-api/internal/models"
)

const unknownName = "Unknown"

// DisplayName concatenates the non-empty name parts with single spaces.
// An entirely empty name yields "Unknown".
func DisplayName(prefix, first, middle, last, suffix string) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{prefix, first, middle, last, suffix} {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return unknownName
	}
	return strings.Join(parts, " ")
}

// MaskCard reduces a card number to its last four digits for display.
func MaskCard(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	if len(number) <= 4 {
		return "****"
	}
	return "**** " + number[len(number)-4:]
}

// Payments attaches participant and course context to each payment via its
// enrollment. A payment whose enrollment id is absent from the index is
// dropped and counted; gaps further down the chain (participant, offering,
// course) degrade to defaults instead of dropping the row.
func Payments(
	payments []models.Payment,
	byEnrollment map[models.EnrollmentID]models.Enrollment,
	byParticipant map[models.ParticipantID]models.Participant,
	byOffering map[models.OfferingID]models.CourseOffering,
	byCourse map[models.CourseID]models.Course,
) ([]models.EnrichedPayment, int) {
	enriched := make([]models.EnrichedPayment, 0, len(payments))
	dropped := 0

	for _, payment := range payments {
		enrollment, ok := byEnrollment[payment.EnrollmentID]
		if !ok {
			dropped++
			continue
		}

		row := models.EnrichedPayment{
			Payment:          payment,
			MemberNumber:     enrollment.MemberNumber,
			EnrollmentStatus: enrollment.Status,
			ParticipantName:  unknownName,
			CourseName:       "Unknown Course",
			MaskedCard:       MaskCard(payment.CardNumber),
		}

		if participant, ok := byParticipant[enrollment.MemberNumber]; ok {
			row.ParticipantName = DisplayName(participant.Prefix, participant.FirstName, participant.MiddleName, participant.LastName, participant.Suffix)
		}
		if offering, ok := byOffering[enrollment.OfferingID]; ok {
			if course, ok := byCourse[offering.CourseID]; ok {
				row.CourseName = course.Name
				row.ProgramTypeID = course.ProgramTypeID
			}
		}

		enriched = append(enriched, row)
	}

	return enriched, dropped
}

// Licenses attaches participant context to each license. Licenses are kept
// even when the participant reference is unresolved; the returned count
// reports how many references could not be resolved.
func Licenses(
	licenses []models.License,
	byParticipant map[models.ParticipantID]models.Participant,
	isCurrent func(dateUpdated string) bool,
) ([]models.EnrichedLicense, int) {
	enriched := make([]models.EnrichedLicense, 0, len(licenses))
	unresolved := 0

	for _, license := range licenses {
		row := models.EnrichedLicense{
			License:         license,
			ParticipantName: unknownName,
		}
		if isCurrent != nil {
			row.IsCurrent = isCurrent(license.DateUpdated)
		}
		if participant, ok := byParticipant[license.MemberNumber]; ok {
			row.ParticipantName = DisplayName(participant.Prefix, participant.FirstName, participant.MiddleName, participant.LastName, participant.Suffix)
			row.ClassesTaken = participant.ClassesTaken
		} else {
			unresolved++
		}
		enriched = append(enriched, row)
	}

	return enriched, unresolved
}
