package aggregate

import (
	"math"
	"sort"

	"github.com/trainops/analytics-api/internal/models"
)

const unknownPlace = "Unknown"

// GroupGeography rolls participants up by country, country+state or
// country+state+city. Missing address parts group under "Unknown". Groups
// are sorted by descending participant count, largest first.
func GroupGeography(participants []models.Participant, level models.GeoLevel) []models.GeoGroup {
	type groupKey struct {
		country, state, city string
	}
	grouped := make(map[groupKey]*models.GeoGroup)

	for _, participant := range participants {
		country := orUnknown(participant.Country)
		state := orUnknown(participant.StateProvince)
		city := orUnknown(participant.City)

		key := groupKey{country: country}
		entry := models.GeoGroup{Country: country}
		switch level {
		case models.GeoByState:
			key.state = state
			entry.StateProvince = state
		case models.GeoByCity:
			key.state, key.city = state, city
			entry.StateProvince, entry.City = state, city
		}

		data, ok := grouped[key]
		if !ok {
			data = &entry
			grouped[key] = data
		}
		data.ParticipantCount++
		if participant.Active() {
			data.ActiveCount++
		}
		data.TotalClasses += participant.ClassesTaken
	}

	groups := make([]models.GeoGroup, 0, len(grouped))
	for _, data := range grouped {
		if data.ParticipantCount > 0 {
			data.AverageClasses = float64(data.TotalClasses) / float64(data.ParticipantCount)
		}
		groups = append(groups, *data)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].ParticipantCount != groups[j].ParticipantCount {
			return groups[i].ParticipantCount > groups[j].ParticipantCount
		}
		return groupLabel(groups[i]) < groupLabel(groups[j])
	})
	return groups
}

// DiversityIndex computes the normalized Shannon entropy of the group
// participant-count distribution, scaled to 0-100. A single group or an
// empty dataset scores 0, which also sidesteps log2 of zero.
func DiversityIndex(groups []models.GeoGroup) float64 {
	if len(groups) <= 1 {
		return 0
	}
	var total int
	for _, group := range groups {
		total += group.ParticipantCount
	}
	if total == 0 {
		return 0
	}

	var entropy float64
	for _, group := range groups {
		if group.ParticipantCount == 0 {
			continue
		}
		p := float64(group.ParticipantCount) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy / math.Log2(float64(len(groups))) * 100
}

func orUnknown(value string) string {
	if value == "" {
		return unknownPlace
	}
	return value
}

func groupLabel(g models.GeoGroup) string {
	return g.Country + "::" + g.StateProvince + "::" + g.City
}
