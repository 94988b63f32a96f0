package aggregate

import (
	_ "embed"
	"encoding/json"
	"strings"
	"unicode"
)

// StatusCompleted is the canonical label for finished enrollments.
const StatusCompleted = "Completed"

// Known data-entry variants live in a data file so new typos can be added
// without touching code.
//
//go:embed status_variants.json
var statusVariantsJSON []byte

var statusVariants = loadStatusVariants()

func loadStatusVariants() map[string]string {
	var table map[string][]string
	if err := json.Unmarshal(statusVariantsJSON, &table); err != nil {
		panic("aggregate: invalid status_variants.json: " + err.Error())
	}
	lookup := make(map[string]string, len(table)*2)
	for canonical, variants := range table {
		for _, variant := range variants {
			lookup[variant] = canonical
		}
	}
	return lookup
}

// NormalizeStatus folds an enrollment status string onto its canonical
// label. Whitespace is collapsed, known variants (including the "Expied"
// typo) map through the variant table, and anything unrecognized is kept
// with first-letter capitalization rather than dropped. Empty input yields
// "Unknown".
func NormalizeStatus(raw string) string {
	normalized := strings.Join(strings.Fields(raw), " ")
	if normalized == "" {
		return "Unknown"
	}
	if canonical, ok := statusVariants[strings.ToLower(normalized)]; ok {
		return canonical
	}
	runes := []rune(strings.ToLower(normalized))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
