package aggregate

import (
	"strconv"
	"strings"
)

// ParseCurrency converts a formatted amount string ("$1,234.56") into a
// number. Missing or malformed amounts contribute exactly 0 so that one bad
// row cannot abort an aggregation; the absorb-vs-propagate policy lives
// here and nowhere else.
func ParseCurrency(raw string) float64 {
	if raw == "" {
		return 0
	}
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\t':
			return -1
		}
		return r
	}, raw)
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return parsed
}
