package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	valid := []string{
		"2024-03-15T10:30:00Z",
		"2024-03-15T10:30:00",
		"2024-03-15 10:30:00",
		"2024-03-15",
		"03/15/2024",
	}
	for _, raw := range valid {
		parsed, ok := ParseDate(raw)
		require.True(t, ok, "input %q", raw)
		assert.Equal(t, 2024, parsed.Year())
		assert.Equal(t, time.March, parsed.Month())
		assert.Equal(t, 15, parsed.Day())
	}

	for _, raw := range []string{"", "not a date", "15/03/2024 extra"} {
		_, ok := ParseDate(raw)
		assert.False(t, ok, "input %q", raw)
	}
}

func TestBucketKey(t *testing.T) {
	// 2024-03-15 is a Friday
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	day, err := BucketKey(ts, ByDay)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", day)

	week, err := BucketKey(ts, ByWeek)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", week)

	month, err := BucketKey(ts, ByMonth)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", month)

	year, err := BucketKey(ts, ByYear)
	require.NoError(t, err)
	assert.Equal(t, "2024", year)

	_, err = BucketKey(ts, Bucket("quarter"))
	assert.Error(t, err)
}

func TestBucketKeySundayStartsItsOwnWeek(t *testing.T) {
	sunday := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	key, err := BucketKey(sunday, ByWeek)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", key)
}
