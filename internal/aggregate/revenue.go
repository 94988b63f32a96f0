package aggregate

import (
	"sort"

	"github.com/trainops/analytics-api/internal/models"
)

// DefaultMovingAvgWindow is the trailing window applied to bucketed revenue.
const DefaultMovingAvgWindow = 7

// RevenueByBucket folds payments into per-bucket revenue sums, counts and
// means, with a per-payment-method breakdown. Payments with missing or
// malformed dates are excluded; malformed amounts contribute 0. Buckets are
// returned sorted by key so output is deterministic regardless of fetch
// order.
func RevenueByBucket(payments []models.Payment, bucket Bucket) ([]models.RevenueBucket, error) {
	grouped := make(map[string]*models.RevenueBucket)

	for _, payment := range payments {
		date, ok := ParseDate(payment.Date)
		if !ok {
			continue
		}
		key, err := BucketKey(date, bucket)
		if err != nil {
			return nil, err
		}
		entry, ok := grouped[key]
		if !ok {
			entry = &models.RevenueBucket{Key: key, ByMethod: make(map[string]float64)}
			grouped[key] = entry
		}
		amount := ParseCurrency(payment.Amount)
		entry.Total += amount
		entry.Count++
		method := payment.Method
		if method == "" {
			method = "Unknown"
		}
		entry.ByMethod[method] += amount
	}

	buckets := make([]models.RevenueBucket, 0, len(grouped))
	for _, entry := range grouped {
		if entry.Count > 0 {
			entry.Average = entry.Total / float64(entry.Count)
		}
		buckets = append(buckets, *entry)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets, nil
}

// RevenueByProgramType aggregates enriched payments per program-type
// category. Payments that could not be linked to a course land under
// program type -1.
func RevenueByProgramType(payments []models.EnrichedPayment) []models.ProgramRevenue {
	grouped := make(map[int]*models.ProgramRevenue)
	for _, payment := range payments {
		typeID := payment.ProgramTypeID
		if payment.CourseName == "Unknown Course" {
			typeID = -1
		}
		entry, ok := grouped[typeID]
		if !ok {
			entry = &models.ProgramRevenue{ProgramTypeID: typeID}
			grouped[typeID] = entry
		}
		entry.Total += ParseCurrency(payment.Amount)
		entry.Count++
	}

	result := make([]models.ProgramRevenue, 0, len(grouped))
	for _, entry := range grouped {
		if entry.Count > 0 {
			entry.Average = entry.Total / float64(entry.Count)
		}
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProgramTypeID < result[j].ProgramTypeID })
	return result
}

// Cumulative derives the running revenue total over buckets already sorted
// by key.
func Cumulative(buckets []models.RevenueBucket) []float64 {
	series := make([]float64, len(buckets))
	var running float64
	for i, bucket := range buckets {
		running += bucket.Total
		series[i] = running
	}
	return series
}

// MovingAverage computes a trailing moving average over the bucket sums.
// The window shrinks at the start of the series instead of padding with
// zeros.
func MovingAverage(buckets []models.RevenueBucket, window int) []float64 {
	if window <= 0 {
		window = DefaultMovingAvgWindow
	}
	series := make([]float64, len(buckets))
	for i := range buckets {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		var sum float64
		for j := start; j <= i; j++ {
			sum += buckets[j].Total
		}
		series[i] = sum / float64(i-start+1)
	}
	return series
}
