// Package index builds in-memory lookup structures for O(1) join lookups.
package index

// Unique builds a 1:1 map from key to row. Duplicate keys keep the last row
// encountered in input order; callers depend on this last-write-wins
// behavior for compatibility with the upstream dataset.
func Unique[K comparable, T any](rows []T, key func(T) K) map[K]T {
	m := make(map[K]T, len(rows))
	for _, row := range rows {
		m[key(row)] = row
	}
	return m
}

// Grouped builds a 1:many map from key to rows, preserving input order
// within each group.
func Grouped[K comparable, T any](rows []T, key func(T) K) map[K][]T {
	m := make(map[K][]T)
	for _, row := range rows {
		k := key(row)
		m[k] = append(m[k], row)
	}
	return m
}
