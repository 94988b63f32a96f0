// Package fetch retrieves complete table contents from a backing store that
// caps any single request to a fixed page size.
package fetch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	appErrors "github.com/trainops/analytics-api/pkg/errors"
)

// DefaultPageSize matches the backing store's per-request row cap.
const DefaultPageSize = 1000

// PageFunc returns one page of rows starting at the given offset. It must
// return at most limit rows; a short or empty page signals exhaustion.
type PageFunc[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// Error reports a failed page request. The whole fetch fails; no partial
// result is returned.
type Error struct {
	Table  string
	Offset int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s at offset %d: %v", e.Table, e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// All retrieves the complete row set for a table, issuing sequential page
// requests until a page comes back shorter than pageSize. A table whose size
// is an exact multiple of the page size terminates on the trailing empty
// page. The total count is never assumed known in advance.
func All[T any](ctx context.Context, table string, pageSize int, page PageFunc[T]) ([]T, error) {
	if table == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "table identifier is required")
	}
	if pageSize <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "page size must be positive")
	}
	if page == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "page function is required")
	}

	var all []T
	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Table: table, Offset: offset, Err: err}
		}
		rows, err := page(ctx, offset, pageSize)
		if err != nil {
			return nil, &Error{Table: table, Offset: offset, Err: err}
		}
		all = append(all, rows...)
		if len(rows) < pageSize {
			return all, nil
		}
		offset += pageSize
	}
}

// AllParallel retrieves the complete row set fetching up to workers pages
// concurrently. The store supports random offset access, so pages are
// requested in waves of known offsets and reassembled in offset order;
// scheduling stops once any page in a wave comes back short.
func AllParallel[T any](ctx context.Context, table string, pageSize, workers int, page PageFunc[T]) ([]T, error) {
	if workers <= 1 {
		return All(ctx, table, pageSize, page)
	}
	if table == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "table identifier is required")
	}
	if pageSize <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "page size must be positive")
	}
	if page == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "page function is required")
	}

	var all []T
	base := 0
	for {
		pages := make([][]T, workers)
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < workers; i++ {
			i := i
			offset := base + i*pageSize
			g.Go(func() error {
				rows, err := page(gctx, offset, pageSize)
				if err != nil {
					return &Error{Table: table, Offset: offset, Err: err}
				}
				pages[i] = rows
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for _, rows := range pages {
			all = append(all, rows...)
			if len(rows) < pageSize {
				return all, nil
			}
		}
		base += workers * pageSize
	}
}
