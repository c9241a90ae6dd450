package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PageFunc fetches one page of a paged source, returning the items and the
// last page number the source reports.
type PageFunc[T any] func(ctx context.Context, page int) (items []T, lastPage int, err error)

// CollectAll aggregates every page of a paged source. Page 1 is fetched
// first to learn the page count, then the remaining pages are fetched
// concurrently and merged in page order. A single failed page aborts the
// whole aggregation.
func CollectAll[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	first, lastPage, err := fetch(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch page 1: %w", err)
	}
	if lastPage <= 1 {
		return first, nil
	}

	pages := make([][]T, lastPage+1)
	pages[1] = first

	g, ctx := errgroup.WithContext(ctx)
	for page := 2; page <= lastPage; page++ {
		g.Go(func() error {
			items, _, err := fetch(ctx, page)
			if err != nil {
				return fmt.Errorf("fetch page %d: %w", page, err)
			}
			pages[page] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []T
	for page := 1; page <= lastPage; page++ {
		out = append(out, pages[page]...)
	}
	return out, nil
}
