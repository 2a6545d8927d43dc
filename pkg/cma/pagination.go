package cma

import (
	"context"
	"errors"
	"fmt"
)

// PageFunc fetches one page of a collection. Collection-returning entity
// methods such as (*Organization).GetTeams satisfy it as method values.
type PageFunc[T any] func(ctx context.Context, query *QueryParams) (*Collection[T], error)

// PageIterator walks every item of a skip/limit paginated collection,
// fetching pages on demand.
type PageIterator[T any] struct {
	ctx     context.Context //nolint:containedctx // iterator is bound to one walk
	fetch   PageFunc[T]
	query   *QueryParams
	buffer  []T
	index   int
	skip    int
	total   int
	started bool
	done    bool
}

// NewPageIterator creates an iterator starting at query.Skip.
func NewPageIterator[T any](ctx context.Context, fetch PageFunc[T], query *QueryParams) *PageIterator[T] {
	iterator := &PageIterator[T]{
		ctx:   ctx,
		fetch: fetch,
		query: query.Clone(),
	}
	iterator.skip = iterator.query.Skip

	return iterator
}

// HasNext reports whether another item may be available.
func (it *PageIterator[T]) HasNext() bool {
	if it.index < len(it.buffer) {
		return true
	}

	if !it.started {
		return true
	}

	return !it.done && it.skip < it.total
}

// Next returns the next item, fetching the following page when needed.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if it.index >= len(it.buffer) {
		if it.started && (it.done || it.skip >= it.total) {
			return zero, ErrNoMoreItems
		}

		err := it.fetchPage()
		if err != nil {
			return zero, err
		}

		if len(it.buffer) == 0 {
			return zero, ErrNoMoreItems
		}
	}

	item := it.buffer[it.index]
	it.index++

	return item, nil
}

// All drains the iterator.
func (it *PageIterator[T]) All() ([]T, error) {
	var items []T

	err := it.ForEach(func(item T) error {
		items = append(items, item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ForEach calls fn for every remaining item, stopping at the first error.
func (it *PageIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *PageIterator[T]) fetchPage() error {
	query := it.query.Clone()
	query.Skip = it.skip

	page, err := it.fetch(it.ctx, query)
	if err != nil {
		return fmt.Errorf("fetching page at skip %d: %w", it.skip, err)
	}

	it.started = true
	it.buffer = page.Items
	it.index = 0
	it.total = page.Total
	it.skip += len(page.Items)

	if len(page.Items) == 0 {
		it.done = true
	}

	return nil
}

// FetchAll collects every item of a collection, page by page.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], query *QueryParams) ([]T, error) {
	return NewPageIterator(ctx, fetch, query).All()
}
