package cma_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPageFailed = errors.New("page failed")

// pagedNames serves names in pages of size limit, recording each requested skip.
type pagedNames struct {
	names []string
	limit int
	skips []int
	err   error
}

func (p *pagedNames) fetch(_ context.Context, query *cma.QueryParams) (*cma.Collection[string], error) {
	p.skips = append(p.skips, query.Skip)

	if p.err != nil && len(p.skips) > 1 {
		return nil, p.err
	}

	end := min(query.Skip+p.limit, len(p.names))
	start := min(query.Skip, end)

	return &cma.Collection[string]{
		Total: len(p.names),
		Skip:  query.Skip,
		Limit: p.limit,
		Items: append([]string{}, p.names[start:end]...),
	}, nil
}

func TestPageIterator(t *testing.T) {
	t.Parallel()

	pages := &pagedNames{names: []string{"a", "b", "c"}, limit: 2}
	iterator := cma.NewPageIterator(t.Context(), pages.fetch, nil)

	assert.True(t, iterator.HasNext())

	first, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", first)

	second, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", second)

	assert.True(t, iterator.HasNext())

	third, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "c", third)

	assert.False(t, iterator.HasNext())

	_, err = iterator.Next()
	require.ErrorIs(t, err, cma.ErrNoMoreItems)

	assert.Equal(t, []int{0, 2}, pages.skips)
}

func TestPageIterator_StartsAtSkip(t *testing.T) {
	t.Parallel()

	pages := &pagedNames{names: []string{"a", "b", "c", "d", "e"}, limit: 2}

	items, err := cma.NewPageIterator(t.Context(), pages.fetch, cma.NewQueryParams().WithSkip(1)).All()
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c", "d", "e"}, items)
	assert.Equal(t, []int{1, 3}, pages.skips)
}

func TestPageIterator_Empty(t *testing.T) {
	t.Parallel()

	pages := &pagedNames{limit: 10}
	iterator := cma.NewPageIterator(t.Context(), pages.fetch, nil)

	_, err := iterator.Next()
	require.ErrorIs(t, err, cma.ErrNoMoreItems)
	assert.False(t, iterator.HasNext())
}

func TestFetchAll(t *testing.T) {
	t.Parallel()

	pages := &pagedNames{names: []string{"a", "b", "c", "d", "e"}, limit: 2}

	items, err := cma.FetchAll(t.Context(), pages.fetch, cma.NewQueryParams().WithLimit(2))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
	assert.Equal(t, []int{0, 2, 4}, pages.skips)
}

func TestFetchAll_Error(t *testing.T) {
	t.Parallel()

	pages := &pagedNames{names: []string{"a", "b", "c"}, limit: 2, err: errPageFailed}

	_, err := cma.FetchAll(t.Context(), pages.fetch, nil)
	require.ErrorIs(t, err, errPageFailed)
	assert.Contains(t, err.Error(), "fetching page at skip 2")
}

func TestForEach_StopsOnCallbackError(t *testing.T) {
	t.Parallel()

	pages := &pagedNames{names: []string{"a", "b", "c"}, limit: 10}

	var seen []string

	err := cma.NewPageIterator(t.Context(), pages.fetch, nil).ForEach(func(name string) error {
		seen = append(seen, name)
		if name == "b" {
			return errPageFailed
		}

		return nil
	})
	require.ErrorIs(t, err, errPageFailed)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestFetchAll_WithEntityMethod(t *testing.T) {
	t.Parallel()

	api := newFakeAPI().respond(cma.EntityTeam, cma.ActionGetMany,
		`{"total": 1, "skip": 0, "limit": 100, "items": [{"sys": {"type": "Team", "id": "t1"}, "name": "Editors"}]}`)

	org, err := cma.WrapOrganization(api.makeRequest, []byte(organizationJSON))
	require.NoError(t, err)

	teams, err := cma.FetchAll(t.Context(), org.GetTeams, nil)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Editors", teams[0].Name)
}
