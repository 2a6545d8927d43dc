package cma_test

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOdd = errors.New("odd item")

func TestMapCollection(t *testing.T) {
	t.Parallel()

	in := cma.Collection[int]{Total: 10, Skip: 4, Limit: 3, Items: []int{1, 2, 3}}

	out, err := cma.MapCollection(in, func(i int) (string, error) {
		return strconv.Itoa(i * 10), nil
	})
	require.NoError(t, err)

	assert.Equal(t, 10, out.Total)
	assert.Equal(t, 4, out.Skip)
	assert.Equal(t, 3, out.Limit)
	assert.Equal(t, []string{"10", "20", "30"}, out.Items)
}

func TestMapCollection_FailsFast(t *testing.T) {
	t.Parallel()

	var calls int

	_, err := cma.MapCollection(cma.Collection[int]{Items: []int{2, 3, 4}}, func(i int) (int, error) {
		calls++
		if i%2 == 1 {
			return 0, errOdd
		}

		return i, nil
	})
	require.ErrorIs(t, err, errOdd)
	assert.Contains(t, err.Error(), "item 1")
	assert.Equal(t, 2, calls)
}

func TestWrapCollection(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	raw := json.RawMessage(`{
		"total": 25,
		"skip": 10,
		"limit": 2,
		"items": [
			{"sys": {"type": "Team", "id": "t1"}, "name": "First"},
			{"sys": {"type": "Team", "id": "t2"}, "name": "Second"}
		]
	}`)

	teams, err := cma.WrapTeamCollection(api.makeRequest, raw)
	require.NoError(t, err)

	assert.Equal(t, 25, teams.Total)
	assert.Equal(t, 10, teams.Skip)
	assert.Equal(t, 2, teams.Limit)
	require.Len(t, teams.Items, 2)
	assert.Equal(t, "t1", teams.Items[0].ID())
	assert.Equal(t, "First", teams.Items[0].Name)
	assert.Equal(t, "t2", teams.Items[1].ID())
}

func TestWrapCollection_ItemsAreLive(t *testing.T) {
	t.Parallel()

	api := newFakeAPI().respond(cma.EntityTeam, cma.ActionUpdate,
		`{"sys": {"type": "Team", "id": "t1", "version": 2}, "name": "Renamed"}`)

	teams, err := cma.WrapTeamCollection(api.makeRequest, json.RawMessage(`{
		"total": 1, "skip": 0, "limit": 100,
		"items": [{"sys": {"type": "Team", "id": "t1", "organization": {"sys": {"type": "Link", "linkType": "Organization", "id": "org1"}}}, "name": "Team"}]
	}`))
	require.NoError(t, err)

	team := teams.Items[0]
	team.Name = "Renamed"

	updated, err := team.Update(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, cma.Params{cma.ParamOrganizationID: "org1", cma.ParamTeamID: "t1"}, api.last().Params)
}

func TestWrapCollection_Empty(t *testing.T) {
	t.Parallel()

	spaces, err := cma.WrapSpaceCollection(newFakeAPI().makeRequest, json.RawMessage(`{"total": 0, "skip": 0, "limit": 100, "items": []}`))
	require.NoError(t, err)

	assert.Equal(t, 0, spaces.Total)
	assert.NotNil(t, spaces.Items)
	assert.Empty(t, spaces.Items)
}

func TestWrapCollection_BadItem(t *testing.T) {
	t.Parallel()

	_, err := cma.WrapSpaceCollection(newFakeAPI().makeRequest, json.RawMessage(`{
		"total": 2, "skip": 0, "limit": 100,
		"items": [{"sys": {"id": "sp1"}}, "not an entity"]
	}`))
	require.ErrorIs(t, err, cma.ErrNotAnObject)
	assert.Contains(t, err.Error(), "item 1")
}

func TestCollection_JSONNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(cma.Collection[string]{Total: 1, Skip: 0, Limit: 10, Items: []string{"a"}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"total": 1, "skip": 0, "limit": 10, "items": ["a"]}`, string(data))
}
