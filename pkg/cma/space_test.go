package cma_test

import (
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spaceJSON = `{"sys": {"type": "Space", "id": "sp1", "version": 2}, "name": "Marketing"}`

func TestSpace_Environments(t *testing.T) {
	t.Parallel()

	api := newFakeAPI().
		respond(cma.EntityEnvironment, cma.ActionGet, environmentJSON("master")).
		respond(cma.EntityEnvironment, cma.ActionGetMany, `{"total": 2, "skip": 0, "limit": 100, "items": [`+
			environmentJSON("master")+`,`+environmentJSON("staging")+`]}`).
		respond(cma.EntityEnvironment, cma.ActionCreate, environmentJSON("generated")).
		respond(cma.EntityEnvironment, cma.ActionCreateWithID, environmentJSON("feature"))

	space, err := cma.WrapSpace(api.makeRequest, json.RawMessage(spaceJSON))
	require.NoError(t, err)

	env, err := space.GetEnvironment(t.Context(), "master")
	require.NoError(t, err)
	assert.Equal(t, "master", env.ID())
	assert.Equal(t, cma.Params{cma.ParamSpaceID: "sp1", cma.ParamEnvironmentID: "master"}, api.last().Params)

	envs, err := space.GetEnvironments(t.Context(), cma.NewQueryParams().WithLimit(100))
	require.NoError(t, err)
	require.Len(t, envs.Items, 2)
	assert.Equal(t, "staging", envs.Items[1].ID())
	assert.Equal(t, 100, api.last().Query.Limit)

	generated, err := space.CreateEnvironment(t.Context(), "", cma.EnvironmentFields{Name: "Generated"})
	require.NoError(t, err)
	assert.Equal(t, "generated", generated.ID())
	assert.Equal(t, cma.ActionCreate, api.last().Action)
	assert.Equal(t, cma.Params{cma.ParamSpaceID: "sp1"}, api.last().Params)

	feature, err := space.CreateEnvironment(t.Context(), "feature", cma.EnvironmentFields{Name: "Feature"})
	require.NoError(t, err)
	assert.Equal(t, "feature", feature.ID())
	assert.Equal(t, cma.ActionCreateWithID, api.last().Action)
	assert.Equal(t, "feature", api.last().Params[cma.ParamEnvironmentID])
	assert.Equal(t, cma.EnvironmentFields{Name: "Feature"}, api.last().Payload)
}

func TestSpace_UpdateDelete(t *testing.T) {
	t.Parallel()

	api := newFakeAPI().respond(cma.EntitySpace, cma.ActionUpdate,
		`{"sys": {"type": "Space", "id": "sp1", "version": 3}, "name": "Sales"}`)

	space, err := cma.WrapSpace(api.makeRequest, json.RawMessage(spaceJSON))
	require.NoError(t, err)

	space.Name = "Sales"

	updated, err := space.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Sales", updated.Name)
	assert.Equal(t, 3, updated.Version())

	payload, ok := api.last().Payload.(cma.SpaceProps)
	require.True(t, ok)
	assert.Equal(t, "Sales", payload.Name)
	assert.Equal(t, 2, payload.Sys.Version)

	require.NoError(t, space.Delete(t.Context()))
	assert.Equal(t, cma.Request{
		EntityType: cma.EntitySpace,
		Action:     cma.ActionDelete,
		Params:     cma.Params{cma.ParamSpaceID: "sp1"},
	}, api.last())
}

func TestSpace_CreateTeamSpaceMembership(t *testing.T) {
	t.Parallel()

	api := newFakeAPI().respond(cma.EntityTeamSpaceMembership, cma.ActionCreate, `{
		"sys": {"type": "TeamSpaceMembership", "id": "tsm1", "version": 1,
			"space": {"sys": {"type": "Link", "linkType": "Space", "id": "sp1"}},
			"team": {"sys": {"type": "Link", "linkType": "Team", "id": "team1"}}},
		"admin": false,
		"roles": [{"sys": {"type": "Link", "linkType": "Role", "id": "editor"}}]
	}`)

	space, err := cma.WrapSpace(api.makeRequest, json.RawMessage(spaceJSON))
	require.NoError(t, err)

	fields := cma.TeamSpaceMembershipFields{Roles: []cma.Link{cma.LinkTo("Role", "editor")}}

	membership, err := space.CreateTeamSpaceMembership(t.Context(), "team1", fields)
	require.NoError(t, err)
	assert.Equal(t, "tsm1", membership.ID())
	assert.Equal(t, "team1", membership.Sys().Team.ID())
	assert.Equal(t, "editor", membership.Roles[0].ID())

	assert.Equal(t, cma.Request{
		EntityType: cma.EntityTeamSpaceMembership,
		Action:     cma.ActionCreate,
		Params:     cma.Params{cma.ParamSpaceID: "sp1", cma.ParamTeamID: "team1"},
		Payload:    fields,
	}, api.last())
}
