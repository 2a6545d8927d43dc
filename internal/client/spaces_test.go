package client_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spaceBody = `{"sys":{"type":"Space","id":"sp1","version":2},"name":"Blog","defaultLocale":"en-US"}`

func TestSpaces_Get(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{
		"GET /spaces/sp1": spaceBody,
		"GET /spaces/sp1/environments/master": `{
			"sys": {"type": "Environment", "id": "master", "version": 1,
				"space": {"sys": {"type": "Link", "linkType": "Space", "id": "sp1"}}},
			"name": "master"
		}`,
	})
	c := newTestClient(t, server.URL)

	space, err := c.GetSpace(t.Context(), "sp1")
	require.NoError(t, err)
	assert.Equal(t, "sp1", space.ID())
	assert.Equal(t, "Blog", space.Name)

	env, err := space.GetEnvironment(t.Context(), "master")
	require.NoError(t, err)
	assert.Equal(t, "master", env.ID())
	assert.Equal(t, "sp1", env.Sys().Space.ID())
}

func TestSpaces_GetNotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{})
	c := newTestClient(t, server.URL)

	_, err := c.GetSpace(t.Context(), "nope")
	require.Error(t, err)
	assert.True(t, cma.IsNotFound(err))
	assert.Contains(t, err.Error(), "getting space nope")
}

func TestSpaces_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/spaces", request.URL.Path)
		assert.Equal(t, "2", request.URL.Query().Get("limit"))
		assert.Equal(t, "sys.createdAt", request.URL.Query().Get("order"))
		_, _ = writer.Write([]byte(`{"total":3,"skip":0,"limit":2,"items":[` + spaceBody + `,{"sys":{"type":"Space","id":"sp2"},"name":"Docs"}]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	spaces, err := c.GetSpaces(t.Context(), cma.NewQueryParams().WithLimit(2).WithOrder("sys.createdAt"))
	require.NoError(t, err)
	assert.Equal(t, 3, spaces.Total)
	require.Len(t, spaces.Items, 2)
	assert.Equal(t, "Docs", spaces.Items[1].Name)
}

func TestSpaces_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/spaces", request.URL.Path)
		assert.Equal(t, "org1", request.Header.Get("X-Contentful-Organization"))
		assert.Equal(t, "application/vnd.contentful.management.v1+json", request.Header.Get("Content-Type"))

		raw, _ := io.ReadAll(request.Body)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "New", body["name"])

		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"sys":{"type":"Space","id":"sp9","version":1},"name":"New"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	space, err := c.CreateSpace(t.Context(), "org1", cma.SpaceFields{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "sp9", space.ID())
	assert.Equal(t, 1, space.Version())
}

func TestSpaces_UpdateSendsVersion(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method {
		case http.MethodGet:
			_, _ = writer.Write([]byte(spaceBody))
		case http.MethodPut:
			assert.Equal(t, "2", request.Header.Get("X-Contentful-Version"))

			raw, _ := io.ReadAll(request.Body)
			assert.JSONEq(t, `{"name":"Renamed","defaultLocale":"en-US"}`, string(raw))

			_, _ = writer.Write([]byte(`{"sys":{"type":"Space","id":"sp1","version":3},"name":"Renamed"}`))
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	space, err := c.GetSpace(t.Context(), "sp1")
	require.NoError(t, err)

	space.Name = "Renamed"

	updated, err := space.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Version())
	assert.Equal(t, 2, space.Version())
}
