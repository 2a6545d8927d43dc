package client_test

import (
	"testing"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_GetCurrent(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{
		"GET /users/me": `{"sys":{"type":"User","id":"u1"},"firstName":"Ada","lastName":"Lovelace","activated":true}`,
	})
	c := newTestClient(t, server.URL)

	user, err := c.GetCurrentUser(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID())
	assert.Equal(t, "Ada", user.FirstName)
	assert.True(t, user.Activated)
}

func TestUsers_GetCurrentError(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{})
	c := newTestClient(t, server.URL)

	_, err := c.GetCurrentUser(t.Context())
	require.Error(t, err)
	assert.True(t, cma.IsNotFound(err))
	assert.Contains(t, err.Error(), "getting current user")
}
