package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/fivetwenty-io/cma/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

type fakePersister struct {
	tokens []string
	err    error
}

func (p *fakePersister) SaveToken(token string, _ time.Time) error {
	p.tokens = append(p.tokens, token)

	return p.err
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("CFPAT-abc")

	token, err := manager.GetToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "CFPAT-abc", token)

	require.ErrorIs(t, manager.RefreshToken(t.Context()), auth.ErrStaticTokenCannotRefresh)

	manager.SetToken("CFPAT-def", time.Time{})

	token, err = manager.GetToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "CFPAT-def", token)

	_, err = auth.NewStaticTokenManager("").GetToken(t.Context())
	require.ErrorIs(t, err, auth.ErrNoCredentials)
}

func newClientCredentialsServer(t *testing.T) *httptest.Server {
	t.Helper()

	var issued int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		issued++

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "issued-` + strconv.Itoa(issued) + `", "token_type": "bearer", "expires_in": 3600}`))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestConfigTokenManager_PersistsNewTokens(t *testing.T) {
	t.Parallel()

	server := newClientCredentialsServer(t)
	persister := &fakePersister{}

	manager := auth.NewConfigTokenManager(&auth.OAuth2Config{
		TokenURL:     server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, persister, "", time.Time{}, nil)

	token, err := manager.GetToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "issued-1", token)

	_, err = manager.GetToken(t.Context())
	require.NoError(t, err)

	require.NoError(t, manager.RefreshToken(t.Context()))

	assert.Equal(t, []string{"issued-1", "issued-2"}, persister.tokens)
}

func TestConfigTokenManager_SavedTokenIsNotPersistedAgain(t *testing.T) {
	t.Parallel()

	persister := &fakePersister{}

	manager := auth.NewConfigTokenManager(&auth.OAuth2Config{}, persister, "saved", time.Now().Add(time.Hour), nil)

	token, err := manager.GetToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "saved", token)
	assert.Empty(t, persister.tokens)
}

func TestConfigTokenManager_PersistError(t *testing.T) {
	t.Parallel()

	server := newClientCredentialsServer(t)

	var reported []error

	manager := auth.NewConfigTokenManager(&auth.OAuth2Config{
		TokenURL:     server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, &fakePersister{err: errDiskFull}, "", time.Time{}, func(err error) {
		reported = append(reported, err)
	})

	token, err := manager.GetToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "issued-1", token)

	require.Len(t, reported, 1)
	require.ErrorIs(t, reported[0], errDiskFull)
}
