package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fivetwenty-io/cma/internal/auth"
	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SetValue(t *testing.T) {
	t.Parallel()

	config := &Config{}

	require.NoError(t, config.SetValue("api", "https://api.example.com"))
	require.NoError(t, config.SetValue("token", "secret"))
	require.NoError(t, config.SetValue("space", "sp1"))
	require.NoError(t, config.SetValue("environment", "staging"))
	require.NoError(t, config.SetValue("output", "json"))

	assert.Equal(t, &Config{
		API:         "https://api.example.com",
		Token:       "secret",
		Space:       "sp1",
		Environment: "staging",
		Output:      "json",
	}, config)

	require.ErrorIs(t, config.SetValue("output", "xml"), constants.ErrUnsupportedFormat)
	require.ErrorIs(t, config.SetValue("colour", "red"), constants.ErrUnknownConfigKey)
}

func TestConfig_SaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	require.NoError(t, SaveConfig(path, &Config{Token: "secret", Space: "sp1", RetryMax: 3}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	loaded, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "secret", loaded.Token)
	assert.Equal(t, "sp1", loaded.Space)
	assert.Equal(t, 3, loaded.RetryMax)
	assert.Equal(t, constants.DefaultAPIEndpoint, loaded.API)
	assert.Equal(t, constants.DefaultEnvironment, loaded.Environment)

	configPath, err := ConfigFilePath(v)
	require.NoError(t, err)
	assert.Equal(t, path, configPath)
}

func TestClientConfig(t *testing.T) {
	t.Parallel()

	_, err := ClientConfig(&Config{API: "https://api.example.com"}, false)
	require.ErrorIs(t, err, constants.ErrNoTokenConfigured)

	clientConfig, err := ClientConfig(&Config{API: "https://api.example.com", Token: "secret", RetryMax: 2}, true)
	require.NoError(t, err)
	assert.Equal(t, "secret", clientConfig.AccessToken)
	assert.Equal(t, 2, clientConfig.RetryMax)
	assert.True(t, clientConfig.Debug)
	assert.NotNil(t, clientConfig.Logger)
	assert.Contains(t, clientConfig.UserAgent, "cma-cli")
}

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"show", "set", "unset"}, names)
}

func TestTokenManager_Static(t *testing.T) {
	t.Parallel()

	config := &Config{API: "https://api.example.com", Token: "secret"}
	clientConfig, err := ClientConfig(config, false)
	require.NoError(t, err)

	manager := TokenManager(clientConfig, config, "", zerolog.Nop())
	assert.IsType(t, &auth.StaticTokenManager{}, manager)
}

func TestTokenManager_PersistsIssuedTokens(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/oauth/token", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"access_token": "issued",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "config.yml")
	config := &Config{API: server.URL, ClientID: "client-id", ClientSecret: "client-secret", Space: "sp1"}

	clientConfig, err := ClientConfig(config, false)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/oauth/token", clientConfig.TokenURL)

	manager := TokenManager(clientConfig, config, path, zerolog.Nop())
	assert.IsType(t, &auth.ConfigTokenManager{}, manager)

	token, err := manager.GetToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "issued", token)

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	saved, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "issued", saved.Token)
	assert.Equal(t, "sp1", saved.Space)
	assert.Equal(t, "client-id", saved.ClientID)

	expiry, err := time.Parse(time.RFC3339, saved.TokenExpiry)
	require.NoError(t, err)
	assert.True(t, expiry.After(time.Now()))
}

func TestTokenManager_ReusesSavedToken(t *testing.T) {
	t.Parallel()

	config := &Config{
		API:          "https://api.example.com",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Token:        "saved",
		TokenExpiry:  time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	}

	clientConfig, err := ClientConfig(config, false)
	require.NoError(t, err)

	token, err := TokenManager(clientConfig, config, filepath.Join(t.TempDir(), "config.yml"), zerolog.Nop()).GetToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "saved", token)
}
