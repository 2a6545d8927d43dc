package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fivetwenty-io/cma/internal/auth"
	"github.com/fivetwenty-io/cma/internal/client"
	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/fivetwenty-io/cma/pkg/cmaclient"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// NewLogger returns the CLI logger. Verbose output goes to stderr at debug
// level; otherwise only warnings and errors are shown.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// usesClientCredentials reports whether tokens are obtained with the OAuth2
// client_credentials grant rather than configured directly.
func (c *Config) usesClientCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// ClientConfig builds the SDK configuration for the CLI configuration.
func ClientConfig(config *Config, verbose bool) (*cma.Config, error) {
	if config.Token == "" && !config.usesClientCredentials() {
		return nil, constants.ErrNoTokenConfigured
	}

	clientConfig := &cma.Config{
		APIEndpoint:  cmaclient.NormalizeEndpoint(config.API),
		AccessToken:  config.Token,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.TokenURL,
		UserAgent:    constants.DefaultUserAgent + " cma-cli",
		RetryMax:     config.RetryMax,
	}

	if clientConfig.TokenURL == "" {
		clientConfig.TokenURL = clientConfig.APIEndpoint + "/oauth/token"
	}

	if verbose {
		clientConfig.Logger = cma.NewZerologLogger(NewLogger(true))
		clientConfig.Debug = true
	}

	return clientConfig, nil
}

// fileTokenPersister stores newly issued tokens in the CLI config file.
type fileTokenPersister struct {
	path   string
	config *Config
}

// SaveToken implements auth.ConfigPersister.
func (p *fileTokenPersister) SaveToken(token string, expiresAt time.Time) error {
	p.config.Token = token
	p.config.TokenExpiry = ""

	if !expiresAt.IsZero() {
		p.config.TokenExpiry = expiresAt.UTC().Format(time.RFC3339)
	}

	return SaveConfig(p.path, p.config)
}

// TokenManager returns the token source for config. With client credentials
// the saved token is reused until it expires and every new token is written
// back to path.
func TokenManager(clientConfig *cma.Config, config *Config, path string, logger zerolog.Logger) auth.TokenManager {
	if !config.usesClientCredentials() {
		return auth.NewStaticTokenManager(config.Token)
	}

	var expiry time.Time
	if config.TokenExpiry != "" {
		parsed, err := time.Parse(time.RFC3339, config.TokenExpiry)
		if err == nil {
			expiry = parsed
		}
	}

	return auth.NewConfigTokenManager(&auth.OAuth2Config{
		TokenURL:     clientConfig.TokenURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
	}, &fileTokenPersister{path: path, config: config}, config.Token, expiry, func(err error) {
		logger.Warn().Err(err).Str("file", path).Msg("failed to save token")
	})
}

// NewClient creates an SDK client for config, persisting refreshed tokens to
// path.
func NewClient(config *Config, path string, verbose bool) (cma.Client, error) {
	clientConfig, err := ClientConfig(config, verbose)
	if err != nil {
		return nil, err
	}

	c, err := client.NewWithTokenManager(clientConfig, TokenManager(clientConfig, config, path, NewLogger(verbose)))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return c, nil
}

// CreateClient creates an SDK client from the effective configuration.
func CreateClient() (cma.Client, *Config, error) {
	config, err := LoadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	path, err := ConfigFilePath(viper.GetViper())
	if err != nil && config.usesClientCredentials() {
		return nil, nil, err
	}

	c, err := NewClient(config, path, viper.GetBool("verbose"))
	if err != nil {
		return nil, nil, err
	}

	return c, config, nil
}

// CurrentEnvironment resolves the selected space and environment.
func CurrentEnvironment(ctx context.Context) (*cma.Environment, error) {
	c, config, err := CreateClient()
	if err != nil {
		return nil, err
	}

	if config.Space == "" {
		return nil, constants.ErrNoSpaceSelected
	}

	space, err := c.GetSpace(ctx, config.Space)
	if err != nil {
		return nil, err
	}

	return space.GetEnvironment(ctx, config.Environment)
}
