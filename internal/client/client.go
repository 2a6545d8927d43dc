package client

import (
	"context"
	"errors"
	"strings"

	"github.com/fivetwenty-io/cma/internal/auth"
	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/internal/http"
	"github.com/fivetwenty-io/cma/internal/rest"
	"github.com/fivetwenty-io/cma/pkg/cma"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// Client implements the cma.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       cma.Logger
	makeRequest  cma.MakeRequest
}

var _ cma.Client = (*Client)(nil)

// createTokenManager creates appropriate token manager based on config.
func createTokenManager(config *cma.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	if config.ClientID != "" && config.ClientSecret != "" {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     getTokenURL(config),
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Scopes:       config.Scopes,
		})
	}

	return nil
}

// getTokenURL returns token URL from config or fallback.
func getTokenURL(config *cma.Config) string {
	if config.TokenURL != "" {
		return config.TokenURL
	}

	return strings.TrimSuffix(config.APIEndpoint, "/") + "/oauth/token"
}

// createInterceptors builds the chain run around every request.
func createInterceptors(config *cma.Config) *cma.InterceptorChain {
	chain := cma.NewInterceptorChain()

	if len(config.Headers) > 0 {
		chain.AddRequestInterceptor(cma.HeaderInterceptor(config.Headers))
	}

	if config.RateLimit > 0 {
		chain.AddRequestInterceptor(cma.RateLimitInterceptor(config.RateLimit))
	}

	if config.Logger != nil {
		chain.AddRequestInterceptor(cma.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(cma.LoggingResponseInterceptor(config.Logger))
	}

	return chain
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *cma.Config) []http.Option {
	httpOpts := []http.Option{http.WithInterceptors(createInterceptors(config))}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a client from config. Either an access token or OAuth2 client
// credentials are required.
func New(ctx context.Context, config *cma.Config) (*Client, error) {
	if config == nil {
		return nil, cma.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, cma.ErrAPIEndpointRequired
	}

	tokenManager := createTokenManager(config)
	if tokenManager == nil {
		return nil, cma.ErrAccessTokenRequired
	}

	return NewWithTokenManager(config, tokenManager)
}

// NewWithTokenManager creates a client that authenticates through
// tokenManager.
func NewWithTokenManager(config *cma.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, cma.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, cma.ErrAPIEndpointRequired
	}

	if tokenManager == nil {
		return nil, ErrNoTokenManagerConfigured
	}

	httpClient := http.NewClient(config.APIEndpoint, tokenManager, createHTTPClientOptions(config)...)

	return &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       config.Logger,
		makeRequest:  rest.NewMakeRequest(httpClient),
	}, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// MakeRequest implements cma.Client.MakeRequest.
func (c *Client) MakeRequest() cma.MakeRequest {
	return c.makeRequest
}
