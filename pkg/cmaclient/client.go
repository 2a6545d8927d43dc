package cmaclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/cma/internal/client"
	"github.com/fivetwenty-io/cma/pkg/cma"
)

// New creates a management API client. config is not modified.
func New(ctx context.Context, config *cma.Config) (cma.Client, error) {
	if config == nil {
		return nil, cma.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, cma.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithToken creates a client authenticated with a personal access token.
func NewWithToken(ctx context.Context, endpoint, token string) (cma.Client, error) {
	return New(ctx, &cma.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a client that obtains its tokens with the
// OAuth2 client_credentials grant.
func NewWithClientCredentials(ctx context.Context, endpoint, clientID, clientSecret string) (cma.Client, error) {
	return New(ctx, &cma.Config{
		APIEndpoint:  endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NormalizeEndpoint trims a trailing slash and defaults the scheme to https.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
