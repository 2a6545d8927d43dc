package cma

import (
	"context"
	"time"
)

// Config represents client configuration for building a Client.
//
// # Authentication
//
// Provide either AccessToken (a personal access token or an OAuth token
// obtained elsewhere), or ClientID/ClientSecret/TokenURL to have the client
// obtain tokens with the OAuth2 client_credentials grant. AccessToken wins
// when both are set.
//
// # Timeouts and retries
//
// Per-request timeouts should be controlled via the context passed to client
// methods. The client does not retry by default; RetryMax > 0 enables
// transport-level retries for connection errors, 429 and 5xx responses.
type Config struct {
	// APIEndpoint: base URL of the management API, e.g.
	// "https://api.contentful.com". cmaclient.New trims a trailing slash and
	// adds "https://" when no scheme is present.
	APIEndpoint string

	// AccessToken: sent as a Bearer token.
	AccessToken string
	// ClientID, ClientSecret, TokenURL and Scopes configure the OAuth2
	// client_credentials grant.
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string

	// HTTPTimeout: overall timeout of the underlying http.Client. Zero uses
	// the package default.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RateLimit: client-side cap on requests started per second. Zero
	// disables it.
	RateLimit int
	// Debug: enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Headers: sent with every request, e.g. an alpha feature flag. They
	// replace headers of the same name set by the client.
	Headers map[string]string
}

// Client is the entry point to the API: spaces, organizations and the
// current user. Everything else is reached through the returned entities.
type Client interface {
	GetSpace(ctx context.Context, spaceID string) (*Space, error)
	GetSpaces(ctx context.Context, query *QueryParams) (*Collection[*Space], error)
	CreateSpace(ctx context.Context, organizationID string, fields SpaceFields) (*Space, error)
	GetOrganization(ctx context.Context, organizationID string) (*Organization, error)
	GetOrganizations(ctx context.Context, query *QueryParams) (*Collection[*Organization], error)
	GetCurrentUser(ctx context.Context) (*User, error)
	// MakeRequest exposes the transport callable the entities are bound to.
	MakeRequest() MakeRequest
}
