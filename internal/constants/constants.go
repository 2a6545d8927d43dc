package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token requests.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are disabled unless RetryMax is configured.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used when the server asks for longer waits.
	ExtendedRetryWaitMax = 30 * time.Second

	// TokenExpirationBuffer is subtracted from token expiry to refresh early.
	TokenExpirationBuffer = 30 * time.Second
)

// API defaults.
const (
	// DefaultAPIEndpoint is the public management API.
	DefaultAPIEndpoint = "https://api.contentful.com"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "cma-go/1.0"

	// ContentType is the media type of every request body.
	ContentType = "application/vnd.contentful.management.v1+json"

	// DefaultEnvironment is used when no environment is selected.
	DefaultEnvironment = "master"
)

// Request headers.
const (
	HeaderVersion       = "X-Contentful-Version"
	HeaderContentType   = "X-Contentful-Content-Type"
	HeaderOrganization  = "X-Contentful-Organization"
	HeaderTeam          = "X-Contentful-Team"
	HeaderAlphaFeature  = "X-Contentful-Enable-Alpha-Feature"
	HeaderRequestID     = "X-Contentful-Request-Id"
	HeaderRateLimitWait = "X-Contentful-RateLimit-Reset"
	HeaderClientRequest = "X-Client-Request-Id"
)

// Alpha features enabled per request.
const (
	AlphaPendingOrgMembership = "pending-org-membership"
)

// Pagination.
const (
	// DefaultPageLimit is the page size used when listing everything.
	DefaultPageLimit = 100

	// MaxPageLimit is the largest page size the API accepts.
	MaxPageLimit = 1000
)

// Display values.
const (
	CheckMarkSymbol = "✓"
	NotAvailable    = "N/A"
	None            = "none"
	MaskedSecret    = "***"
)

// Entity statuses shown by the CLI.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusChanged   = "changed"
	StatusArchived  = "archived"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Output layout.
const (
	JSONIndentSize         = 2
	StringTruncationLength = 80
	TokenPrefixLength      = 8
)
