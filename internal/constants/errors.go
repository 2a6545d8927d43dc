package constants

import "errors"

// Configuration errors.
var (
	ErrNoTokenConfigured   = errors.New("no access token configured, use 'cma login' or set CMA_TOKEN")
	ErrNoSpaceSelected     = errors.New("no space selected, pass --space or run 'cma config set space <id>'")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrEmptyToken          = errors.New("token must not be empty")
	ErrUnsupportedFormat   = errors.New("unsupported output format")
	ErrControlNotFound     = errors.New("no control for field")
	ErrInvalidSettingValue = errors.New("settings must be given as key=value")
)
