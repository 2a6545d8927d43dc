package cma

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorSys identifies the kind of an API error.
type ErrorSys struct {
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id"   yaml:"id"`
}

// APIError is the error body returned by the API for a non-2xx response.
type APIError struct {
	StatusCode int            `json:"-"                   yaml:"-"`
	Sys        ErrorSys       `json:"sys"                 yaml:"sys"`
	Message    string         `json:"message,omitempty"   yaml:"message,omitempty"`
	RequestID  string         `json:"requestId,omitempty" yaml:"requestId,omitempty"`
	Details    map[string]any `json:"details,omitempty"   yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	id := e.Sys.ID
	if id == "" {
		id = http.StatusText(e.StatusCode)
	}

	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (status: %d, request: %s)", id, e.Message, e.StatusCode, e.RequestID)
	}

	return fmt.Sprintf("%s: %s (status: %d)", id, e.Message, e.StatusCode)
}

// Error ids sent by the API.
const (
	ErrorIDNotFound         = "NotFound"
	ErrorIDVersionMismatch  = "VersionMismatch"
	ErrorIDRateLimited      = "RateLimitExceeded"
	ErrorIDAccessDenied     = "AccessDenied"
	ErrorIDAccessTokenInval = "AccessTokenInvalid"
	ErrorIDValidationFailed = "ValidationFailed"
	ErrorIDBadRequest       = "BadRequest"
	ErrorIDUnknownField     = "UnknownField"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrAccessTokenRequired = errors.New("access token or OAuth2 client credentials are required")
	ErrUnknownEndpoint     = errors.New("unknown endpoint")
	ErrMissingParam        = errors.New("missing request parameter")
	ErrNoMoreItems         = errors.New("no more items")
	ErrFieldNotFound       = errors.New("field not found")
	ErrLocaleNotFound      = errors.New("locale not found in field")
)

// ParseAPIError decodes an error body. Bodies that are not JSON still yield
// an APIError carrying the status code and raw text.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	err := json.Unmarshal(body, apiErr)
	if err != nil || (apiErr.Sys.ID == "" && apiErr.Message == "") {
		apiErr.Message = string(body)
	}

	apiErr.StatusCode = statusCode

	return apiErr
}

func hasErrorID(err error, id string, status int) bool {
	apiErr := &APIError{}
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.Sys.ID == id || (apiErr.Sys.ID == "" && apiErr.StatusCode == status)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasErrorID(err, ErrorIDNotFound, http.StatusNotFound)
}

// IsVersionMismatch checks if the error reports a stale entity version.
func IsVersionMismatch(err error) bool {
	return hasErrorID(err, ErrorIDVersionMismatch, http.StatusConflict)
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	return hasErrorID(err, ErrorIDRateLimited, http.StatusTooManyRequests)
}

// IsAccessDenied checks if the error is an authorization error.
func IsAccessDenied(err error) bool {
	return hasErrorID(err, ErrorIDAccessDenied, http.StatusForbidden) ||
		hasErrorID(err, ErrorIDAccessTokenInval, http.StatusUnauthorized)
}

// IsValidationFailed checks if the error is a validation error.
func IsValidationFailed(err error) bool {
	return hasErrorID(err, ErrorIDValidationFailed, http.StatusUnprocessableEntity)
}
