package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/cma/internal/auth"
	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// Client is the HTTP transport used by the API client. It authenticates,
// retries transient failures, runs interceptors and turns error responses
// into *cma.APIError.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	logger       cma.Logger
	debug        bool
	userAgent    string
	interceptors *cma.InterceptorChain
}

// Request is a single HTTP call relative to the client's base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for the client. When retries are enabled it
// also receives the retrying transport's diagnostics.
func WithLogger(logger cma.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries of connection errors, 429 and 5xx
// responses.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// WithTimeout sets the overall timeout of a single attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors installs an interceptor chain.
func WithInterceptors(chain *cma.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a transport for baseURL. A nil tokenManager sends
// unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	retryClient.Backoff = rateLimitBackoff
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && retryClient.RetryMax > 0 {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// Do sends req. A response with status >= 400 is returned together with a
// *cma.APIError describing it.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, req, body)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.tokenManager != nil {
		refreshErr := c.tokenManager.RefreshToken(ctx)
		if refreshErr == nil {
			resp, err = c.do(ctx, req, body)
			if err != nil {
				return resp, err
			}
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, c.apiError(resp)
	}

	return resp, nil
}

func (c *Client) do(ctx context.Context, req *Request, body []byte) (*Response, error) {
	headers := make(http.Header)
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", c.userAgent)
	headers.Set(constants.HeaderClientRequest, uuid.NewString())

	if body != nil {
		headers.Set("Content-Type", constants.ContentType)
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	intercepted := &cma.HTTPRequest{
		Method:   req.Method,
		Path:     req.Path,
		Headers:  headers,
		Body:     body,
		Metadata: map[string]interface{}{},
	}

	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	err := c.authorize(ctx, intercepted.Headers)
	if err != nil {
		return nil, err
	}

	fullURL := c.baseURL + intercepted.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody interface{}
	if len(intercepted.Body) > 0 {
		rawBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, intercepted.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     intercepted.Method,
			"url":        fullURL,
			"request_id": intercepted.Headers.Get(constants.HeaderClientRequest),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if httpResp == nil {
		if err == nil {
			err = errEmptyResponse
		}

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":     resp.StatusCode,
			"request_id": resp.Headers.Get(constants.HeaderRequestID),
		})
	}

	if c.interceptors != nil {
		observed := &cma.HTTPResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}

		if resp.StatusCode >= http.StatusBadRequest {
			observed.Error = c.apiError(resp)
		}

		err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, observed)
		if err != nil {
			return resp, err
		}
	}

	return resp, nil
}

func (c *Client) authorize(ctx context.Context, headers http.Header) error {
	if c.tokenManager == nil {
		return nil
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("getting access token: %w", err)
	}

	if token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}

	return nil
}

func (c *Client) apiError(resp *Response) *cma.APIError {
	apiErr := cma.ParseAPIError(resp.StatusCode, resp.Body)
	if apiErr.RequestID == "" {
		apiErr.RequestID = resp.Headers.Get(constants.HeaderRequestID)
	}

	return apiErr
}

var errEmptyResponse = errors.New("no response received")

func encodeBody(body interface{}) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	}

	var buf bytes.Buffer

	err := json.NewEncoder(&buf).Encode(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// rateLimitBackoff waits as long as the API asks on a 429 and otherwise
// backs off exponentially.
func rateLimitBackoff(minWait, maxWait time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		seconds, err := strconv.Atoi(resp.Header.Get(constants.HeaderRateLimitWait))
		if err == nil && seconds >= 0 {
			return min(time.Duration(seconds)*time.Second, maxWait)
		}
	}

	return retryablehttp.DefaultBackoff(minWait, maxWait, attemptNum, resp)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// leveledLogger feeds retryablehttp's key/value logging into a cma.Logger.
type leveledLogger struct {
	logger cma.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, pairs(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, pairs(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, pairs(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, pairs(keysAndValues))
}

func pairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
