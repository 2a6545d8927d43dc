package cma_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{"debug", msg, fields})
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{"info", msg, fields})
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{"warn", msg, fields})
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{"error", msg, fields})
}

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	t.Parallel()

	chain := cma.NewInterceptorChain()

	var executionOrder []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *cma.HTTPRequest) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})

	chain.AddRequestInterceptor(func(ctx context.Context, req *cma.HTTPRequest) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(t.Context(), &cma.HTTPRequest{Method: http.MethodGet, Path: "/spaces"})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	errBlocked := errors.New("blocked")
	chain := cma.NewInterceptorChain()

	var calledSecond bool

	chain.AddResponseInterceptor(func(ctx context.Context, req *cma.HTTPRequest, resp *cma.HTTPResponse) error {
		return errBlocked
	})

	chain.AddResponseInterceptor(func(ctx context.Context, req *cma.HTTPRequest, resp *cma.HTTPResponse) error {
		calledSecond = true

		return nil
	})

	err := chain.ExecuteResponseInterceptors(t.Context(), &cma.HTTPRequest{}, &cma.HTTPResponse{StatusCode: http.StatusOK})
	require.ErrorIs(t, err, errBlocked)
	assert.False(t, calledSecond)
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := cma.HeaderInterceptor(map[string]string{
		"X-Custom-Header": "custom-value",
		"X-Request-Id":    "123456",
	})

	req := &cma.HTTPRequest{Method: http.MethodGet, Path: "/spaces"}

	require.NoError(t, interceptor(t.Context(), req))

	assert.Equal(t, "custom-value", req.Headers.Get("X-Custom-Header"))
	assert.Equal(t, "123456", req.Headers.Get("X-Request-Id"))
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	req := &cma.HTTPRequest{Method: http.MethodPut, Path: "/spaces/sp1"}

	require.NoError(t, cma.LoggingInterceptor(logger)(t.Context(), req))
	require.NoError(t, cma.LoggingResponseInterceptor(logger)(t.Context(), req, &cma.HTTPResponse{StatusCode: http.StatusOK}))
	require.NoError(t, cma.LoggingResponseInterceptor(logger)(t.Context(), req, &cma.HTTPResponse{
		StatusCode: http.StatusConflict,
		Error:      errors.New("version mismatch"),
	}))

	require.Len(t, logger.entries, 3)
	assert.Equal(t, "API Request", logger.entries[0].msg)
	assert.Equal(t, "/spaces/sp1", logger.entries[0].fields["path"])
	assert.Equal(t, "debug", logger.entries[1].level)
	assert.Equal(t, http.StatusOK, logger.entries[1].fields["status_code"])
	assert.Equal(t, "error", logger.entries[2].level)
	assert.Equal(t, "version mismatch", logger.entries[2].fields["error"])
}

func TestRateLimitInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := cma.RateLimitInterceptor(20)
	req := &cma.HTTPRequest{}

	start := time.Now()

	for range 3 {
		require.NoError(t, interceptor(t.Context(), req))
	}

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimitInterceptor_ContextCanceled(t *testing.T) {
	t.Parallel()

	interceptor := cma.RateLimitInterceptor(1)
	req := &cma.HTTPRequest{}

	require.NoError(t, interceptor(t.Context(), req))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := interceptor(ctx, req)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRateLimitInterceptor_Disabled(t *testing.T) {
	t.Parallel()

	interceptor := cma.RateLimitInterceptor(0)

	for range 100 {
		require.NoError(t, interceptor(t.Context(), &cma.HTTPRequest{}))
	}
}
