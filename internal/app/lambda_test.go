package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sqsrelay/sqsrelay/internal/config"
	"github.com/sqsrelay/sqsrelay/internal/forwarder"
	"github.com/sqsrelay/sqsrelay/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const functionURLPostEvent = `{
  "version": "2.0",
  "routeKey": "$default",
  "rawPath": "/",
  "rawQueryString": "",
  "headers": {"host": "abc.lambda-url.us-east-1.on.aws", "content-type": "application/json"},
  "requestContext": {
    "accountId": "anonymous",
    "apiId": "abc",
    "domainName": "abc.lambda-url.us-east-1.on.aws",
    "http": {
      "method": "POST",
      "path": "/",
      "protocol": "HTTP/1.1",
      "sourceIp": "203.0.113.7",
      "userAgent": "curl/8.0"
    },
    "requestId": "req-123",
    "routeKey": "$default",
    "stage": "$default",
    "time": "17/Oct/2026:10:00:00 +0000",
    "timeEpoch": 1792231200000
  },
  "body": "{\"caller\":1}",
  "isBase64Encoded": false
}`

func newCountingUpstream(t *testing.T) (*httptest.Server, *atomic.Int32, *atomic.Value) {
	t.Helper()

	var calls atomic.Int32
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		auth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &auth
}

func newTestForwarder(url string) *forwarder.Forwarder {
	return forwarder.New(forwarder.Options{URL: url, Token: "SECRET"},
		forwarder.NewHTTPClient(5*time.Second), testutil.SilentLogger())
}

func TestNewLambdaHandler_FunctionURLPostIsNotForwardedByDefault(t *testing.T) {
	upstream, calls, _ := newCountingUpstream(t)
	cfg := &config.Config{}
	h := NewLambdaHandler(cfg, newTestForwarder(upstream.URL), testutil.SilentLogger())

	out, err := h.Invoke(context.Background(), []byte(functionURLPostEvent))
	require.NoError(t, err)

	var resp forwarder.Response
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `"event contains no records"`, string(resp.Body))
	assert.Equal(t, int32(0), calls.Load(), "upstream must not be called")
}

func TestNewLambdaHandler_HTTPEnabledServesRouter(t *testing.T) {
	upstream, calls, auth := newCountingUpstream(t)
	cfg := &config.Config{HTTPEnabled: true}
	h := NewLambdaHandler(cfg, newTestForwarder(upstream.URL), testutil.SilentLogger())

	out, err := h.Invoke(context.Background(), []byte(functionURLPostEvent))
	require.NoError(t, err)

	var resp struct {
		StatusCode int    `json:"statusCode"`
		Body       string `json:"body"`
	}
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, resp.Body)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Basic SECRET", auth.Load())
}

func TestNewLambdaHandler_SQSEventIsForwarded(t *testing.T) {
	upstream, calls, _ := newCountingUpstream(t)
	h := NewLambdaHandler(&config.Config{}, newTestForwarder(upstream.URL), testutil.SilentLogger())

	payload, err := json.Marshal(testutil.SQSEvent(`{"a":1}`))
	require.NoError(t, err)

	out, err := h.Invoke(context.Background(), payload)
	require.NoError(t, err)

	var resp forwarder.Response
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}
