package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwsl-data/nwsl-analytics/jsonrpc"
)

type echoHandler struct{}

func (echoHandler) Handle(ctx context.Context, request jsonrpc.Request) jsonrpc.Response {
	return jsonrpc.NewResponse(request.Id, map[string]string{"method": request.Method}, nil)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestHTTPServer(store Pinger) *Server {
	return New(echoHandler{}, store, testLogger(), "nwsl-analytics", "1.0.0", false)
}

func TestMCPEndpointDispatches(t *testing.T) {
	s := newTestHTTPServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/mcp",
		strings.NewReader(`{"jsonrpc":"2.0","method":"tools/list","id":9}`))
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Jsonrpc string            `json:"jsonrpc"`
		Result  map[string]string `json:"result"`
		ID      int               `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2.0", resp.Jsonrpc)
	assert.Equal(t, "tools/list", resp.Result["method"])
	assert.Equal(t, 9, resp.ID)
}

func TestMCPEndpointParseError(t *testing.T) {
	s := newTestHTTPServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{nope"))
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Error *jsonrpc.Error  `json:"error"`
		ID    json.RawMessage `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrParse, resp.Error.Code)
	assert.JSONEq(t, "null", string(resp.ID))
}

func TestMCPEndpointMissingMethod(t *testing.T) {
	s := newTestHTTPServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/mcp",
		strings.NewReader(`{"jsonrpc":"2.0","id":3}`))
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	var resp struct {
		Error *jsonrpc.Error `json:"error"`
		ID    int            `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrInvalidRequest, resp.Error.Code)
	assert.Equal(t, 3, resp.ID)
}

func TestReadinessLifecycle(t *testing.T) {
	s := newTestHTTPServer(fakePinger{})

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	s.SetReady(true)
	w = httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadinessDegradedOnStoreFailure(t *testing.T) {
	s := newTestHTTPServer(fakePinger{err: errors.New("connection refused")})
	s.SetReady(true)

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}

func TestHealthAlwaysOK(t *testing.T) {
	s := newTestHTTPServer(fakePinger{err: errors.New("down")})

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestHTTPServer(nil)

	req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestHTTPServer(nil)

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
