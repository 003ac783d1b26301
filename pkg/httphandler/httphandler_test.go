package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	httphandler "github.com/mutablelogic/go-assistant/pkg/httphandler"
	mcpserver "github.com/mutablelogic/go-assistant/pkg/mcp/server"
	tool "github.com/mutablelogic/go-assistant/pkg/tool"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

type cityRequest struct {
	City string `json:"city" jsonschema:"Name of the city"`
}

type cityTool struct{}

func (*cityTool) Name() string        { return "get_weather" }
func (*cityTool) Description() string { return "Get current weather for a city" }
func (*cityTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[cityRequest](nil)
}
func (*cityTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	var req cityRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, err
	}
	if req.City == "nowhere" {
		return nil, errors.New("no such place")
	}
	return map[string]any{"city": req.City}, nil
}

func serveMux(t *testing.T) *httprouter.Router {
	t.Helper()
	tk, err := tool.NewToolkit(&cityTool{})
	require.NoError(t, err)
	srv, err := mcpserver.New("weather-server", "1.0.0", tk)
	require.NoError(t, err)

	router, err := httprouter.NewRouter(context.Background(), http.NewServeMux(), "", "*", "weather-server", "1.0.0")
	require.NoError(t, err)
	require.NoError(t, httphandler.RegisterHandlers(srv, router))
	return router
}

func do(mux http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	mux.ServeHTTP(w, r)
	return w
}

///////////////////////////////////////////////////////////////////////////////
// ROUTER TESTS

func TestRegisterHandlers_Spec(t *testing.T) {
	assert := assert.New(t)
	router := serveMux(t)

	spec := router.Spec()
	require.NotNil(t, spec.Paths)
	paths := spec.Paths.MapOfPathItemValues
	for _, path := range []string{"/", httphandler.MCPPath, "/metrics", "/tool", "/tool/{name}"} {
		assert.Contains(paths, path)
	}
	assert.NotNil(paths[httphandler.MCPPath].Post)
	assert.NotNil(paths[httphandler.MCPPath].Delete)
	assert.NotNil(paths["/tool/{name}"].Get)
	assert.NotNil(paths["/tool/{name}"].Post)
	assert.Nil(paths["/tool"].Post)
}

func TestRegisterHandlers_Conflict(t *testing.T) {
	tk, err := tool.NewToolkit(&cityTool{})
	require.NoError(t, err)
	srv, err := mcpserver.New("weather-server", "1.0.0", tk)
	require.NoError(t, err)
	router, err := httprouter.NewRouter(context.Background(), http.NewServeMux(), "", "", "weather-server", "1.0.0")
	require.NoError(t, err)

	require.NoError(t, httphandler.RegisterHandlers(srv, router))
	assert.Error(t, httphandler.RegisterHandlers(srv, router))
}

func TestMCP_MethodNotAllowed(t *testing.T) {
	w := do(serveMux(t), http.MethodPut, httphandler.MCPPath, []byte(`{}`))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

///////////////////////////////////////////////////////////////////////////////
// HEALTH TESTS

func TestHealth_OK(t *testing.T) {
	assert := assert.New(t)
	w := do(serveMux(t), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp httphandler.Health
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal("healthy", resp.Status)
	assert.Equal("weather-server", resp.Service)
	assert.Equal("1.0.0", resp.Version)
	assert.Equal(1, resp.Tools)
	assert.False(resp.Timestamp.IsZero())
}

func TestHealth_NotFound(t *testing.T) {
	w := do(serveMux(t), http.MethodGet, "/nothing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	w := do(serveMux(t), http.MethodPost, "/", []byte(`{}`))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

///////////////////////////////////////////////////////////////////////////////
// TOOL TESTS

func TestToolList_OK(t *testing.T) {
	assert := assert.New(t)
	w := do(serveMux(t), http.MethodGet, "/tool", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp httphandler.ToolList
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.EqualValues(1, resp.Count)
	require.Len(t, resp.Body, 1)
	assert.Equal("get_weather", resp.Body[0].Name)
	assert.Contains(string(resp.Body[0].InputSchema), `"city"`)
}

func TestToolGet(t *testing.T) {
	mux := serveMux(t)
	w := do(mux, http.MethodGet, "/tool/get_weather", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "inputSchema")

	w = do(mux, http.MethodGet, "/tool/get_forecast", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToolCall_OK(t *testing.T) {
	w := do(serveMux(t), http.MethodPost, "/tool/get_weather", []byte(`{"city":"paris"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"city":"paris"}`, w.Body.String())
}

func TestToolCall_ErrorIsData(t *testing.T) {
	assert := assert.New(t)
	mux := serveMux(t)

	w := do(mux, http.MethodPost, "/tool/get_weather", []byte(`{"city":"nowhere"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(resp["error"], "no such place")

	// Invalid JSON is rejected before the tool runs
	w = do(mux, http.MethodPost, "/tool/get_weather", []byte(`{"city":`))
	assert.Equal(http.StatusBadRequest, w.Code)

	// Unknown tool
	w = do(mux, http.MethodPost, "/tool/get_forecast", []byte(`{}`))
	assert.Equal(http.StatusNotFound, w.Code)
}

///////////////////////////////////////////////////////////////////////////////
// METRICS TESTS

func TestMetrics(t *testing.T) {
	mux := serveMux(t)
	do(mux, http.MethodPost, "/tool/get_weather", []byte(`{"city":"paris"}`))

	w := do(mux, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "assistant_tool_calls_total"))
}
