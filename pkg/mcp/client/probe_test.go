package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-assistant/pkg/mcp/client"
	assert "github.com/stretchr/testify/assert"
)

func Test_probe_001(t *testing.T) {
	assert := assert.New(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer ts.Close()

	status, err := client.Probe(context.Background(), ts.URL)
	assert.NoError(err)
	assert.Equal(client.ProbeOK, status)
	assert.Equal("ok", status.String())
}

func Test_probe_002(t *testing.T) {
	// Responded but not healthy
	assert := assert.New(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	status, err := client.Probe(context.Background(), ts.URL)
	assert.Error(err)
	assert.Equal(client.ProbeDegraded, status)
	assert.Equal("degraded", status.String())
}

func Test_probe_003(t *testing.T) {
	// Nothing listening
	assert := assert.New(t)
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	status, err := client.Probe(context.Background(), url)
	assert.Error(err)
	assert.Equal(client.ProbeDown, status)
	assert.Equal("down", status.String())
}
