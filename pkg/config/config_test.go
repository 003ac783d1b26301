package config_test

import (
	"os"
	"path/filepath"
	"testing"

	// Packages
	config "github.com/mutablelogic/go-assistant/pkg/config"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

// clearEnv unsets configuration variables for the duration of a test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GROQ_API_KEY", "GROQ_MODEL", "GROQ_ENDPOINT", "MCP_ADDR", "MCP_URL", "WTTR_ENDPOINT", "LOG_LEVEL", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func Test_config_001(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)

	// Defaults when no file exists
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal("llama3-8b-8192", cfg.Groq.Model)
	assert.Equal("https://api.groq.com/openai/v1", cfg.Groq.Endpoint)
	assert.Equal(":8000", cfg.Server.Addr)
	assert.Equal("http://localhost:8000/mcp", cfg.Client.URL)
	assert.Equal("https://wttr.in", cfg.Weather.Endpoint)
	assert.Equal("info", cfg.LogLevel)
	assert.False(cfg.HasLLM())

	url, err := cfg.ProbeURL()
	assert.NoError(err)
	assert.Equal("http://localhost:8000", url)
}

func Test_config_002(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("MCP_URL", "http://tools.local:9000/mcp")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.True(cfg.HasLLM())
	assert.Equal("http://tools.local:9000/mcp", cfg.Client.URL)

	url, err := cfg.ProbeURL()
	assert.NoError(err)
	assert.Equal("http://tools.local:9000", url)
}

func Test_config_003(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GROQ_MODEL=llama-3.3-70b-versatile\nLOG_LEVEL=debug\n"), 0600))
	clearEnv(t)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal("llama-3.3-70b-versatile", cfg.Groq.Model)
	assert.Equal("debug", cfg.LogLevel)
}

func Test_config_004(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "your_groq_key_here")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(cfg.HasLLM())

	_, err = config.ProbeURL("localhost:8000")
	assert.Error(err)

	usage, err := config.Usage()
	assert.NoError(err)
	assert.Contains(usage, "GROQ_API_KEY")
}
