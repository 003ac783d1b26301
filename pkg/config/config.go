package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	// Packages
	cleanenv "github.com/ilyakaznacheev/cleanenv"
	groq "github.com/mutablelogic/go-assistant/pkg/groq"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config aggregates the configuration for both the tool host and the client
type Config struct {
	Groq     GroqConfig   `yaml:"groq"`
	Server   ServerConfig `yaml:"server"`
	Client   ClientConfig `yaml:"client"`
	Weather  WttrConfig   `yaml:"weather"`
	LogLevel string       `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" env-description:"Log level (debug, info, warn, error)"`
	OTel     OTelConfig   `yaml:"otel"`
}

type GroqConfig struct {
	APIKey   string `yaml:"api_key" env:"GROQ_API_KEY" env-description:"Groq API key, enables the LLM path"`
	Model    string `yaml:"model" env:"GROQ_MODEL" env-default:"llama3-8b-8192" env-description:"Chat completions model"`
	Endpoint string `yaml:"endpoint" env:"GROQ_ENDPOINT" env-default:"https://api.groq.com/openai/v1" env-description:"OpenAI-compatible API endpoint"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" env:"MCP_ADDR" env-default:":8000" env-description:"Tool host listen address"`
}

type ClientConfig struct {
	URL string `yaml:"url" env:"MCP_URL" env-default:"http://localhost:8000/mcp" env-description:"Tool host MCP endpoint"`
}

type WttrConfig struct {
	Endpoint string `yaml:"endpoint" env:"WTTR_ENDPOINT" env-default:"https://wttr.in" env-description:"Weather provider endpoint"`
}

type OTelConfig struct {
	Endpoint string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-description:"OTLP/HTTP trace collector, tracing is disabled when empty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultPath is the file read before the environment
	DefaultPath = ".env"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Load reads configuration from the first file in paths that exists
// (default .env) and then from the environment, which takes priority.
// A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	var cfg Config
	if len(paths) == 0 {
		paths = []string{DefaultPath}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env config: %w", err)
	}
	return &cfg, nil
}

// Usage returns a description of the environment variables
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// HasLLM returns true if a usable LLM credential is configured. Empty
// and placeholder keys are treated as absent.
func (c *Config) HasLLM() bool {
	return groq.IsCredential(c.Groq.APIKey)
}

// ProbeURL returns the origin of the tool host URL, which is the target of
// the reachability probe
func (c *Config) ProbeURL() (string, error) {
	return ProbeURL(c.Client.URL)
}

// ProbeURL returns the scheme and host of a URL
func ProbeURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	} else if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid URL: %q", endpoint)
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host}).String(), nil
}
