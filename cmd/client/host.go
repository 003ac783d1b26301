package main

import (
	"fmt"
	"os"

	// Packages
	groq "github.com/mutablelogic/go-assistant/pkg/groq"
	mcpclient "github.com/mutablelogic/go-assistant/pkg/mcp/client"
	orchestrator "github.com/mutablelogic/go-assistant/pkg/orchestrator"
	version "github.com/mutablelogic/go-assistant/pkg/version"
	client "github.com/mutablelogic/go-client"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Host struct {
	URL        string `name:"url" env:"MCP_URL" help:"Tool host endpoint, overrides the configuration (default http://localhost:8000/mcp)"`
	GroqAPIKey string `name:"groq-api-key" env:"GROQ_API_KEY" help:"Groq API key, enables the language model"`
	Model      string `name:"model" env:"GROQ_MODEL" help:"Language model, overrides the configuration"`
	NoLLM      bool   `name:"no-llm" help:"Always use pattern matching"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Endpoint returns the tool host endpoint
func (ctx *Globals) Endpoint() string {
	if ctx.URL != "" {
		return ctx.URL
	}
	return ctx.config.Client.URL
}

// APIKey returns the language model credential, or an empty string when
// the language model is disabled
func (ctx *Globals) APIKey() string {
	if ctx.NoLLM {
		return ""
	} else if ctx.GroqAPIKey != "" {
		return ctx.GroqAPIKey
	}
	return ctx.config.Groq.APIKey
}

// Connect returns a client connected to the tool host
func (ctx *Globals) Connect() (*mcpclient.Client, error) {
	host, err := mcpclient.New(ctx.Endpoint(),
		mcpclient.WithImplementation(serviceName, version.Version()),
		mcpclient.WithTracer(ctx.tracer),
	)
	if err != nil {
		return nil, err
	}
	if err := host.Connect(ctx.ctx); err != nil {
		return nil, err
	}
	return host, nil
}

// Orchestrator returns an orchestrator for the tool host, which consults
// the language model when a credential is configured
func (ctx *Globals) Orchestrator(host *mcpclient.Client) (*orchestrator.Orchestrator, error) {
	opts := []orchestrator.Opt{
		orchestrator.WithTracer(ctx.tracer),
	}
	if key := ctx.APIKey(); groq.IsCredential(key) {
		llm, err := ctx.LLM(key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithLLM(llm))
	}
	return orchestrator.New(host, opts...)
}

// LLM returns the language model client
func (ctx *Globals) LLM(key string) (*groq.Client, error) {
	clientOpts := []client.ClientOpt{}
	if ctx.Verbose {
		clientOpts = append(clientOpts, client.OptTrace(os.Stderr, true))
	}
	model := ctx.config.Groq.Model
	if ctx.Model != "" {
		model = ctx.Model
	}
	opts := []groq.Opt{
		groq.WithModel(model),
		groq.WithTracer(ctx.tracer),
		groq.WithClientOpts(clientOpts...),
	}
	if ctx.config.Groq.Endpoint != "" {
		opts = append(opts, groq.WithEndpoint(ctx.config.Groq.Endpoint))
	}
	llm, err := groq.New(key, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create language model client: %w", err)
	}
	return llm, nil
}
