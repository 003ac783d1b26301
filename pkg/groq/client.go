/*
groq implements a chat completions client for the Groq API, which is
compatible with the OpenAI function-calling format.
https://console.groq.com/docs/api-reference
*/
package groq

import (
	"strings"
	"time"

	// Packages
	assistant "github.com/mutablelogic/go-assistant"
	client "github.com/mutablelogic/go-client"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	model     string
	maxTokens uint
	tracer    trace.Tracer
}

// Opt is an option applied when the client is created
type Opt func(*opts) error

type opts struct {
	endpoint  string
	model     string
	maxTokens uint
	tracer    trace.Tracer
	client    []client.ClientOpt
}

var _ assistant.Completer = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.groq.com/openai/v1"

	DefaultModel     = "llama3-8b-8192"
	DefaultMaxTokens = 1000
	DefaultTimeout   = 30 * time.Second

	// Placeholder credential shipped in example files
	placeholderKey = "your_groq_key_here"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new Groq API client with the given API key
func New(apiKey string, opt ...Opt) (*Client, error) {
	if !IsCredential(apiKey) {
		return nil, assistant.ErrBadParameter.With("missing API key")
	}

	// Apply options
	o := &opts{
		endpoint:  endPoint,
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
	}
	for _, fn := range opt {
		if err := fn(o); err != nil {
			return nil, err
		}
	}

	// Create the HTTP client, caller options take priority
	defaults := []client.ClientOpt{
		client.OptEndpoint(o.endpoint),
		client.OptTimeout(DefaultTimeout),
		client.OptReqToken(client.Token{Scheme: client.Bearer, Value: strings.TrimSpace(apiKey)}),
	}
	if o.tracer != nil {
		defaults = append(defaults, client.OptTracer(o.tracer))
	}
	c, err := client.New(append(defaults, o.client...)...)
	if err != nil {
		return nil, err
	}

	return &Client{
		Client:    c,
		model:     o.model,
		maxTokens: o.maxTokens,
		tracer:    o.tracer,
	}, nil
}

// IsCredential returns false for an empty or placeholder key
func IsCredential(apiKey string) bool {
	apiKey = strings.TrimSpace(apiKey)
	return apiKey != "" && apiKey != placeholderKey
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithEndpoint sets the base URL of an OpenAI-compatible API
func WithEndpoint(url string) Opt {
	return func(o *opts) error {
		if url = strings.TrimSpace(url); url == "" {
			return assistant.ErrBadParameter.With("empty endpoint")
		}
		o.endpoint = url
		return nil
	}
}

// WithModel sets the chat completions model
func WithModel(name string) Opt {
	return func(o *opts) error {
		if name = strings.TrimSpace(name); name == "" {
			return assistant.ErrBadParameter.With("empty model name")
		}
		o.model = name
		return nil
	}
}

// WithMaxTokens sets the maximum number of tokens to generate
func WithMaxTokens(n uint) Opt {
	return func(o *opts) error {
		if n == 0 {
			return assistant.ErrBadParameter.With("max tokens must be greater than zero")
		}
		o.maxTokens = n
		return nil
	}
}

// WithTracer records spans for each completion
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

// WithClientOpts passes options to the underlying HTTP client
func WithClientOpts(opt ...client.ClientOpt) Opt {
	return func(o *opts) error {
		o.client = append(o.client, opt...)
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Model returns the model used for completions
func (c *Client) Model() string {
	return c.model
}
