// Package client connects to a tool host over the Model Context Protocol,
// enumerates its tool catalog and invokes tools.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	// Packages
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	assistant "github.com/mutablelogic/go-assistant"
	log "github.com/mutablelogic/go-assistant/pkg/log"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a tool host client. The tool catalog is fetched once per
// connection and cached until the client is closed.
type Client struct {
	endpoint  string
	impl      *mcp.Implementation
	transport mcp.Transport
	tracer    trace.Tracer

	mu      sync.Mutex
	session *mcp.ClientSession
	tools   []schema.ToolDescriptor
}

// Opt is an option applied when the client is created
type Opt func(*opts) error

type opts struct {
	name, version string
	httpClient    *http.Client
	transport     mcp.Transport
	tracer        trace.Tracer
}

var _ assistant.ToolHost = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultName    = "weather-client"
	defaultVersion = "1.0.0"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for the streamable HTTP endpoint, which is not
// contacted until Connect is called
func New(endpoint string, opt ...Opt) (*Client, error) {
	o := &opts{name: defaultName, version: defaultVersion}
	for _, fn := range opt {
		if err := fn(o); err != nil {
			return nil, err
		}
	}

	// The endpoint is required unless a transport is provided
	endpoint = strings.TrimSpace(endpoint)
	transport := o.transport
	if transport == nil {
		if endpoint == "" {
			return nil, assistant.ErrBadParameter.With("missing endpoint")
		}
		transport = &mcp.StreamableClientTransport{
			Endpoint:   endpoint,
			HTTPClient: o.httpClient,
		}
	}

	return &Client{
		endpoint:  endpoint,
		impl:      &mcp.Implementation{Name: o.name, Version: o.version},
		transport: transport,
		tracer:    o.tracer,
	}, nil
}

// Connect initializes a session with the tool host. It is a no-op when
// already connected.
func (c *Client) Connect(ctx context.Context) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return nil
	}

	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "mcp.Connect",
		attribute.String("endpoint", c.endpoint),
	)
	defer func() { endSpan(err) }()

	session, err := mcp.NewClient(c.impl, nil).Connect(ctx, c.transport, nil)
	if err != nil {
		return assistant.ErrUnavailable.Withf("connect to %q: %v", c.endpoint, err)
	}
	c.session = session
	if result := session.InitializeResult(); result != nil && result.ServerInfo != nil {
		log.Debugf(ctx, "connected to %s@%s", result.ServerInfo.Name, result.ServerInfo.Version)
	}

	return nil
}

// Close ends the session and drops the cached catalog
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	c.tools = nil
	return err
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithImplementation sets the client name and version sent on initialization
func WithImplementation(name, version string) Opt {
	return func(o *opts) error {
		if name = strings.TrimSpace(name); name == "" {
			return assistant.ErrBadParameter.With("empty client name")
		}
		o.name, o.version = name, version
		return nil
	}
}

// WithHTTPClient sets the HTTP client used by the streamable transport
func WithHTTPClient(client *http.Client) Opt {
	return func(o *opts) error {
		o.httpClient = client
		return nil
	}
}

// WithTransport replaces the streamable HTTP transport
func WithTransport(transport mcp.Transport) Opt {
	return func(o *opts) error {
		o.transport = transport
		return nil
	}
}

// WithTracer records spans for connect, list and call
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Endpoint returns the tool host endpoint
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Ping checks the session is alive
func (c *Client) Ping(ctx context.Context) error {
	session, err := c.current()
	if err != nil {
		return err
	}
	return session.Ping(ctx, nil)
}

// ListTools returns the tool catalog, fetching it on first use
func (c *Client) ListTools(ctx context.Context) (_ []schema.ToolDescriptor, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, assistant.ErrUnavailable.With("not connected")
	} else if c.tools != nil {
		return c.tools, nil
	}

	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "mcp.ListTools")
	defer func() { endSpan(err) }()

	tools := make([]schema.ToolDescriptor, 0, 2)
	for t, err := range c.session.Tools(ctx, nil) {
		if err != nil {
			return nil, err
		}
		descriptor := schema.ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
		}
		if t.InputSchema != nil {
			if descriptor.InputSchema, err = json.Marshal(t.InputSchema); err != nil {
				return nil, assistant.ErrInternalServerError.Withf("schema for %q: %v", t.Name, err)
			}
		}
		tools = append(tools, descriptor)
	}

	c.tools = tools
	return tools, nil
}

// CallTool invokes a tool. A tool failure reported by the host is returned
// as an error-bearing result. A transport failure is returned as an error.
func (c *Client) CallTool(ctx context.Context, call schema.ToolInvocation) (_ schema.ToolResult, err error) {
	session, err := c.current()
	if err != nil {
		return schema.ToolResult{}, err
	}

	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "mcp.CallTool",
		attribute.String("tool", call.Name),
	)
	defer func() { endSpan(err) }()

	params := &mcp.CallToolParams{Name: call.Name}
	if call.Arguments != nil {
		params.Arguments = call.Arguments
	}
	result, err := session.CallTool(ctx, params)
	if err != nil {
		return schema.ToolResult{}, err
	}

	return decode(result)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) current() (*mcp.ClientSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, assistant.ErrUnavailable.With("not connected")
	}
	return c.session, nil
}

// decode converts a call result into a tool result, preferring structured
// content over text
func decode(result *mcp.CallToolResult) (schema.ToolResult, error) {
	text := textOf(result)
	if result.IsError {
		if text == "" {
			text = "tool call failed"
		}
		return schema.NewErrorResult(text), nil
	}
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err != nil {
			return schema.ToolResult{}, err
		}
		return schema.ParseResult(data), nil
	}
	if text == "" {
		return schema.NewResult(map[string]any{}), nil
	}
	return schema.ParseResult([]byte(text)), nil
}

func textOf(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}
