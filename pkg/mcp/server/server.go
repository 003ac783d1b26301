// Package server implements the tool host, which publishes a toolkit over
// the Model Context Protocol using the streamable HTTP transport.
// https://modelcontextprotocol.io/specification/2025-06-18/basic/transports
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	// Packages
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	assistant "github.com/mutablelogic/go-assistant"
	log "github.com/mutablelogic/go-assistant/pkg/log"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	tool "github.com/mutablelogic/go-assistant/pkg/tool"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name    string
	version string
	started time.Time
	toolkit *tool.Toolkit
	server  *mcp.Server
	tracer  trace.Tracer
}

// Opt is an option applied when the server is created
type Opt func(*opts) error

type opts struct {
	instructions string
	tracer       trace.Tracer
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a tool host with the given name and version which publishes
// every tool in the toolkit
func New(name, version string, toolkit *tool.Toolkit, opt ...Opt) (*Server, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, assistant.ErrBadParameter.With("missing server name")
	}
	if toolkit == nil {
		return nil, assistant.ErrBadParameter.With("missing toolkit")
	}

	// Apply options
	o := new(opts)
	for _, fn := range opt {
		if err := fn(o); err != nil {
			return nil, err
		}
	}

	self := &Server{
		name:    name,
		version: version,
		started: time.Now(),
		toolkit: toolkit,
		tracer:  o.tracer,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, &mcp.ServerOptions{
			Instructions: o.instructions,
		}),
	}

	// Register the tools
	for _, t := range toolkit.Tools() {
		s, err := t.Schema()
		if err != nil {
			return nil, assistant.ErrInternalServerError.Withf("schema for %q: %v", t.Name(), err)
		}
		self.server.AddTool(&mcp.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: s,
		}, self.handler(t.Name()))
	}

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithInstructions sets the instructions sent to clients on initialization
func WithInstructions(v string) Opt {
	return func(o *opts) error {
		o.instructions = strings.TrimSpace(v)
		return nil
	}
}

// WithTracer records a span for every tool call
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (s *Server) Name() string {
	return s.name
}

func (s *Server) Version() string {
	return s.version
}

// Started returns the time the server was created
func (s *Server) Started() time.Time {
	return s.started
}

// Toolkit returns the published tool catalog
func (s *Server) Toolkit() *tool.Toolkit {
	return s.toolkit
}

// MCP returns the underlying protocol server
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Handler returns the streamable HTTP handler for the protocol endpoint
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// Call runs a tool and returns its result. Validation and tool failures are
// returned as an error-bearing result, so the returned error is always nil
// unless the context is done.
func (s *Server) Call(ctx context.Context, name string, input json.RawMessage) (_ schema.ToolResult, err error) {
	ctx, endSpan := otel.StartSpan(s.tracer, ctx, "mcp.CallTool",
		attribute.String("tool", name),
	)
	defer func() { endSpan(err) }()

	// Run the tool and time it
	start := time.Now()
	result := s.run(ctx, name, input)
	observe(name, result, time.Since(start))

	// Log the outcome
	if result.IsError() {
		log.WithField(ctx, "tool", name).Warnf("call failed: %s", result.Err())
	} else {
		log.WithField(ctx, "tool", name).Debugf("call succeeded in %v", time.Since(start).Truncate(time.Millisecond))
	}

	return result, ctx.Err()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = log.WithRequestID(ctx)

		var input json.RawMessage
		if req != nil && req.Params != nil {
			input = req.Params.Arguments
		}
		log.WithField(ctx, "tool", name).Infof("call %s", string(input))

		result, err := s.Call(ctx, name, input)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
			StructuredContent: json.RawMessage(data),
		}, nil
	}
}

func (s *Server) run(ctx context.Context, name string, input json.RawMessage) schema.ToolResult {
	out, err := s.toolkit.Run(ctx, name, input)
	if err != nil {
		return schema.NewErrorResult(err.Error())
	}
	result, err := schema.ResultFor(out)
	if err != nil {
		return schema.NewErrorResultf("Unexpected error: %v", err)
	}
	return result
}
