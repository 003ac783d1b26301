// Package orchestrator turns a user utterance into a tool invocation,
// either by asking a language model or by matching known phrasings, and
// turns the tool result into a reply.
package orchestrator

import (
	"context"
	"strings"

	// Packages
	assistant "github.com/mutablelogic/go-assistant"
	log "github.com/mutablelogic/go-assistant/pkg/log"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Orchestrator handles one utterance at a time. It holds no state between
// utterances beyond the tool host connection.
type Orchestrator struct {
	host    assistant.ToolHost
	llm     assistant.Completer
	system  string
	weather string
	tracer  trace.Tracer
}

// Opt is an option applied when the orchestrator is created
type Opt func(*Orchestrator) error

// Path identifies how an utterance was answered
type Path string

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultSystemPrompt = "You are a helpful weather assistant. When users ask about weather, use the get_weather tool to get current conditions."
	DefaultWeatherTool  = "get_weather"

	HelpMessage = "I can help you get weather information! Please ask like 'What's the weather in [city name]?'"
)

const (
	PathHelp    Path = "help"
	PathLLM     Path = "llm"
	PathPattern Path = "pattern"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns an orchestrator which calls tools on the given host. Without
// the WithLLM option every utterance is pattern matched.
func New(host assistant.ToolHost, opt ...Opt) (*Orchestrator, error) {
	if host == nil {
		return nil, assistant.ErrBadParameter.With("missing tool host")
	}
	self := &Orchestrator{
		host:    host,
		system:  DefaultSystemPrompt,
		weather: DefaultWeatherTool,
	}
	for _, fn := range opt {
		if err := fn(self); err != nil {
			return nil, err
		}
	}
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLLM sets the language model consulted before pattern matching. A nil
// value disables the model.
func WithLLM(llm assistant.Completer) Opt {
	return func(o *Orchestrator) error {
		o.llm = llm
		return nil
	}
}

// WithSystemPrompt replaces the system instruction sent to the model
func WithSystemPrompt(v string) Opt {
	return func(o *Orchestrator) error {
		if v = strings.TrimSpace(v); v == "" {
			return assistant.ErrBadParameter.With("empty system prompt")
		}
		o.system = v
		return nil
	}
}

// WithWeatherTool sets the tool called when an utterance is pattern matched
func WithWeatherTool(name string) Opt {
	return func(o *Orchestrator) error {
		if name = strings.TrimSpace(name); name == "" {
			return assistant.ErrBadParameter.With("empty tool name")
		}
		o.weather = name
		return nil
	}
}

// WithTracer records a span for every utterance
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *Orchestrator) error {
		o.tracer = tracer
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// HasLLM returns true if a language model is consulted
func (o *Orchestrator) HasLLM() bool {
	return o.llm != nil
}

// Respond returns the reply to an utterance. Model and tool failures are
// never returned: a model failure falls back to pattern matching and a tool
// failure is rendered into the reply. The error is non-nil only when the
// context is done.
func (o *Orchestrator) Respond(ctx context.Context, utterance string) (string, error) {
	reply, path := o.respond(ctx, utterance)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	log.WithField(ctx, "path", string(path)).Debug("responded")
	return reply, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (o *Orchestrator) respond(ctx context.Context, utterance string) (reply string, path Path) {
	ctx, endSpan := otel.StartSpan(o.tracer, ctx, "orchestrator.Respond",
		attribute.Bool("llm", o.llm != nil),
	)
	defer func() { endSpan(nil) }()

	// Blank utterances get the help message
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return HelpMessage, PathHelp
	}

	// Try the model first, any failure falls back to pattern matching
	if o.llm != nil {
		if reply, err := o.complete(ctx, utterance); err == nil {
			return reply, PathLLM
		} else if ctx.Err() == nil {
			log.Warnf(ctx, "language model failed, using pattern matching: %v", err)
		}
	}

	return o.match(ctx, utterance), PathPattern
}
