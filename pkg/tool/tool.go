package tool

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	assistant "github.com/mutablelogic/go-assistant"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input, which must be an object
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Toolkit is an immutable catalog of tools with unique names
type Toolkit struct {
	tools map[string]Tool
	names []string
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a catalog with the given tools. Returns an error if
// any tool has an invalid or duplicate name, or an input schema which is
// not an object. The catalog cannot be changed once created.
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make(map[string]Tool, len(tools)),
		names: make([]string, 0, len(tools)),
	}
	for _, t := range tools {
		if err := tk.register(t); err != nil {
			return nil, err
		}
	}
	slices.Sort(tk.names)
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Len returns the number of tools in the catalog
func (tk *Toolkit) Len() int {
	return len(tk.names)
}

// Tools returns all tools in the catalog, ordered by name
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, 0, len(tk.names))
	for _, name := range tk.names {
		result = append(result, tk.tools[name])
	}
	return result
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	return tk.tools[name]
}

// Descriptors returns the published form of every tool, ordered by name
func (tk *Toolkit) Descriptors() ([]schema.ToolDescriptor, error) {
	result := make([]schema.ToolDescriptor, 0, len(tk.names))
	for _, t := range tk.Tools() {
		s, err := t.Schema()
		if err != nil {
			return nil, assistant.ErrInternalServerError.Withf("schema for %q: %v", t.Name(), err)
		}
		data, err := json.Marshal(s)
		if err != nil {
			return nil, assistant.ErrInternalServerError.Withf("schema for %q: %v", t.Name(), err)
		}
		result = append(result, schema.ToolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: data,
		})
	}
	return result, nil
}

// Run executes a tool by name with the given input.
// The input should be json.RawMessage, []byte, nil or a value to be
// marshalled. Returns an error if the tool is not found, the input does
// not match the schema, or the tool execution fails.
func (tk *Toolkit) Run(ctx context.Context, name string, input any) (any, error) {
	// Lookup the tool
	tool := tk.Lookup(name)
	if tool == nil {
		return nil, assistant.ErrNotFound.Withf("tool not found: %q", name)
	}

	// Convert input to json.RawMessage
	var rawInput json.RawMessage
	if input != nil {
		switch v := input.(type) {
		case json.RawMessage:
			rawInput = v
		case []byte:
			rawInput = json.RawMessage(v)
		default:
			data, err := json.Marshal(input)
			if err != nil {
				return nil, assistant.ErrBadParameter.Withf("failed to marshal input: %v", err)
			}
			rawInput = json.RawMessage(data)
		}
	}

	// Validate input against schema, an absent input is an empty object
	if err := validate(tool, rawInput); err != nil {
		return nil, err
	}

	// Run the tool with raw JSON
	return tool.Run(ctx, rawInput)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	return types.Stringify(tk.names)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (tk *Toolkit) register(t Tool) error {
	if t == nil {
		return assistant.ErrBadParameter.With("tool cannot be nil")
	}
	name := t.Name()
	if !types.IsIdentifier(name) {
		return assistant.ErrBadParameter.Withf("invalid tool name: %q", name)
	}
	if _, exists := tk.tools[name]; exists {
		return assistant.ErrConflict.Withf("duplicate tool name: %q", name)
	}
	if s, err := t.Schema(); err != nil {
		return assistant.ErrBadParameter.Withf("schema for %q: %v", name, err)
	} else if s == nil || s.Type != "object" {
		return assistant.ErrBadParameter.Withf("schema for %q: input must be an object", name)
	}
	tk.tools[name] = t
	tk.names = append(tk.names, name)
	return nil
}

func validate(tool Tool, input json.RawMessage) error {
	s, err := tool.Schema()
	if err != nil {
		return assistant.ErrBadParameter.Withf("schema generation failed: %v", err)
	}

	// Unmarshal into a map for validation
	mapInput := map[string]any{}
	if len(input) > 0 && strings.TrimSpace(string(input)) != "null" {
		if err := json.Unmarshal(input, &mapInput); err != nil {
			return assistant.ErrBadParameter.Withf("failed to unmarshal JSON input: %v", err)
		}
	}

	// Validate against schema
	resolved, err := s.Resolve(nil)
	if err != nil {
		return assistant.ErrBadParameter.Withf("schema resolution failed: %v", err)
	}
	if err := resolved.Validate(mapInput); err != nil {
		return assistant.ErrBadParameter.Withf("input validation failed: %v", err)
	}
	return nil
}
