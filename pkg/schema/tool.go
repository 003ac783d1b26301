package schema

import (
	"encoding/json"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolDescriptor is a tool as published by a tool host. It is immutable
// once published.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// ToolInvocation names a tool and the arguments to call it with. Arguments
// are not validated before they reach the tool host.
type ToolInvocation struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolInvocation decodes JSON-encoded arguments, as returned by a model
// in a tool call. Empty arguments are permitted.
func NewToolInvocation(name string, arguments json.RawMessage) (ToolInvocation, error) {
	call := ToolInvocation{Name: name}
	if len(arguments) == 0 {
		return call, nil
	}
	if err := json.Unmarshal(arguments, &call.Arguments); err != nil {
		return call, err
	}
	return call, nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t ToolDescriptor) String() string {
	return types.Stringify(t)
}

func (t ToolInvocation) String() string {
	return types.Stringify(t)
}
