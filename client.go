package assistant

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolHost is the interface to a process which publishes a tool catalog
// and executes tool invocations
type ToolHost interface {
	// ListTools returns the published tool catalog
	ListTools(ctx context.Context) ([]schema.ToolDescriptor, error)

	// CallTool invokes a named tool. Provider faults are returned as an
	// error-bearing result, transport faults as an error.
	CallTool(ctx context.Context, call schema.ToolInvocation) (schema.ToolResult, error)
}

// Completer is the interface to a chat-completions backend which may
// respond with tool-call requests
type Completer interface {
	// Complete sends the conversation and the tool catalog (which may be
	// empty) and returns the first choice of the reply
	Complete(ctx context.Context, conversation schema.Conversation, tools []schema.ToolDescriptor) (*schema.Message, error)
}
