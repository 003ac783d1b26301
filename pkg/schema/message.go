package schema

import (
	"encoding/json"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is a role-tagged message exchanged with a chat-completions backend
type Message struct {
	Role       string     `json:"role"`                   // "system", "user", "assistant", "tool"
	Content    string     `json:"content,omitempty"`      // Text content
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // Tool-call requests (assistant only)
	ToolCallID string     `json:"tool_call_id,omitempty"` // Correlates a tool message with its call
}

// ToolCall is a tool-call request made by a model
type ToolCall struct {
	ID        string          `json:"id,omitempty"`        // Provider-assigned call ID
	Name      string          `json:"name"`                // Tool function name
	Arguments json.RawMessage `json:"arguments,omitempty"` // JSON-encoded arguments
}

// Conversation is the ordered sequence of messages for a single user query.
// It is rebuilt for every query and never persisted.
type Conversation []*Message

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewConversation returns a conversation with an optional system prompt
// followed by the user message
func NewConversation(system, user string) Conversation {
	conversation := make(Conversation, 0, 4)
	if system != "" {
		conversation = append(conversation, &Message{Role: RoleSystem, Content: system})
	}
	return append(conversation, &Message{Role: RoleUser, Content: user})
}

// NewToolMessage returns a tool-role message carrying the JSON encoding of
// a result
func NewToolMessage(id string, result ToolResult) (*Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &Message{Role: RoleTool, ToolCallID: id, Content: string(data)}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds messages to the end of the conversation
func (c *Conversation) Append(messages ...*Message) {
	*c = append(*c, messages...)
}

// Last returns the last message in the conversation, or nil
func (c Conversation) Last() *Message {
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

// HasToolCalls returns true if the message requests one or more tool calls
func (m *Message) HasToolCalls() bool {
	return m != nil && len(m.ToolCalls) > 0
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return types.Stringify(m)
}

func (c Conversation) String() string {
	return types.Stringify(c)
}
