package groq

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES - OpenAI-compatible REST API wire format
//
// Reference: https://console.groq.com/docs/api-reference#chat-create

///////////////////////////////////////////////////////////////////////////////
// CHAT COMPLETIONS - REQUEST

// chatCompletionRequest is the request body for POST /chat/completions.
type chatCompletionRequest struct {
	Model     string           `json:"model"`
	Messages  []chatMessage    `json:"messages"`
	MaxTokens *uint            `json:"max_tokens,omitempty"`
	Tools     []toolDefinition `json:"tools,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// CHAT COMPLETIONS - RESPONSE

// chatCompletionResponse is the response body from POST /chat/completions.
type chatCompletionResponse struct {
	Id      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

// chatChoice is one element of the choices array.
type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// chatUsage reports token counts for a chat completion request.
type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

///////////////////////////////////////////////////////////////////////////////
// MESSAGES

// chatMessage is a single turn in a conversation. Assistant messages may
// carry tool calls, and tool messages carry the id of the call they answer.
type chatMessage struct {
	Role       string     `json:"role"`
	Content    *string    `json:"content"`                // null for tool-call-only assistant messages
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`   // assistant only
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool role only
}

///////////////////////////////////////////////////////////////////////////////
// TOOL CALLS

// toolCall is a tool invocation in an assistant message.
type toolCall struct {
	Id       string       `json:"id"`
	Type     string       `json:"type"` // always "function"
	Function toolFunction `json:"function"`
}

// toolFunction carries the function name and JSON-encoded arguments
type toolFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string
}

///////////////////////////////////////////////////////////////////////////////
// TOOL DEFINITIONS

// toolDefinition describes a tool the model may call.
type toolDefinition struct {
	Type     string          `json:"type"` // always "function"
	Function toolFunctionDef `json:"function"`
}

// toolFunctionDef describes the function signature for a tool definition.
type toolFunctionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"` // JSON Schema
}
