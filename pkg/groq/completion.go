package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	// Packages
	assistant "github.com/mutablelogic/go-assistant"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	client "github.com/mutablelogic/go-client"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var emptyObject = json.RawMessage(`{"type":"object"}`)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Complete sends the conversation and returns the message of the first
// choice. The tools field is omitted from the request when tools is empty.
func (c *Client) Complete(ctx context.Context, conversation schema.Conversation, tools []schema.ToolDescriptor) (_ *schema.Message, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "groq.Complete",
		attribute.String("model", c.model),
		attribute.Int("messages", len(conversation)),
		attribute.Int("tools", len(tools)),
	)
	defer func() { endSpan(err) }()

	// Bound the request
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	// Create JSON payload
	payload, err := client.NewJSONRequest(c.request(conversation, tools))
	if err != nil {
		return nil, err
	}

	// Request -> Response
	var response chatCompletionResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, timeout(ctx, err)
	}
	if len(response.Choices) == 0 {
		return nil, assistant.ErrInternalServerError.With("no choices in response")
	}

	return fromChatMessage(response.Choices[0].Message), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) request(conversation schema.Conversation, tools []schema.ToolDescriptor) chatCompletionRequest {
	maxTokens := c.maxTokens
	request := chatCompletionRequest{
		Model:     c.model,
		Messages:  make([]chatMessage, 0, len(conversation)),
		MaxTokens: &maxTokens,
	}
	for _, message := range conversation {
		if message != nil {
			request.Messages = append(request.Messages, toChatMessage(message))
		}
	}
	for _, tool := range tools {
		parameters := tool.InputSchema
		if len(parameters) == 0 {
			parameters = emptyObject
		}
		request.Tools = append(request.Tools, toolDefinition{
			Type: "function",
			Function: toolFunctionDef{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  parameters,
			},
		})
	}
	return request
}

// timeout marks err as ErrTimeout when the request ran out of time
func timeout(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", assistant.ErrTimeout, err)
	}
	return err
}

func toChatMessage(message *schema.Message) chatMessage {
	result := chatMessage{
		Role:       message.Role,
		ToolCallID: message.ToolCallID,
	}
	if message.Content != "" || len(message.ToolCalls) == 0 {
		content := message.Content
		result.Content = &content
	}
	for _, call := range message.ToolCalls {
		arguments := string(call.Arguments)
		if arguments == "" {
			arguments = "{}"
		}
		result.ToolCalls = append(result.ToolCalls, toolCall{
			Id:   call.ID,
			Type: "function",
			Function: toolFunction{
				Name:      call.Name,
				Arguments: arguments,
			},
		})
	}
	return result
}

func fromChatMessage(message chatMessage) *schema.Message {
	result := &schema.Message{
		Role:       message.Role,
		ToolCallID: message.ToolCallID,
	}
	if message.Content != nil {
		result.Content = *message.Content
	}
	for _, call := range message.ToolCalls {
		var arguments json.RawMessage
		if call.Function.Arguments != "" {
			arguments = json.RawMessage(call.Function.Arguments)
		}
		result.ToolCalls = append(result.ToolCalls, schema.ToolCall{
			ID:        call.Id,
			Name:      call.Function.Name,
			Arguments: arguments,
		})
	}
	return result
}
