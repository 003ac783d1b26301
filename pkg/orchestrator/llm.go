package orchestrator

import (
	"context"
	"strings"

	// Packages
	assistant "github.com/mutablelogic/go-assistant"
	log "github.com/mutablelogic/go-assistant/pkg/log"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// complete asks the model which tool to call, calls it, and asks the model
// again without tools to phrase the answer. Only the first tool call of a
// reply is executed.
func (o *Orchestrator) complete(ctx context.Context, utterance string) (_ string, err error) {
	ctx, endSpan := otel.StartSpan(o.tracer, ctx, "orchestrator.Complete")
	defer func() { endSpan(err) }()

	tools, err := o.host.ListTools(ctx)
	if err != nil {
		return "", err
	}

	// First exchange offers the full tool catalog
	conversation := schema.NewConversation(o.system, utterance)
	reply, err := o.llm.Complete(ctx, conversation, tools)
	if err != nil {
		return "", err
	} else if reply == nil {
		return "", assistant.ErrInternalServerError.With("empty reply")
	} else if !reply.HasToolCalls() {
		return content(reply)
	}

	// Subsequent calls in the same reply are ignored
	call := reply.ToolCalls[0]
	if n := len(reply.ToolCalls); n > 1 {
		log.Debugf(ctx, "ignoring %d additional tool calls", n-1)
	}
	invocation, err := schema.NewToolInvocation(call.Name, call.Arguments)
	if err != nil {
		return "", assistant.ErrBadParameter.Withf("arguments for %q: %v", call.Name, err)
	}

	log.WithField(ctx, "tool", invocation.Name).Infof("calling tool with %v", invocation.Arguments)
	result, err := o.host.CallTool(ctx, invocation)
	if err != nil {
		return "", err
	}
	log.WithField(ctx, "tool", invocation.Name).Debugf("tool result %v", result)

	// Second exchange carries the call and its result but no tools
	tool, err := schema.NewToolMessage(call.ID, result)
	if err != nil {
		return "", err
	}
	conversation.Append(&schema.Message{
		Role:      schema.RoleAssistant,
		Content:   reply.Content,
		ToolCalls: []schema.ToolCall{call},
	}, tool)
	final, err := o.llm.Complete(ctx, conversation, nil)
	if err != nil {
		return "", err
	} else if final == nil {
		return "", assistant.ErrInternalServerError.With("empty reply")
	}

	return content(final)
}

func content(message *schema.Message) (string, error) {
	if text := strings.TrimSpace(message.Content); text != "" {
		return text, nil
	}
	return "", assistant.ErrInternalServerError.With("reply has no content")
}
