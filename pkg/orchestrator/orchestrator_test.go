package orchestrator_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	// Packages
	assistant "github.com/mutablelogic/go-assistant"
	orchestrator "github.com/mutablelogic/go-assistant/pkg/orchestrator"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// host records invocations and replies with a fixed result
type host struct {
	calls  []schema.ToolInvocation
	result schema.ToolResult
	err    error
}

func (h *host) ListTools(context.Context) ([]schema.ToolDescriptor, error) {
	return []schema.ToolDescriptor{{
		Name:        "get_weather",
		Description: "Get current weather for a city",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}},"required":["city"]}`),
	}}, nil
}

func (h *host) CallTool(_ context.Context, call schema.ToolInvocation) (schema.ToolResult, error) {
	h.calls = append(h.calls, call)
	return h.result, h.err
}

// model replies in order and records what it was sent
type model struct {
	replies       []*schema.Message
	err           error
	conversations []schema.Conversation
	tools         [][]schema.ToolDescriptor
}

func (m *model) Complete(_ context.Context, conversation schema.Conversation, tools []schema.ToolDescriptor) (*schema.Message, error) {
	m.conversations = append(m.conversations, append(schema.Conversation{}, conversation...))
	m.tools = append(m.tools, tools)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.replies) == 0 {
		return nil, errors.New("no more replies")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func paris() schema.ToolResult {
	return schema.NewResult(map[string]any{
		"city":           "Paris",
		"temperature":    "13°C (55°F)",
		"feels_like":     "11°C (52°F)",
		"description":    "Partly cloudy",
		"humidity":       "71%",
		"wind_speed":     "15 km/h",
		"wind_direction": "WSW",
		"visibility":     "10 km",
		"uv_index":       "2",
	})
}

func newOrchestrator(t *testing.T, h *host, opts ...orchestrator.Opt) *orchestrator.Orchestrator {
	t.Helper()
	o, err := orchestrator.New(h, opts...)
	require.NoError(t, err)
	return o
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_orchestrator_001(t *testing.T) {
	assert := assert.New(t)

	_, err := orchestrator.New(nil)
	assert.ErrorIs(err, assistant.ErrBadParameter)
	_, err = orchestrator.New(&host{}, orchestrator.WithSystemPrompt(" "))
	assert.ErrorIs(err, assistant.ErrBadParameter)
	_, err = orchestrator.New(&host{}, orchestrator.WithWeatherTool(""))
	assert.ErrorIs(err, assistant.ErrBadParameter)

	o := newOrchestrator(t, &host{})
	assert.False(o.HasLLM())
	o = newOrchestrator(t, &host{}, orchestrator.WithLLM(&model{}))
	assert.True(o.HasLLM())
}

func Test_orchestrator_002(t *testing.T) {
	// Blank utterances get help and no tool calls
	assert := assert.New(t)
	h := &host{result: paris()}
	m := &model{}
	o := newOrchestrator(t, h, orchestrator.WithLLM(m))

	for _, utterance := range []string{"", "   ", "\t\n"} {
		reply, err := o.Respond(context.Background(), utterance)
		assert.NoError(err)
		assert.Equal(orchestrator.HelpMessage, reply)
	}
	assert.Empty(h.calls)
	assert.Empty(m.conversations)
}

func Test_orchestrator_003(t *testing.T) {
	// Pattern path without a model
	assert := assert.New(t)
	h := &host{result: paris()}
	o := newOrchestrator(t, h)

	reply, err := o.Respond(context.Background(), "What's the weather in Paris?")
	assert.NoError(err)
	require.Len(t, h.calls, 1)
	assert.Equal("get_weather", h.calls[0].Name)
	assert.Equal(map[string]any{"city": "paris"}, h.calls[0].Arguments)
	assert.Equal(`Here's the current weather for Paris:

🌡️ Temperature: 13°C (55°F)
🤔 Feels like: 11°C (52°F)
☁️ Conditions: Partly cloudy
💧 Humidity: 71%
💨 Wind: 15 km/h WSW
👁️ Visibility: 10 km
☀️ UV Index: 2`, reply)

	// No match, including capitalised words after "weather"
	for _, utterance := range []string{"Tell me a joke", "How is the weather? Thanks", "The weather is Great"} {
		reply, err = o.Respond(context.Background(), utterance)
		assert.NoError(err)
		assert.Equal(orchestrator.HelpMessage, reply, utterance)
	}
	assert.Len(h.calls, 1)
}

func Test_orchestrator_004(t *testing.T) {
	// Error results and call failures are rendered
	assert := assert.New(t)
	h := &host{result: schema.NewErrorResult("Failed to fetch weather data: 404 Not Found")}
	o := newOrchestrator(t, h)

	reply, err := o.Respond(context.Background(), "weather in atlantis")
	assert.NoError(err)
	assert.Equal("Sorry, I couldn't get weather data for atlantis: Failed to fetch weather data: 404 Not Found", reply)

	h.err = errors.New("connection refused")
	reply, err = o.Respond(context.Background(), "weather in atlantis")
	assert.NoError(err)
	assert.Equal("Sorry, I had trouble getting the weather for atlantis: connection refused", reply)
}

func Test_orchestrator_005(t *testing.T) {
	// Model calls the first tool only and phrases the answer without tools
	assert := assert.New(t)
	h := &host{result: paris()}
	m := &model{replies: []*schema.Message{
		{
			Role: schema.RoleAssistant,
			ToolCalls: []schema.ToolCall{
				{ID: "call_1", Name: "get_weather", Arguments: json.RawMessage(`{"city":"Paris"}`)},
				{ID: "call_2", Name: "get_weather", Arguments: json.RawMessage(`{"city":"Rome"}`)},
			},
		},
		{Role: schema.RoleAssistant, Content: "It is 13°C and partly cloudy in Paris."},
	}}
	o := newOrchestrator(t, h, orchestrator.WithLLM(m))

	reply, err := o.Respond(context.Background(), "Weather in Paris and Rome?")
	assert.NoError(err)
	assert.Equal("It is 13°C and partly cloudy in Paris.", reply)

	// One tool call
	require.Len(t, h.calls, 1)
	assert.Equal(map[string]any{"city": "Paris"}, h.calls[0].Arguments)

	// First request has tools, second does not
	require.Len(t, m.conversations, 2)
	assert.Len(m.tools[0], 1)
	assert.Empty(m.tools[1])

	first := m.conversations[0]
	require.Len(t, first, 2)
	assert.Equal(schema.RoleSystem, first[0].Role)
	assert.Equal(orchestrator.DefaultSystemPrompt, first[0].Content)
	assert.Equal(schema.RoleUser, first[1].Role)

	second := m.conversations[1]
	require.Len(t, second, 4)
	assert.Equal(schema.RoleAssistant, second[2].Role)
	assert.Len(second[2].ToolCalls, 1)
	assert.Equal(schema.RoleTool, second[3].Role)
	assert.Equal("call_1", second[3].ToolCallID)
	assert.Contains(second[3].Content, `"humidity":"71%"`)
}

func Test_orchestrator_006(t *testing.T) {
	// A reply without tool calls is returned directly
	assert := assert.New(t)
	h := &host{result: paris()}
	m := &model{replies: []*schema.Message{{Role: schema.RoleAssistant, Content: "Hello!"}}}
	o := newOrchestrator(t, h, orchestrator.WithLLM(m))

	reply, err := o.Respond(context.Background(), "Hi")
	assert.NoError(err)
	assert.Equal("Hello!", reply)
	assert.Empty(h.calls)
	assert.Len(m.conversations, 1)
}

func Test_orchestrator_007(t *testing.T) {
	// Model failures fall back to pattern matching silently
	assert := assert.New(t)

	for _, m := range []*model{
		{err: errors.New("401 Unauthorized")},
		{replies: []*schema.Message{{Role: schema.RoleAssistant}}},
		{replies: []*schema.Message{{
			Role:      schema.RoleAssistant,
			ToolCalls: []schema.ToolCall{{ID: "call_1", Name: "get_weather", Arguments: json.RawMessage(`{"city":`)}},
		}}},
	} {
		h := &host{result: paris()}
		o := newOrchestrator(t, h, orchestrator.WithLLM(m))
		reply, err := o.Respond(context.Background(), "What's the weather in Paris?")
		assert.NoError(err)
		assert.Contains(reply, "Here's the current weather for Paris:")
		require.Len(t, h.calls, 1)
		assert.Equal(map[string]any{"city": "paris"}, h.calls[0].Arguments)
	}
}

func Test_orchestrator_008(t *testing.T) {
	// A cancelled context is reported
	h := &host{result: paris()}
	o := newOrchestrator(t, h)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := o.Respond(ctx, "weather in paris")
	assert.ErrorIs(t, err, context.Canceled)
}
