package orchestrator_test

import (
	"errors"
	"testing"

	// Packages
	orchestrator "github.com/mutablelogic/go-assistant/pkg/orchestrator"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_extract_001(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		utterance string
		city      string
	}{
		{"What's the weather in Paris?", "paris"},
		{"weather in New York", "new york"},
		{"  Weather for Tokyo?  ", "tokyo"},
		{"How's the weather looking in Buenos Aires?", "buenos aires"},
		{"what's the current weather like in london", "london"},
		{"How's the weather in Rio De Janeiro?", "rio de janeiro"},
		{"weather in madrid.", "madrid"},
	}
	for _, test := range tests {
		city, ok := orchestrator.ExtractCity(test.utterance)
		assert.True(ok, test.utterance)
		assert.Equal(test.city, city, test.utterance)
	}

	for _, utterance := range []string{
		"", "Tell me a joke", "what's the weather?", "weather",
		"How is the weather? Thanks", "The weather is Great",
		"Show me the weather, Rio De Janeiro please",
	} {
		_, ok := orchestrator.ExtractCity(utterance)
		assert.False(ok, utterance)
	}
}

func Test_render_001(t *testing.T) {
	// Missing fields are rendered as N/A
	assert := assert.New(t)
	reply := orchestrator.Render("paris", schema.NewResult(map[string]any{
		"temperature": "13°C (55°F)",
	}))
	assert.Equal(`Here's the current weather for paris:

🌡️ Temperature: 13°C (55°F)
🤔 Feels like: N/A
☁️ Conditions: N/A
💧 Humidity: N/A
💨 Wind: N/A
👁️ Visibility: N/A
☀️ UV Index: N/A`, reply)
}

func Test_render_002(t *testing.T) {
	// Errors and unusual payloads never panic
	assert := assert.New(t)
	assert.Equal("Sorry, I couldn't get weather data for rome: Failed to parse weather data: missing key \"humidity\"",
		orchestrator.Render("rome", schema.NewErrorResult(`Failed to parse weather data: missing key "humidity"`)))
	assert.Contains(orchestrator.Render("rome", schema.ParseResult([]byte("not json"))), "Humidity: N/A")
	assert.Contains(orchestrator.Render("rome", schema.NewResult(nil)), "Here's the current weather for rome:")
	assert.Contains(orchestrator.Render("rome", schema.NewResult(map[string]any{"humidity": 71})), "Humidity: 71")
	assert.Equal("Sorry, I had trouble getting the weather for rome: timeout", orchestrator.Apology("rome", errors.New("timeout")))
}

func Test_quit_001(t *testing.T) {
	assert := assert.New(t)
	for _, text := range []string{"quit", "EXIT", " bye "} {
		assert.True(orchestrator.IsQuit(text), text)
	}
	for _, text := range []string{"", "quit now", "goodbye"} {
		assert.False(orchestrator.IsQuit(text), text)
	}
}
