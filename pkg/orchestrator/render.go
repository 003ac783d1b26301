package orchestrator

import (
	"fmt"
	"strings"
	"text/template"

	// Packages
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	notAvailable = "N/A"
)

var (
	quitWords = []string{"quit", "exit", "bye"}
)

var report = template.Must(template.New("report").Funcs(template.FuncMap{
	"trim": strings.TrimSpace,
}).Parse(`Here's the current weather for {{ .city }}:

🌡️ Temperature: {{ .temperature }}
🤔 Feels like: {{ .feels_like }}
☁️ Conditions: {{ .description }}
💧 Humidity: {{ .humidity }}
💨 Wind: {{ trim .wind }}
👁️ Visibility: {{ .visibility }}
☀️ UV Index: {{ .uv_index }}`))

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render formats a weather result. An error result is rendered as an
// apology including the error text, and missing fields are rendered as N/A.
// The city is taken from the result when present.
func Render(city string, result schema.ToolResult) string {
	if result.IsError() {
		return fmt.Sprintf("Sorry, I couldn't get weather data for %s: %s", city, result.Err())
	}

	field := func(key, fallback string) string {
		if v, ok := result.Field(key); ok {
			return v
		}
		return fallback
	}
	fields := map[string]string{
		"city":        field("city", city),
		"temperature": field("temperature", notAvailable),
		"feels_like":  field("feels_like", notAvailable),
		"description": field("description", notAvailable),
		"humidity":    field("humidity", notAvailable),
		"wind":        field("wind_speed", notAvailable) + " " + field("wind_direction", ""),
		"visibility":  field("visibility", notAvailable),
		"uv_index":    field("uv_index", notAvailable),
	}

	var b strings.Builder
	if err := report.Execute(&b, fields); err != nil {
		return Apology(city, err)
	}
	return b.String()
}

// Apology is the reply when a tool could not be called
func Apology(city string, err error) string {
	return fmt.Sprintf("Sorry, I had trouble getting the weather for %s: %v", city, err)
}

// IsQuit returns true if the text asks to end the conversation
func IsQuit(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, word := range quitWords {
		if text == word {
			return true
		}
	}
	return false
}
