package table_test

import (
	"encoding/json"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	table "github.com/mutablelogic/go-assistant/pkg/ui/table"
	assert "github.com/stretchr/testify/assert"
)

func Test_table_001(t *testing.T) {
	assert := assert.New(t)
	tools := table.Tools{
		{
			Name:        "get_weather",
			Description: "Get current weather for a city",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}},"required":["city"]}`),
		},
		{
			Name:        "get_weather_forecast",
			Description: "Get weather forecast for a city",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"days":{"type":"integer"},"city":{"type":"string"}},"required":["city"]}`),
		},
		{Name: "no_schema"},
	}
	assert.Equal(3, tools.Len())
	assert.Equal([]any{"get_weather", "Get current weather for a city", "city*"}, tools.Row(0))
	assert.Equal([]any{"get_weather_forecast", "Get weather forecast for a city", "city*, days"}, tools.Row(1))
	assert.Equal([]any{"no_schema", "", ""}, tools.Row(2))

	text := table.Render(tools, 0)
	assert.Contains(text, "get_weather_forecast")
	assert.Contains(text, "Tool")
}

func Test_table_002(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("-", table.FormatCell(nil))
	assert.Equal("-", table.FormatCell(" "))
	assert.Equal("city", table.FormatCell("city"))
	assert.Equal("3", table.FormatCell(3))
}

func Test_table_003(t *testing.T) {
	// Rendering constrained to a narrow width still contains all rows
	tools := table.Tools{
		schema.ToolDescriptor{Name: "get_weather", Description: "Get current weather for a city, including temperature, conditions, humidity, wind, visibility and UV index."},
	}
	text := table.Render(tools, 40)
	assert.Contains(t, text, "get_weat")
}
