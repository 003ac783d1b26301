package wttr

import (
	"context"
	"encoding/json"
	"errors"
	"unicode"
	"unicode/utf8"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	assistant "github.com/mutablelogic/go-assistant"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	tool "github.com/mutablelogic/go-assistant/pkg/tool"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// CurrentRequest is the input to the current conditions tool
type CurrentRequest struct {
	City string `json:"city" jsonschema:"Name of the city to get weather for"`
}

// ForecastRequest is the input to the forecast tool
type ForecastRequest struct {
	City string `json:"city" jsonschema:"Name of the city"`
	Days int    `json:"days,omitempty" jsonschema:"Number of days (1-3, default 3)"`
}

type currentWeather struct {
	client *Client
}

type forecastWeather struct {
	client *Client
}

var _ tool.Tool = (*currentWeather)(nil)
var _ tool.Tool = (*forecastWeather)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	CurrentToolName  = "get_weather"
	ForecastToolName = "get_weather_forecast"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the weather tools, sharing a single client
func NewTools(opts ...client.ClientOpt) ([]tool.Tool, error) {
	client, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return client.Tools(), nil
}

// Tools returns the weather tools backed by this client
func (c *Client) Tools() []tool.Tool {
	return []tool.Tool{
		&currentWeather{client: c},
		&forecastWeather{client: c},
	}
}

///////////////////////////////////////////////////////////////////////////////
// CURRENT WEATHER

func (*currentWeather) Name() string {
	return CurrentToolName
}

func (*currentWeather) Description() string {
	return "Get current weather for a city, including temperature, conditions, humidity, wind, visibility and UV index."
}

// Return the JSON schema for the tool input
func (*currentWeather) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[CurrentRequest](nil)
}

// Run the tool with the given input. Failures are returned as an
// error-bearing result, never as an error.
func (c *currentWeather) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req CurrentRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return schema.NewErrorResultf("Failed to parse request: %v", err), nil
		}
	}

	weather, err := c.client.Current(ctx, req.City)
	if err != nil {
		return schema.NewErrorResult(errorText(err)), nil
	}
	return weather, nil
}

///////////////////////////////////////////////////////////////////////////////
// FORECAST WEATHER

func (*forecastWeather) Name() string {
	return ForecastToolName
}

func (*forecastWeather) Description() string {
	return "Get weather forecast for a city for up to 3 days, including temperatures, conditions, sunrise and sunset."
}

// Return the JSON schema for the tool input
func (*forecastWeather) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[ForecastRequest](nil)
	if err != nil {
		return nil, err
	}

	// Days is optional, larger values are capped rather than rejected
	if daysField, ok := schema.Properties["days"]; ok && daysField != nil {
		min := float64(1)
		daysField.Minimum = &min
		daysField.Default = json.RawMessage("3")
	}

	return schema, nil
}

// Run the tool with the given input. Failures are returned as an
// error-bearing result, never as an error.
func (f *forecastWeather) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ForecastRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return schema.NewErrorResultf("Failed to get forecast: %v", err), nil
		}
	}

	forecast, err := f.client.Forecast(ctx, req.City, req.Days)
	if err != nil {
		return schema.NewErrorResultf("Failed to get forecast: %v", err), nil
	}
	return forecast, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// errorText returns the error as a sentence, prefixed when the failure
// is unexpected
func errorText(err error) string {
	text := err.Error()
	switch {
	case errors.Is(err, ErrFetch), errors.Is(err, ErrParse), errors.Is(err, assistant.ErrBadParameter):
		break
	default:
		text = "Unexpected error: " + text
	}
	r, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(r)) + text[size:]
}
