/*
wttr implements an API client for the wttr.in weather service, which
requires no API key.
https://github.com/chubin/wttr.in
*/
package wttr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	// Packages
	assistant "github.com/mutablelogic/go-assistant"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	client "github.com/mutablelogic/go-client"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	tracer  trace.Tracer
	timeout time.Duration
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://wttr.in"

	// DefaultTimeout is the timeout for a single weather request
	DefaultTimeout = 10 * time.Second

	// MaxForecastDays is the number of days wttr.in forecasts
	MaxForecastDays = 3

	// Index of the mid-day slot within the hourly forecast
	middayHour = 4
)

var (
	// ErrFetch is returned when the weather document could not be retrieved
	ErrFetch = errors.New("failed to fetch weather data")

	// ErrParse is returned when the weather document is missing expected keys
	ErrParse = errors.New("failed to parse weather data")
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. The endpoint defaults to https://wttr.in and the
// request timeout to ten seconds; both can be overridden by options.
func New(opts ...client.ClientOpt) (*Client, error) {
	defaults := []client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptTimeout(DefaultTimeout),
	}
	c, err := client.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{Client: c, timeout: DefaultTimeout}, nil
}

// WithTracer returns the client with spans recorded on the given tracer
func (c *Client) WithTracer(tracer trace.Tracer) *Client {
	c.tracer = tracer
	return c
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Report returns the full j1 document for a city
func (c *Client) Report(ctx context.Context, city string) (_ *Report, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "wttr.Report",
		attribute.String("city", city),
	)
	defer func() { endSpan(err) }()

	if city = strings.TrimSpace(city); city == "" {
		return nil, assistant.ErrBadParameter.With("city is required")
	}

	// Bound the request
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Request -> Response
	var response Report
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath(city), client.OptQuery(url.Values{"format": []string{"j1"}})); err != nil {
		if isDecodeError(err) {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	return &response, nil
}

// Current returns the current conditions for a city
func (c *Client) Current(ctx context.Context, city string) (schema.Weather, error) {
	report, err := c.Report(ctx, city)
	if err != nil {
		return schema.Weather{}, err
	}
	return report.Current()
}

// Forecast returns up to three days of forecast for a city. A value of
// days less than one returns the maximum.
func (c *Client) Forecast(ctx context.Context, city string, days int) (schema.Forecast, error) {
	report, err := c.Report(ctx, city)
	if err != nil {
		return schema.Forecast{}, err
	}
	return report.Forecast(days)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
