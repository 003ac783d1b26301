package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolResult is the outcome of a tool invocation: either a success payload
// or an error text, never both. Provider faults are carried as error results
// rather than returned as errors.
type ToolResult struct {
	payload map[string]any
	err     *string
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Key of the error text in an encoded result
	ErrorKey = "error"

	// Key used when a result is not a JSON object
	RawKey = "raw"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewResult returns a success result. A nil payload is an empty object.
func NewResult(payload map[string]any) ToolResult {
	if payload == nil {
		payload = make(map[string]any)
	}
	return ToolResult{payload: payload}
}

// NewErrorResult returns an error result with the given text
func NewErrorResult(text string) ToolResult {
	return ToolResult{err: &text}
}

// NewErrorResultf returns an error result with formatted text
func NewErrorResultf(format string, args ...any) ToolResult {
	return NewErrorResult(fmt.Sprintf(format, args...))
}

// ResultFor converts any JSON-encodable value into a result. An error
// value becomes an error result and a ToolResult is returned unchanged.
func ResultFor(v any) (ToolResult, error) {
	switch v := v.(type) {
	case ToolResult:
		return v, nil
	case *ToolResult:
		if v == nil {
			return NewResult(nil), nil
		}
		return *v, nil
	case error:
		return NewErrorResult(v.Error()), nil
	case nil:
		return NewResult(nil), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ToolResult{}, err
	}
	return ParseResult(data), nil
}

// ParseResult decodes a result. A JSON object with an "error" key is an
// error result, any other object is a payload, and anything else is
// wrapped as a payload under the "raw" key.
func ParseResult(data []byte) ToolResult {
	var payload map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return NewResult(map[string]any{RawKey: strings.TrimSpace(string(data))})
	}
	if v, exists := payload[ErrorKey]; exists {
		return NewErrorResult(stringValue(v))
	}
	return NewResult(payload)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsError returns true for an error result
func (r ToolResult) IsError() bool {
	return r.err != nil
}

// Err returns the error text, or an empty string for a success result
func (r ToolResult) Err() string {
	if r.err == nil {
		return ""
	}
	return *r.err
}

// Payload returns the success payload, or nil for an error result
func (r ToolResult) Payload() map[string]any {
	if r.err != nil {
		return nil
	}
	return r.payload
}

// Field returns a top-level payload field rendered as a string, and
// false if the field is absent or null
func (r ToolResult) Field(key string) (string, bool) {
	v, exists := r.Payload()[key]
	if !exists || v == nil {
		return "", false
	}
	return stringValue(v), true
}

// Decode decodes the payload into v
func (r ToolResult) Decode(v any) error {
	if r.err != nil {
		return fmt.Errorf("%s", *r.err)
	}
	data, err := json.Marshal(r.payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (r ToolResult) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return json.Marshal(map[string]string{ErrorKey: *r.err})
	}
	if r.payload == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.payload)
}

func (r *ToolResult) UnmarshalJSON(data []byte) error {
	*r = ParseResult(data)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ToolResult) String() string {
	if r.err != nil {
		return types.Stringify(map[string]string{ErrorKey: *r.err})
	}
	return types.Stringify(r.payload)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func stringValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64, bool, int, int64:
		return fmt.Sprint(v)
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprint(v)
}
