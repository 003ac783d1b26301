package httphandler

import (
	"errors"
	"net/http"

	// Package
	assistant "github.com/mutablelogic/go-assistant"
	mcpserver "github.com/mutablelogic/go-assistant/pkg/mcp/server"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router is satisfied by httprouter.Router
type Router interface {
	RegisterPath(path string, params *jsonschema.Schema, pathitem httprequest.PathItem) error
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// MCPPath is the path of the streamable HTTP protocol endpoint
	MCPPath = "/mcp"

	// Tag for the operations in the OpenAPI document
	tag = "weather"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers the protocol endpoint, the health endpoint,
// the metrics endpoint and the tool endpoints with the router. Every
// handler is wrapped by the router middleware.
func RegisterHandlers(srv *mcpserver.Server, router Router) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, item httprequest.PathItem) {
		result = errors.Join(result, router.RegisterPath(path, nil, item))
	}

	// Register handlers
	register(HealthHandler(srv))
	register(MCPHandler(srv))
	register(MetricsHandler())
	register(ToolListHandler(srv))
	register(ToolHandler(srv))

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts an assistant.Err to an httpresponse.Err, preserving the
// underlying error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var assistantErr assistant.Err
	if !errors.As(err, &assistantErr) {
		return err
	}
	switch assistantErr {
	case assistant.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case assistant.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case assistant.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case assistant.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case assistant.ErrTimeout:
		return httpresponse.Err(http.StatusGatewayTimeout).With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
