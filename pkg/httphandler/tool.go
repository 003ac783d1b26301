package httphandler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	// Packages
	mcpserver "github.com/mutablelogic/go-assistant/pkg/mcp/server"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolList is the body of the tool list response
type ToolList struct {
	Count uint                    `json:"count"`
	Body  []schema.ToolDescriptor `json:"body"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Upper bound on the size of tool arguments
	maxArgumentBytes = 64 * 1024
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /tool
func ToolListHandler(srv *mcpserver.Server) (string, httprequest.PathItem) {
	list := func(w http.ResponseWriter, r *http.Request) {
		descriptors, err := srv.Toolkit().Descriptors()
		if err != nil {
			_ = httpresponse.Error(w, httpErr(err))
			return
		}
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), ToolList{
			Count: uint(len(descriptors)),
			Body:  descriptors,
		})
	}
	return "/tool", httprequest.NewPathItem("Tools", "The published tool catalog", tag).
		Get(list, "List the published tools")
}

// Path: /tool/{name}
func ToolHandler(srv *mcpserver.Server) (string, httprequest.PathItem) {
	get := func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		t := srv.Toolkit().Lookup(name)
		if t == nil {
			_ = httpresponse.Error(w, httpresponse.ErrNotFound.With("tool not found: "+strconv.Quote(name)))
			return
		}
		s, err := t.Schema()
		if err != nil {
			_ = httpresponse.Error(w, httpresponse.ErrInternalError.With(err))
			return
		}
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), map[string]any{
			"name":        t.Name(),
			"description": t.Description(),
			"inputSchema": s,
		})
	}
	call := func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if srv.Toolkit().Lookup(name) == nil {
			_ = httpresponse.Error(w, httpresponse.ErrNotFound.With("tool not found: "+strconv.Quote(name)))
			return
		}
		input, err := io.ReadAll(io.LimitReader(r.Body, maxArgumentBytes))
		if err != nil {
			_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With(err))
			return
		}
		if len(input) > 0 && !json.Valid(input) {
			_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With("arguments are not valid JSON"))
			return
		}
		result, err := srv.Call(r.Context(), name, input)
		if err != nil {
			_ = httpresponse.Error(w, httpErr(err))
			return
		}
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), result)
	}
	return "/tool/{name}", httprequest.NewPathItem("Tool", "A published tool", tag).
		Get(get, "Get a tool and its input schema").
		Post(call, "Call a tool with JSON arguments, failures are returned in the error field")
}
