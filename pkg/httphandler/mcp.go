package httphandler

import (
	// Packages
	mcpserver "github.com/mutablelogic/go-assistant/pkg/mcp/server"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /mcp
func MCPHandler(srv *mcpserver.Server) (string, httprequest.PathItem) {
	handler := srv.Handler().ServeHTTP
	return MCPPath, httprequest.NewPathItem("MCP", "Model Context Protocol streamable HTTP endpoint", tag).
		Get(handler, "Open a server-sent event stream for a session").
		Post(handler, "Send a JSON-RPC message").
		Delete(handler, "Terminate a session")
}
