package httphandler

import (
	"net/http"
	"time"

	// Packages
	mcpserver "github.com/mutablelogic/go-assistant/pkg/mcp/server"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Health is the body of the health endpoint response
type Health struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version,omitempty"`
	Tools     int       `json:"tools"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /
func HealthHandler(srv *mcpserver.Server) (string, httprequest.PathItem) {
	health := func(w http.ResponseWriter, r *http.Request) {
		// The root pattern matches every unregistered path
		if r.URL.Path != "/" {
			_ = httpresponse.Error(w, httpresponse.ErrNotFound, r.URL.Path)
			return
		}
		now := time.Now()
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), Health{
			Status:    "healthy",
			Service:   srv.Name(),
			Version:   srv.Version(),
			Tools:     srv.Toolkit().Len(),
			Uptime:    now.Sub(srv.Started()).Truncate(time.Second).String(),
			Timestamp: now.UTC(),
		})
	}
	return "/", httprequest.NewPathItem("Health", "Service health, used as the reachability probe target", tag).
		Get(health, "Get service health").
		Head(health, "Get service health")
}
