package httphandler

import (
	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /metrics
func MetricsHandler() (string, httprequest.PathItem) {
	return "/metrics", httprequest.NewPathItem("Metrics", "Prometheus metrics", tag).
		Get(promhttp.Handler().ServeHTTP, "Get metrics")
}
