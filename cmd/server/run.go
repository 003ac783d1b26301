package main

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"

	// Packages
	banner "github.com/dimiro1/banner"
	httphandler "github.com/mutablelogic/go-assistant/pkg/httphandler"
	log "github.com/mutablelogic/go-assistant/pkg/log"
	mcpserver "github.com/mutablelogic/go-assistant/pkg/mcp/server"
	tool "github.com/mutablelogic/go-assistant/pkg/tool"
	version "github.com/mutablelogic/go-assistant/pkg/version"
	wttr "github.com/mutablelogic/go-assistant/pkg/wttr"
	client "github.com/mutablelogic/go-client"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
	errgroup "golang.org/x/sync/errgroup"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type RunCmd struct {
	Addr        string `name:"addr" env:"MCP_ADDR" help:"Listen address, overrides the configuration (default :8000)"`
	Origin      string `name:"origin" help:"Allowed cross-origin request origin, or '*' for any"`
	MetricsAddr string `name:"metrics-addr" env:"METRICS_ADDR" help:"Serve metrics on a separate listen address"`

	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	bannerTitle  = "{{ .Title \"WEATHER\" \"\" 0 }}\n"
	instructions = "Weather tools backed by wttr.in. Use get_weather for current conditions and get_weather_forecast for up to 3 days."
)

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunCmd) Run(ctx *Globals) error {
	// Create the tool host
	srv, err := ctx.Server()
	if err != nil {
		return err
	}

	// Create the TLS config if TLS options are provided
	tlsConfig, err := cmd.tlsConfig()
	if err != nil {
		return err
	}

	// Create the server
	addr := ctx.config.Server.Addr
	if cmd.Addr != "" {
		addr = cmd.Addr
	}
	server, err := httpserver.New(addr, tlsConfig)
	if err != nil {
		return err
	}

	// Create the router on the server mux and register the handlers
	router, err := httprouter.NewRouter(ctx.ctx, server.Router(), "", cmd.Origin, "Weather Tool Host", version.Version())
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(srv, router); err != nil {
		return err
	}

	// Bind the listener, so an address in use is reported before serving
	if err := server.Listen(); err != nil {
		return err
	}

	// Serve metrics on a separate listener when requested
	var metrics *http.Server
	if cmd.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metrics = &http.Server{Addr: cmd.MetricsAddr, Handler: mux}
	}

	// Print the banner
	banner.Init(os.Stdout, true, false, bytes.NewBufferString(bannerTitle+"Weather tool host "+version.Version()+"\n"))
	fmt.Printf("MCP endpoint: %s\n\n", server.URL().JoinPath(httphandler.MCPPath))

	// Run the servers until the context is done
	log.Infof(ctx.ctx, "%s@%s started on %s", ctx.execName, version.Version(), server.Addr())
	group, groupctx := errgroup.WithContext(ctx.ctx)
	group.Go(func() error {
		return server.Run(groupctx)
	})
	if metrics != nil {
		log.Infof(ctx.ctx, "metrics on %s", cmd.MetricsAddr)
		group.Go(func() error {
			if err := metrics.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-groupctx.Done()
			return metrics.Shutdown(context.Background())
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// Return success
	log.Infof(context.Background(), "%s@%s stopped", ctx.execName, version.Version())
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Toolkit returns the weather tools
func (ctx *Globals) Toolkit() (*tool.Toolkit, error) {
	opts := []client.ClientOpt{}
	if ctx.config.Weather.Endpoint != "" {
		opts = append(opts, client.OptEndpoint(ctx.config.Weather.Endpoint))
	}
	if ctx.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, true))
	}
	if ctx.tracer != nil {
		opts = append(opts, client.OptTracer(ctx.tracer))
	}
	weather, err := wttr.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather client: %w", err)
	}
	return tool.NewToolkit(weather.WithTracer(ctx.tracer).Tools()...)
}

// Server returns the tool host publishing the weather tools
func (ctx *Globals) Server() (*mcpserver.Server, error) {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return nil, err
	}
	return mcpserver.New(serviceName, version.Version(), toolkit,
		mcpserver.WithInstructions(instructions),
		mcpserver.WithTracer(ctx.tracer),
	)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *RunCmd) tlsConfig() (*tls.Config, error) {
	if cmd.TLS.CertFile == "" && cmd.TLS.KeyFile == "" {
		return nil, nil
	}
	var pemData [][]byte
	for _, path := range []string{cmd.TLS.CertFile, cmd.TLS.KeyFile} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read TLS file: %w", err)
		}
		pemData = append(pemData, data)
	}
	tlsConfig, err := httpserver.TLSConfig(cmd.TLS.ServerName, false, pemData...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS config: %w", err)
	}
	return tlsConfig, nil
}
