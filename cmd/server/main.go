package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	config "github.com/mutablelogic/go-assistant/pkg/config"
	log "github.com/mutablelogic/go-assistant/pkg/log"
	tracing "github.com/mutablelogic/go-assistant/pkg/tracing"
	version "github.com/mutablelogic/go-assistant/pkg/version"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug logging"`
	Verbose bool `name:"verbose" help:"Trace weather provider requests"`

	// Configuration
	EnvFile string `name:"env-file" default:".env" help:"File to read configuration from, before the environment"`

	// Context
	ctx      context.Context
	execName string
	config   *config.Config
	tracer   trace.Tracer
}

type CLI struct {
	Globals

	// Commands
	Run     RunCmd     `cmd:"" default:"withargs" help:"Run the weather tool host (default)"`
	Tools   ToolsCmd   `cmd:"" help:"List the published tools"`
	Call    CallCmd    `cmd:"" help:"Call a tool without running the server"`
	Env     EnvCmd     `cmd:"" help:"Describe the configuration environment variables"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	serviceName     = "weather-server"
	shutdownTimeout = 5 * time.Second
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Weather tool host, publishing weather tools over the Model Context Protocol"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Read the configuration
	cfg, err := config.Load(cli.EnvFile)
	cmd.FatalIfErrorf(err)
	cli.Globals.config = cfg

	// Set the log level
	level := cfg.LogLevel
	if cli.Debug {
		level = "debug"
	}
	cmd.FatalIfErrorf(log.Init(level))

	// Export traces when a collector is configured
	if cfg.OTel.Endpoint != "" {
		provider, err := tracing.New(ctx, cfg.OTel.Endpoint, serviceName, version.Version())
		cmd.FatalIfErrorf(err)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := provider.Shutdown(ctx); err != nil {
				log.Warnf(ctx, "trace shutdown: %v", err)
			}
		}()
		cli.Globals.tracer = provider.Tracer()
	}

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
